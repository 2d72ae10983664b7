/*
Package keywords implements the static Kumihan keyword table.

A keyword maps a marker token (e.g. 太字) onto an HTML tag, an optional CSS
class, and a nesting priority. The table is immutable once built and is
shared without synchronization between concurrent parse sessions.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package keywords

import (
	"fmt"
	"sort"
	"sync"

	"github.com/derekparker/trie"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/kumihan/engine/ast"
)

// tracer traces with key 'kumihan.keywords'.
func tracer() tracing.Trace {
	return tracing.Select("kumihan.keywords")
}

// Priority is the nesting priority class of a keyword. Lower values nest
// further outside: division-like keywords wrap headings wrap bold wraps
// italic wraps the innermost inline keywords.
type Priority int

const (
	PrioDivision Priority = iota
	PrioHeading
	PrioStrong
	PrioEmphasis
	PrioInline
)

// Definition is the static record for one keyword.
type Definition struct {
	Tag      string   // HTML element name
	Class    string   // optional CSS class
	Priority Priority // nesting priority class
	Color    bool     // accepts a color=… marker attribute
}

// Table maps keyword names to definitions. Lookup is backed by a trie so
// that marker recognition can probe prefixes cheaply; insertion order is
// retained as the tie-break for suggestion ranking.
type Table struct {
	index *trie.Trie
	order []string
}

// NewTable creates an empty keyword table.
func NewTable() *Table {
	return &Table{index: trie.New()}
}

// Define adds a keyword. Re-defining a name overwrites its definition but
// keeps its original rank.
func (t *Table) Define(name string, def Definition) *Table {
	if name == "" || def.Tag == "" {
		tracer().Errorf("keyword definition must have a name and a tag")
		return t
	}
	if _, ok := t.index.Find(name); !ok {
		t.order = append(t.order, name)
	}
	t.index.Add(name, def)
	return t
}

// Lookup returns the definition for a keyword name.
func (t *Table) Lookup(name string) (Definition, bool) {
	node, ok := t.index.Find(name)
	if !ok {
		return Definition{}, false
	}
	return node.Meta().(Definition), true
}

// Known is true iff name is a defined keyword.
func (t *Table) Known(name string) bool {
	_, ok := t.index.Find(name)
	return ok
}

// Keys returns all keyword names in definition order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.order))
	copy(keys, t.order)
	return keys
}

// SuggestionDistance is the maximum Levenshtein distance for a keyword to be
// offered as a correction candidate. The threshold is a documented decision;
// ties are broken by table definition order.
const SuggestionDistance = 2

// Suggest ranks known keywords by edit distance to an unknown name and
// returns those within SuggestionDistance, closest first.
func (t *Table) Suggest(name string) []string {
	type ranked struct {
		name string
		dist int
		rank int
	}
	var candidates []ranked
	for i, key := range t.order {
		d := fuzzy.LevenshteinDistance(name, key)
		if d <= SuggestionDistance {
			candidates = append(candidates, ranked{key, d, i})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].rank < candidates[j].rank
	})
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.name
	}
	tracer().Debugf("suggestions for %q: %v", name, names)
	return names
}

// SortForNesting returns the keyword names ordered outermost-first by
// priority class. The sort is stable, so keywords of equal priority keep
// their source order; different source orders of the same keyword set still
// nest identically because priorities within one marker are distinct in
// practice.
func (t *Table) SortForNesting(names []string) []string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, _ := t.Lookup(sorted[i])
		dj, _ := t.Lookup(sorted[j])
		return di.Priority < dj.Priority
	})
	return sorted
}

var defaultTable *Table
var defaultTableOnce sync.Once

// Default returns the built-in Kumihan keyword table. The table is built
// once and shared; callers must not modify it.
func Default() *Table {
	defaultTableOnce.Do(func() {
		t := NewTable()
		t.Define("枠線", Definition{Tag: "div", Class: "box", Priority: PrioDivision})
		t.Define("ハイライト", Definition{Tag: "div", Class: "highlight", Priority: PrioDivision, Color: true})
		t.Define("中央寄せ", Definition{Tag: "div", Class: "center", Priority: PrioDivision})
		t.Define("ネタバレ", Definition{Tag: "details", Class: "spoiler", Priority: PrioDivision})
		t.Define("引用", Definition{Tag: "blockquote", Priority: PrioDivision})
		for level := 1; level <= 5; level++ {
			t.Define(fmt.Sprintf("見出し%d", level), Definition{Tag: ast.Heading(level), Priority: PrioHeading})
		}
		t.Define("太字", Definition{Tag: "strong", Priority: PrioStrong})
		t.Define("イタリック", Definition{Tag: "em", Priority: PrioEmphasis})
		t.Define("取り消し線", Definition{Tag: "del", Priority: PrioInline})
		t.Define("コード", Definition{Tag: "code", Priority: PrioInline})
		t.Define("脚注", Definition{Tag: "span", Class: "footnote", Priority: PrioInline})
		defaultTable = t
	})
	return defaultTable
}
