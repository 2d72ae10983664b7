package kumihan

import (
	"fmt"
	"strings"

	"github.com/npillmayer/kumihan/engine/ast"
	"github.com/npillmayer/kumihan/engine/keywords"
)

// rubyOpen, rubyRead, rubyClose delimit a ruby annotation: ｜base《reading》.
const (
	rubyOpen  = '｜'
	rubyRead  = '《'
	rubyClose = '》'
)

// parseInline resolves the inline notations of a text run: an optional
// inline compound marker (";;;keyword;;; text", applying to the tail of the
// run) and ruby annotations. Malformed notations degrade to literal text;
// unknown inline keywords yield an error node, like their block
// counterparts.
func parseInline(text string, table *keywords.Table) []*ast.Node {
	if text == "" {
		return nil
	}
	p := strings.Index(text, Sentinel)
	if p < 0 {
		return parseRuby(text)
	}
	q := strings.Index(text[p+len(Sentinel):], Sentinel)
	if q < 0 {
		return parseRuby(text)
	}
	inner := text[p+len(Sentinel) : p+len(Sentinel)+q]
	rest := strings.TrimSpace(text[p+2*len(Sentinel)+q:])
	names, _ := ParseMarker(Sentinel + inner + Sentinel)
	if len(names) == 0 {
		return parseRuby(text)
	}
	nodes := parseRuby(text[:p])
	if unknown, ok := findUnknown(names, table); ok {
		nodes = append(nodes, unknownKeywordNode(unknown, table))
		if rest != "" {
			nodes = append(nodes, parseRuby(rest)...)
		}
		return nodes
	}
	content := parseRuby(rest)
	nodes = append(nodes, nestKeywords(names, content, nil, table))
	return nodes
}

// parseRuby splits a text run around ruby annotations. Text without ruby
// comes back as a single text node; an unclosed annotation stays literal.
func parseRuby(text string) []*ast.Node {
	if text == "" {
		return nil
	}
	var nodes []*ast.Node
	runes := []rune(text)
	plainFrom := 0
	for i := 0; i < len(runes); i++ {
		if runes[i] != rubyOpen {
			continue
		}
		read := -1
		end := -1
		for j := i + 1; j < len(runes); j++ {
			if runes[j] == rubyRead && read < 0 {
				read = j
			} else if runes[j] == rubyClose && read >= 0 {
				end = j
				break
			}
		}
		if read < 0 || end < 0 || read == i+1 || end == read+1 {
			continue // malformed, keep literal
		}
		if i > plainFrom {
			nodes = append(nodes, ast.NewText(string(runes[plainFrom:i])))
		}
		ruby := ast.NewElement(ast.TypeRuby, ast.NewText(string(runes[i+1:read])))
		ruby.SetAttr("rt", string(runes[read+1:end]))
		nodes = append(nodes, ruby)
		i = end
		plainFrom = end + 1
	}
	if plainFrom < len(runes) {
		nodes = append(nodes, ast.NewText(string(runes[plainFrom:])))
	}
	return nodes
}

// findUnknown returns the first keyword name missing from the table.
func findUnknown(names []string, table *keywords.Table) (string, bool) {
	for _, name := range names {
		if !table.Known(name) {
			return name, true
		}
	}
	return "", false
}

// unknownKeywordNode builds the error node for an unknown keyword, with the
// nearest known keywords appended as correction candidates.
func unknownKeywordNode(name string, table *keywords.Table) *ast.Node {
	msg := fmt.Sprintf("未知のキーワード: %s", name)
	if sugg := table.Suggest(name); len(sugg) > 0 {
		msg += fmt.Sprintf(" 候補: %s", strings.Join(sugg, ", "))
	}
	tracer().Infof("unknown keyword %q", name)
	return ast.NewError(msg)
}

// nestKeywords builds the nested node tree for a compound keyword list.
// Nesting order is fixed by priority class, independent of source order:
// division-like keywords outermost, then headings, bold, italic, inline.
// The body content sits at the innermost position. Marker attributes attach
// to the outermost node; a color attribute becomes an inline style on
// highlight-class keywords.
func nestKeywords(names []string, content []*ast.Node, attrs map[string]string, table *keywords.Table) *ast.Node {
	sorted := table.SortForNesting(dedup(names))
	var node *ast.Node
	for i := len(sorted) - 1; i >= 0; i-- {
		def, _ := table.Lookup(sorted[i])
		var elem *ast.Node
		if node == nil {
			elem = ast.NewElement(def.Tag, content...)
		} else {
			elem = node.WrapIn(def.Tag)
		}
		if def.Class != "" {
			elem.SetAttr("class", def.Class)
		}
		if i == 0 {
			applyAttrs(elem, def, attrs)
		}
		node = elem
	}
	return node
}

func applyAttrs(elem *ast.Node, def keywords.Definition, attrs map[string]string) {
	for k, v := range attrs {
		if k == "color" && def.Color {
			elem.SetAttr("style", "background-color:"+v)
			continue
		}
		elem.SetAttr(k, v)
	}
}

// dedup removes duplicate keyword names, keeping first occurrences.
func dedup(names []string) []string {
	if len(names) < 2 {
		return names
	}
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
