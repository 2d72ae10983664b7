package kumihan

import (
	"strings"
	"unicode"

	"github.com/npillmayer/kumihan/engine/ast"
	"github.com/npillmayer/kumihan/engine/keywords"
)

// ListKind classifies a line's list shape.
type ListKind int8

const (
	NoList ListKind = iota
	UnorderedList
	OrderedList
)

// ClassifyListLine decides whether a line is a list item. Unordered items
// start with '-', '*' or the full-width middle dot '・'; ordered items with
// a digit run followed by '.'. The bullet must be followed by non-empty
// text.
func ClassifyListLine(line string) ListKind {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return NoList
	}
	runes := []rune(trimmed)
	switch runes[0] {
	case '-', '*', '・':
		if strings.TrimSpace(string(runes[1:])) != "" {
			return UnorderedList
		}
		return NoList
	}
	if unicode.IsDigit(runes[0]) {
		i := 0
		for i < len(runes) && unicode.IsDigit(runes[i]) {
			i++
		}
		if i < len(runes) && runes[i] == '.' &&
			strings.TrimSpace(string(runes[i+1:])) != "" {
			return OrderedList
		}
	}
	return NoList
}

// listItemText strips the bullet or number prefix from a list line. The
// literal value of an ordered-list number is ignored; renumbering is a
// rendering concern.
func listItemText(line string) string {
	trimmed := strings.TrimSpace(line)
	runes := []rune(trimmed)
	switch runes[0] {
	case '-', '*', '・':
		return strings.TrimSpace(string(runes[1:]))
	}
	i := 0
	for i < len(runes) && unicode.IsDigit(runes[i]) {
		i++
	}
	return strings.TrimSpace(string(runes[i+1:]))
}

// parseUnorderedList consumes a contiguous run of unordered items starting
// at index start and builds one "ul" node with an "li" per item. The run
// ends at the first non-list line, blank lines included. Mixed '-'/'・'/'*'
// bullets merge into a single run; that is observed Kumihan behavior and is
// kept on purpose. Item text may carry an inline marker and ruby notation.
func parseUnorderedList(lines []string, start int, table *keywords.Table) (*ast.Node, int) {
	return parseListRun(lines, start, table, UnorderedList, ast.TypeUList)
}

// parseOrderedList mirrors parseUnorderedList for numeric-prefixed runs.
func parseOrderedList(lines []string, start int, table *keywords.Table) (*ast.Node, int) {
	return parseListRun(lines, start, table, OrderedList, ast.TypeOList)
}

func parseListRun(lines []string, start int, table *keywords.Table, kind ListKind, typ string) (*ast.Node, int) {
	list := ast.NewElement(typ)
	i := start
	for i < len(lines) && ClassifyListLine(lines[i]) == kind {
		item := ast.NewElement(ast.TypeListItem)
		item.Children = parseInline(listItemText(lines[i]), table)
		list.AppendChild(item)
		i++
	}
	tracer().Debugf("list run of %d items, lines %d–%d", len(list.Children), start, i-1)
	return list, i
}
