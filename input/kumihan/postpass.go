package kumihan

import (
	"fmt"

	"github.com/npillmayer/kumihan/engine/ast"
)

// tocMinHeadings is the number of headings from which a table of contents
// is included in the document.
const tocMinHeadings = 2

// Finalize runs the document-level post-pass over a complete node sequence:
// headings get sequential ids, footnotes are counted, and a table of
// contents is generated when the document carries at least two headings.
// An explicit 目次 marker only determines where the table is placed;
// without one it is prepended. The sequential parser calls Finalize itself;
// the chunked driver calls it once over the merged chunk results, so both
// paths number headings identically.
func Finalize(nodes []*ast.Node) (out []*ast.Node, headings int, footnotes int) {
	var entries []*ast.Node
	for _, n := range nodes {
		n.Walk(func(m *ast.Node) bool {
			if isHeadingType(m.Type) {
				headings++
				id := fmt.Sprintf("heading-%d", headings)
				m.SetAttr("id", id)
				entry := ast.NewElement(ast.TypeListItem, ast.NewText(m.InnerText()))
				entry.SetAttr("level", m.Type[1:])
				entry.SetAttr("ref", id)
				entries = append(entries, entry)
			}
			if m.Type == ast.TypeSpan && m.Attr("class") == "footnote" {
				footnotes++
			}
			return true
		})
	}
	if headings < tocMinHeadings {
		return dropPlaceholders(nodes, nil), headings, footnotes
	}
	toc := ast.NewElement(ast.TypeDiv, ast.NewElement(ast.TypeUList, entries...))
	toc.SetAttr("class", "toc")
	return dropPlaceholders(nodes, toc), headings, footnotes
}

// dropPlaceholders removes 目次 placeholder nodes. If toc is non-nil it
// replaces the first placeholder, or is prepended when the document has
// none.
func dropPlaceholders(nodes []*ast.Node, toc *ast.Node) []*ast.Node {
	out := make([]*ast.Node, 0, len(nodes)+1)
	placed := false
	for _, n := range nodes {
		if n.Type == tocPlaceholder {
			if toc != nil && !placed {
				out = append(out, toc)
				placed = true
			}
			continue
		}
		out = append(out, n)
	}
	if toc != nil && !placed {
		out = append([]*ast.Node{toc}, out...)
	}
	return out
}

func isHeadingType(typ string) bool {
	for level := 1; level <= 5; level++ {
		if typ == ast.Heading(level) {
			return true
		}
	}
	return false
}
