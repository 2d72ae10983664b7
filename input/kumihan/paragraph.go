package kumihan

import (
	"github.com/npillmayer/kumihan/engine/ast"
	"github.com/npillmayer/kumihan/engine/keywords"
)

// parseParagraph consumes contiguous paragraph lines starting at index
// start into one "paragraph" node, stopping at a blank line, a marker, a
// comment or a list line. Internal line breaks are preserved as part of the
// content; line-initial escapes render the literal sentinel; ruby
// annotations are resolved.
func parseParagraph(lines []string, classes []LineClass, start int, table *keywords.Table) (*ast.Node, int) {
	i := start
	var body []string
	for i < len(lines) && classes[i] == LineParagraph {
		body = append(body, lines[i])
		i++
	}
	para := ast.NewElement(ast.TypeParagraph)
	para.Children = bodyContent(body, table)
	return para, i
}
