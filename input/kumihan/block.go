package kumihan

import (
	"path"
	"strings"

	"github.com/npillmayer/kumihan/engine/ast"
	"github.com/npillmayer/kumihan/engine/keywords"
)

// tocPlaceholder is the node type for an explicit 目次 marker. It never
// leaves the parser: the document post-pass replaces it with the generated
// table of contents (or drops it for documents with too few headings).
const tocPlaceholder = "toc-placeholder"

// blockState enumerates the states of the block parser's state machine.
type blockState int8

const (
	scanning blockState = iota
	openFound
	collectingBody
	closeFound
	eofUnclosed
)

// blockResult is what a block parse hands back to the driver: exactly one
// node (possibly an error node), the next line index, and an optional
// structured diagnostic for the graceful error engine.
type blockResult struct {
	node *ast.Node
	next int
	diag *GracefulError
}

// parseBlock consumes lines from a marker-open at index start to the
// matching close sentinel and builds one node from the marker's compound
// keyword list. Malformed blocks yield error nodes; the parser always
// advances past start, whatever the input looks like.
func parseBlock(lines []string, start int, table *keywords.Table) blockResult {
	trimmed := strings.TrimSpace(lines[start])
	state := scanning
	var names []string
	var attrs map[string]string
	var body []string
	i := start

	for {
		switch state {
		case scanning:
			if IsCloseMarker(lines[i]) {
				return strayCloseResult(lines, start)
			}
			state = openFound
		case openFound:
			if src, ok := isImageMarker(trimmed); ok {
				return imageResult(src, start)
			}
			if isTOCMarker(trimmed) {
				return blockResult{node: ast.NewElement(tocPlaceholder), next: start + 1}
			}
			names, attrs = ParseMarker(lines[i])
			if len(names) == 0 {
				return malformedMarkerResult(lines, start)
			}
			if unknown, ok := findUnknown(names, table); ok {
				return unknownKeywordResult(lines, start, unknown, table)
			}
			i++
			state = collectingBody
		case collectingBody:
			if i >= len(lines) {
				state = eofUnclosed
			} else if IsCloseMarker(lines[i]) {
				state = closeFound
			} else {
				body = append(body, lines[i])
				i++
			}
		case closeFound:
			node := nestKeywords(names, bodyContent(body, table), attrs, table)
			return blockResult{node: node, next: i + 1}
		case eofUnclosed:
			return unclosedResult(lines, start)
		}
	}
}

// bodyContent re-parses the collected body lines for inline notations,
// preserving internal line breaks. Escaped lines inside a body render the
// literal sentinel.
func bodyContent(body []string, table *keywords.Table) []*ast.Node {
	var content []*ast.Node
	for i, line := range body {
		if i > 0 {
			content = append(content, ast.NewText("\n"))
		}
		content = append(content, parseInline(unescapeLine(line), table)...)
	}
	return content
}

func imageResult(src string, start int) blockResult {
	alt := strings.TrimSuffix(path.Base(src), path.Ext(src))
	img := ast.NewElement(ast.TypeImage)
	img.SetAttr("src", src)
	img.SetAttr("alt", alt)
	return blockResult{node: img, next: start + 1}
}

func unknownKeywordResult(lines []string, start int, unknown string, table *keywords.Table) blockResult {
	node := unknownKeywordNode(unknown, table)
	// resync on the best-effort matching close, so subsequent blocks are
	// not thrown off
	next := start + 1
	for j := start + 1; j < len(lines); j++ {
		if IsCloseMarker(lines[j]) {
			next = j + 1
			break
		}
		if IsOpeningMarker(lines[j]) {
			break
		}
	}
	return blockResult{node: node, next: next, diag: &GracefulError{
		Line:        start + 1,
		Column:      markerColumn(lines[start]),
		Type:        ErrUnknownKeyword,
		Severity:    SeverityError,
		Message:     node.Attr("message"),
		Context:     contextAround(lines, start),
		Suggestions: table.Suggest(unknown),
	}}
}

func unclosedResult(lines []string, start int) blockResult {
	msg := "閉じマーカー ';;;' が見つかりません"
	return blockResult{node: ast.NewError(msg), next: len(lines), diag: &GracefulError{
		Line:     start + 1,
		Column:   markerColumn(lines[start]),
		Type:     ErrUnclosedBlock,
		Severity: SeverityError,
		Message:  msg,
		Context:  contextAround(lines, start),
	}}
}

func strayCloseResult(lines []string, start int) blockResult {
	msg := "対応する開きマーカーのない閉じマーカー ';;;' です"
	return blockResult{node: ast.NewError(msg), next: start + 1, diag: &GracefulError{
		Line:     start + 1,
		Column:   markerColumn(lines[start]),
		Type:     ErrStrayCloseMarker,
		Severity: SeverityWarning,
		Message:  msg,
		Context:  contextAround(lines, start),
	}}
}

func malformedMarkerResult(lines []string, start int) blockResult {
	msg := "不正なマーカー行です"
	return blockResult{node: ast.NewError(msg), next: start + 1, diag: &GracefulError{
		Line:     start + 1,
		Column:   markerColumn(lines[start]),
		Type:     ErrMalformedSyntax,
		Severity: SeverityError,
		Message:  msg,
		Context:  contextAround(lines, start),
	}}
}
