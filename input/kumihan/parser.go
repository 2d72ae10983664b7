package kumihan

import (
	"strings"

	"github.com/npillmayer/kumihan/core"
	"github.com/npillmayer/kumihan/core/parameters"
	"github.com/npillmayer/kumihan/engine/ast"
	"github.com/npillmayer/kumihan/engine/keywords"
)

// Statistics summarizes one parse session for observability callers.
type Statistics struct {
	TotalLines    int
	ErrorCount    int
	HeadingCount  int
	FootnoteCount int
}

// Parser is the sequential parsing engine. A Parser may be re-used for
// independent documents; every Parse call fully resets the session state.
// A Parser instance must not be shared between goroutines; the chunked
// driver constructs one private Parser per chunk instead.
type Parser struct {
	table *keywords.Table
	regs  *parameters.ParseRegisters

	// session state, re-initialized by every Parse call
	lines       []string
	classes     []LineClass
	cursor      int
	nodes       []*ast.Node
	errors      []string
	graceful    []GracefulError
	stats       Statistics
	postpass    bool
	cancelCheck func() bool
}

// NewParser creates a parser governed by the given registers. Passing nil
// uses the documented defaults.
func NewParser(regs *parameters.ParseRegisters) *Parser {
	if regs == nil {
		regs = parameters.NewParseRegisters()
	}
	return &Parser{table: keywords.Default(), regs: regs, postpass: true}
}

// SetKeywordTable replaces the keyword table for subsequent parse calls.
func (p *Parser) SetKeywordTable(table *keywords.Table) {
	if table != nil {
		p.table = table
	}
}

// SetDocumentPostpass controls whether Parse runs the document-level
// post-pass (heading ids, table of contents). The chunked driver disables
// it per chunk and runs Finalize once over the merged sequence.
func (p *Parser) SetDocumentPostpass(on bool) {
	p.postpass = on
}

// SetCancelCheck installs a cancellation probe, polled between dispatches.
func (p *Parser) SetCancelCheck(check func() bool) {
	p.cancelCheck = check
}

func (p *Parser) reset() {
	p.lines = nil
	p.classes = nil
	p.cursor = 0
	p.nodes = nil
	p.errors = nil
	p.graceful = nil
	p.stats = Statistics{}
}

// Parse converts a complete, already-decoded document into its node
// sequence. It never panics: malformed input produces error nodes (and,
// with the graceful parameter set, structured diagnostics). The returned
// error is reserved for fatal conditions (invalid parameters,
// cancellation, or an internal failure outside graceful mode), and even
// then the nodes gathered so far are returned alongside it.
func (p *Parser) Parse(text string) ([]*ast.Node, error) {
	p.reset()
	if err := p.regs.Validate(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, nil
	}
	p.lines = strings.Split(text, "\n")
	p.stats.TotalLines = len(p.lines)
	p.classes = ClassifyLines(p.lines)
	gracefulMode := p.regs.B(parameters.P_GRACEFULERRORS)
	tracer().Debugf("parsing %d lines, graceful=%v", len(p.lines), gracefulMode)

	for p.cursor < len(p.lines) {
		if p.cancelCheck != nil && p.cancelCheck() {
			return p.finish(), core.ErrorWithCode(nil, core.ECANCELED)
		}
		node, next, err := p.dispatch(gracefulMode)
		if err != nil {
			return p.finish(), err
		}
		if node != nil {
			p.nodes = append(p.nodes, node)
		}
		if next <= p.cursor {
			// liveness: the cursor must advance on every dispatch
			tracer().Errorf("dispatch did not advance at line %d", p.cursor+1)
			next = p.cursor + 1
		}
		p.cursor = next
	}
	return p.finish(), nil
}

// dispatch classifies the current line and delegates to the block, list or
// paragraph parser. It is the boundary at which panics are contained: in
// graceful mode a panic becomes a structured diagnostic and parsing
// continues on the next line; otherwise it surfaces as a fatal error.
func (p *Parser) dispatch(gracefulMode bool) (node *ast.Node, next int, err error) {
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("parser panic at line %d: %v", p.cursor+1, r)
			if !gracefulMode {
				node, next = nil, p.cursor
				err = core.Error(core.EINTERNAL, "parser failure at line %d: %v", p.cursor+1, r)
				return
			}
			p.graceful = append(p.graceful, GracefulError{
				Line:     p.cursor + 1,
				Column:   1,
				Type:     ErrInternal,
				Severity: SeverityError,
				Message:  "この行を解析できませんでした",
				Context:  contextAround(p.lines, p.cursor),
			})
			node, next, err = nil, p.cursor+1, nil
		}
	}()

	switch p.classes[p.cursor] {
	case LineBlank:
		next = p.cursor + 1
		for next < len(p.lines) && p.classes[next] == LineBlank {
			next++
		}
		return nil, next, nil
	case LineComment:
		return nil, p.cursor + 1, nil
	case LineMarker:
		r := parseBlock(p.lines, p.cursor, p.table)
		if r.node.IsError() {
			p.errors = append(p.errors, r.node.Attr("message"))
		}
		if gracefulMode && r.diag != nil {
			p.graceful = append(p.graceful, *r.diag)
		}
		return r.node, r.next, nil
	case LineList:
		if ClassifyListLine(p.lines[p.cursor]) == OrderedList {
			node, next = parseOrderedList(p.lines, p.cursor, p.table)
		} else {
			node, next = parseUnorderedList(p.lines, p.cursor, p.table)
		}
		return node, next, nil
	case LineParagraph:
		node, next = parseParagraph(p.lines, p.classes, p.cursor, p.table)
		return node, next, nil
	}
	return nil, p.cursor + 1, nil
}

func (p *Parser) finish() []*ast.Node {
	if p.postpass {
		p.nodes, p.stats.HeadingCount, p.stats.FootnoteCount = Finalize(p.nodes)
	}
	p.stats.ErrorCount = len(p.errors)
	return p.nodes
}

// Errors returns the traditional error strings of the last parse call, in
// input order.
func (p *Parser) Errors() []string {
	return p.errors
}

// GracefulErrors returns the structured diagnostics of the last parse call.
// Empty unless the graceful-errors parameter is set.
func (p *Parser) GracefulErrors() []GracefulError {
	return p.graceful
}

// Statistics returns the session statistics of the last parse call.
func (p *Parser) Statistics() Statistics {
	return p.stats
}
