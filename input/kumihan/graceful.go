package kumihan

import (
	"strings"

	"golang.org/x/text/width"
)

// ErrorType is the closed taxonomy of graceful syntax diagnostics.
type ErrorType int8

const (
	ErrUnknownKeyword ErrorType = iota
	ErrUnclosedBlock
	ErrStrayCloseMarker
	ErrMalformedSyntax
	ErrInternal
)

func (e ErrorType) String() string {
	switch e {
	case ErrUnknownKeyword:
		return "unknown-keyword"
	case ErrUnclosedBlock:
		return "unclosed-block"
	case ErrStrayCloseMarker:
		return "stray-close-marker"
	case ErrMalformedSyntax:
		return "malformed-syntax"
	case ErrInternal:
		return "internal"
	}
	return "invalid"
}

// Severity grades a graceful error.
type Severity int8

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// GracefulError is a structured, non-fatal syntax diagnostic. It is
// collected alongside (not instead of) the traditional error strings when
// the graceful-errors parameter is set, and never aborts a parse.
type GracefulError struct {
	Line        int // 1-based input line
	Column      int // 1-based display column
	Type        ErrorType
	Severity    Severity
	Message     string
	Context     string // offending line plus one line of surrounding context
	Suggestions []string
}

// displayColumn computes the 1-based display column of a byte offset in a
// line, counting East-Asian wide and full-width runes as two columns, the
// way a terminal or editor ruler would.
func displayColumn(line string, byteOffset int) int {
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	col := 1
	for _, r := range line[:byteOffset] {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			col += 2
		default:
			col++
		}
	}
	return col
}

// contextAround returns the offending line together with one line of
// surrounding context (the following line, or the preceding one at EOF).
func contextAround(lines []string, index int) string {
	if index < 0 || index >= len(lines) {
		return ""
	}
	if index+1 < len(lines) {
		return lines[index] + "\n" + lines[index+1]
	}
	if index > 0 {
		return lines[index-1] + "\n" + lines[index]
	}
	return lines[index]
}

// markerColumn locates the first non-blank rune of a line, as the column to
// report for marker-level diagnostics.
func markerColumn(line string) int {
	trimmed := strings.TrimLeft(line, " \t")
	return displayColumn(line, len(line)-len(trimmed))
}
