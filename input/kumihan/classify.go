package kumihan

import "strings"

// LineClass is the classification tag for one input line. The driver
// dispatches on it exhaustively; there is no open-ended line "type".
type LineClass int8

const (
	LineBlank LineClass = iota
	LineMarker
	LineComment
	LineList
	LineParagraph
)

func (c LineClass) String() string {
	switch c {
	case LineBlank:
		return "blank"
	case LineMarker:
		return "marker"
	case LineComment:
		return "comment"
	case LineList:
		return "list"
	case LineParagraph:
		return "paragraph"
	}
	return "invalid"
}

// ClassifyLine tags a single line. Escaped lines (line-initial "###") are
// paragraph content, not comments.
func ClassifyLine(line string) LineClass {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return LineBlank
	case strings.HasPrefix(trimmed, Sentinel):
		return LineMarker
	case isEscapedLine(line):
		return LineParagraph
	case strings.HasPrefix(trimmed, "#"):
		return LineComment
	case ClassifyListLine(line) != NoList:
		return LineList
	}
	return LineParagraph
}

// ClassifyLines pre-scans all lines in one O(n) pass. The result is purely a
// performance cache for the driver: parsing with or without it yields the
// same node sequence.
func ClassifyLines(lines []string) []LineClass {
	classes := make([]LineClass, len(lines))
	for i, line := range lines {
		classes[i] = ClassifyLine(line)
	}
	return classes
}
