package kumihan

import (
	"path"
	"strings"
)

// Sentinel is the block marker sentinel. A line starting with it opens a
// block; a line containing exactly the sentinel closes one.
const Sentinel = ";;;"

// escapePrefix at line start renders a literal sentinel instead of a marker.
const escapePrefix = "###"

// tocKeyword is the single-purpose table-of-contents marker, handled outside
// the generic keyword table.
const tocKeyword = "目次"

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".bmp":  true,
}

// IsCloseMarker is true iff the trimmed line is exactly the close sentinel.
func IsCloseMarker(line string) bool {
	return strings.TrimSpace(line) == Sentinel
}

// IsOpeningMarker is true iff the trimmed line matches the block-open
// grammar: the sentinel followed by at least one token, and not the bare
// close sentinel alone.
func IsOpeningMarker(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, Sentinel) || IsCloseMarker(line) {
		return false
	}
	return markerContent(trimmed) != ""
}

// markerContent strips the leading sentinel and, if present, a trailing
// sentinel (single-line marker form) from an already-trimmed line.
func markerContent(trimmed string) string {
	inner := strings.TrimPrefix(trimmed, Sentinel)
	if strings.HasSuffix(inner, Sentinel) {
		inner = inner[:len(inner)-len(Sentinel)]
	}
	return strings.TrimSpace(inner)
}

// ParseMarker tokenizes a block-open line into its keyword names and its
// attribute assignments. Keywords are joined by '+' or full-width '＋';
// attr=value pairs are space-delimited from keyword tokens, values may be
// quoted. Every token is trimmed. Validity of the keyword names is not
// checked here; that is the block parser's business.
func ParseMarker(line string) ([]string, map[string]string) {
	inner := markerContent(strings.TrimSpace(line))
	inner = strings.ReplaceAll(inner, "＋", "+")
	var names []string
	attrs := make(map[string]string)
	for _, token := range strings.Split(inner, "+") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		for _, field := range strings.Fields(token) {
			if k, v, ok := strings.Cut(field, "="); ok && k != "" {
				attrs[k] = strings.Trim(v, `"'`)
				continue
			}
			names = append(names, field)
		}
	}
	return names, attrs
}

// isImageMarker recognizes the single-line image form ";;;name.ext;;;",
// where ext is a known image extension.
func isImageMarker(trimmed string) (string, bool) {
	inner := markerContent(trimmed)
	if inner == "" || strings.ContainsAny(inner, "+ ") {
		return "", false
	}
	if imageExtensions[strings.ToLower(path.Ext(inner))] {
		return inner, true
	}
	return "", false
}

// isTOCMarker recognizes the single-purpose table-of-contents marker.
func isTOCMarker(trimmed string) bool {
	return markerContent(trimmed) == tocKeyword
}

// IsSingleLineMarker is true for opening markers that are complete on one
// line and thus never expect a close sentinel: the image form and the
// table-of-contents marker. Every other opening marker collects a body,
// trailing sentinel or not.
func IsSingleLineMarker(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !IsOpeningMarker(trimmed) {
		return false
	}
	if _, ok := isImageMarker(trimmed); ok {
		return true
	}
	return isTOCMarker(trimmed)
}

// unescapeLine rewrites a line-initial escape sequence into the literal
// sentinel. Lines without the escape pass through unchanged.
func unescapeLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, escapePrefix) {
		return Sentinel + trimmed[len(escapePrefix):]
	}
	return line
}

// isEscapedLine is true for lines carrying the line-initial escape.
func isEscapedLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), escapePrefix)
}
