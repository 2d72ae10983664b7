package chunked

import (
	"strings"

	"github.com/npillmayer/kumihan/core/parameters"
	"github.com/npillmayer/kumihan/input/kumihan"
)

// Chunk is a contiguous slice of input lines, parsed independently by one
// worker. StartLine is inclusive, EndLine exclusive, both 0-based.
type Chunk struct {
	ID        int
	Lines     []string
	StartLine int
	EndLine   int
}

// Decide tells whether the chunked path should run. It is a pure function
// of input size, line count and processor count: chunking activates only
// when at least one threshold is exceeded and at least two logical
// processors are available.
func Decide(sizeBytes, lineCount, procs int, regs *parameters.ParseRegisters) bool {
	if procs < 2 {
		return false
	}
	return sizeBytes >= regs.N(parameters.P_PARALLELTHRESHOLDBYTES) ||
		lineCount >= regs.N(parameters.P_PARALLELTHRESHOLDLINES)
}

// split slices the line array into adaptively sized chunks. The target
// chunk size derives from the processor count, clamped to the configured
// per-chunk line range. Cuts happen only at safe boundaries, i.e. blank
// lines outside any open block, so a chunked parse groups paragraphs and
// blocks exactly like a sequential one. A document offering no safe
// boundary comes back as a single chunk.
func split(lines []string, procs int, regs *parameters.ParseRegisters) []Chunk {
	target := len(lines) / (procs * 2)
	if min := regs.N(parameters.P_MINCHUNKLINES); target < min {
		target = min
	}
	if max := regs.N(parameters.P_MAXCHUNKLINES); target > max {
		target = max
	}
	safe := safeBoundaries(lines)
	var chunks []Chunk
	start := 0
	for start < len(lines) {
		end := start + target
		for end < len(lines) && !safe[end] {
			end++
		}
		if end > len(lines) {
			end = len(lines)
		}
		// a short tail merges into the previous chunk
		if len(lines)-end < regs.N(parameters.P_MINCHUNKLINES) {
			end = len(lines)
		}
		chunks = append(chunks, Chunk{
			ID:        len(chunks),
			Lines:     lines[start:end],
			StartLine: start,
			EndLine:   end,
		})
		start = end
	}
	tracer().Debugf("split %d lines into %d chunks (target %d)", len(lines), len(chunks), target)
	return chunks
}

// safeBoundaries marks the line indices in front of which the input may be
// cut: blank lines that are not part of an open block's body. An unclosed
// block suppresses all boundaries up to EOF, which keeps the
// missing-close-marker diagnostics identical to the sequential path.
func safeBoundaries(lines []string) []bool {
	safe := make([]bool, len(lines))
	inBlock := false
	for i, line := range lines {
		safe[i] = !inBlock && strings.TrimSpace(line) == ""
		if inBlock {
			if kumihan.IsCloseMarker(line) {
				inBlock = false
			}
		} else if opensBlockBody(line) {
			inBlock = true
		}
	}
	return safe
}

// opensBlockBody is true for marker lines that expect a close sentinel on a
// later line. Only the single-line marker forms (";;;photo.png;;;",
// ";;;目次;;;") are complete on their own line; every other opening marker
// collects a body, so a trailing sentinel on, say, ";;;太字;;;" must not be
// mistaken for a closed block.
func opensBlockBody(line string) bool {
	return kumihan.IsOpeningMarker(line) && !kumihan.IsSingleLineMarker(line)
}
