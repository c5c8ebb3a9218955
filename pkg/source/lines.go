// Package source provides line metadata over stylesheet source text.
package source

import "sort"

// LineBounds records the byte offset of every newline in a source text.
// Line 1 implicitly starts at offset 0.
//
// A LineBounds is never mutated after construction and is safe for
// concurrent use.
type LineBounds struct {
	// newlines holds the offsets of every '\n', strictly increasing.
	newlines []int
	length   int
}

// New scans source once and records every newline offset.
func New(source string) LineBounds {
	var newlines []int
	for idx := range len(source) {
		if source[idx] == '\n' {
			newlines = append(newlines, idx)
		}
	}
	return LineBounds{newlines: newlines, length: len(source)}
}

// LineCount returns the number of lines in the source.
// An empty source has one (empty) line.
func (lb LineBounds) LineCount() int {
	return len(lb.newlines) + 1
}

// LineDistance returns the number of line boundaries between start and end.
// It returns 0 when both offsets are on the same line.
// end must be greater than or equal to start.
func (lb LineBounds) LineDistance(start, end int) int {
	if end <= start {
		return 0
	}
	// Number of newlines with offset < end minus those with offset < start.
	return sort.SearchInts(lb.newlines, end) - sort.SearchInts(lb.newlines, start)
}

// Position converts a byte offset to 1-based line and column numbers.
// Column counts bytes, not runes.
// Returns (0, 0) if the offset is out of range.
func (lb LineBounds) Position(offset int) (int, int) {
	if offset < 0 || offset > lb.length {
		return 0, 0
	}

	lineIdx := sort.SearchInts(lb.newlines, offset)
	lineStart := 0
	if lineIdx > 0 {
		lineStart = lb.newlines[lineIdx-1] + 1
	}

	return lineIdx + 1, offset - lineStart + 1
}

// LineStart returns the offset of the first byte of the line containing offset.
func (lb LineBounds) LineStart(offset int) int {
	lineIdx := sort.SearchInts(lb.newlines, offset)
	if lineIdx == 0 {
		return 0
	}
	return lb.newlines[lineIdx-1] + 1
}

// Indentation returns the width of the whitespace run between the start of
// the line containing offset and offset itself, with tabs counted as
// tabWidth columns. Non-whitespace text before offset stops the count.
func Indentation(source string, offset, tabWidth int) int {
	if offset > len(source) {
		offset = len(source)
	}

	start := offset
	for start > 0 && source[start-1] != '\n' {
		start--
	}

	width := 0
	for _, char := range source[start:offset] {
		switch char {
		case ' ':
			width++
		case '\t':
			width += tabWidth
		default:
			return width
		}
	}
	return width
}
