package parser

import (
	"fmt"

	"github.com/yaklabco/cssfmt/pkg/source"
)

// Error is a syntax error with its position in the source.
type Error struct {
	// Pos is the byte offset of the error.
	Pos int
	// Line and Column are 1-based.
	Line    int
	Column  int
	Message string

	// fatal errors abort parsing instead of triggering a fallback.
	fatal bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

func newError(lines source.LineBounds, pos int, format string, args ...any) *Error {
	line, column := lines.Position(pos)
	return &Error{
		Pos:     pos,
		Line:    line,
		Column:  column,
		Message: fmt.Sprintf(format, args...),
	}
}
