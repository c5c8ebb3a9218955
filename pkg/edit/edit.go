// Package edit splices formatted fragments back into a stylesheet.
package edit

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/cssfmt/pkg/format"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// TextEdit replaces the bytes covered by Span with NewText.
type TextEdit struct {
	Span    syntax.Span
	NewText string
}

// FromRange turns the result of format.FormatRange into an edit.
func FromRange(result *format.RangeResult) TextEdit {
	return TextEdit{Span: result.Range, NewText: result.Code}
}

// ValidationError describes an edit outside the content.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Span.Start, e.Edit.Span.End, e.Message)
}

// ConflictError describes overlapping edits.
type ConflictError struct {
	First  TextEdit
	Second TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.First.Span.Start, e.First.Span.End,
		e.Second.Span.Start, e.Second.Span.End)
}

// Validate checks that every edit lies within content of length contentLen.
func Validate(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.Span.Start < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.Span.End < edit.Span.Start:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.Span.End > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.Span.End, contentLen),
			}
		}
	}
	return nil
}

// Sort orders edits by start offset, then by end offset.
func Sort(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		return cmp.Or(cmp.Compare(a.Span.Start, b.Span.Start), cmp.Compare(a.Span.End, b.Span.End))
	})
}

// DetectConflicts returns the first pair of overlapping edits in a sorted
// slice. Edits that only touch are allowed.
func DetectConflicts(sorted []TextEdit) error {
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Span.Start < sorted[i-1].Span.End {
			return &ConflictError{First: sorted[i-1], Second: sorted[i]}
		}
	}
	return nil
}

// Prepare validates edits and returns a sorted copy free of conflicts.
// Identical edits, as produced by two selections snapping to the same
// statements, are collapsed.
func Prepare(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if err := Validate(edits, contentLen); err != nil {
		return nil, err
	}

	sorted := slices.Clone(edits)
	Sort(sorted)
	sorted = slices.Compact(sorted)

	if err := DetectConflicts(sorted); err != nil {
		return nil, err
	}
	return sorted, nil
}

// Apply returns content with every edit applied.
func Apply(content string, edits []TextEdit) (string, error) {
	if len(edits) == 0 {
		return content, nil
	}

	sorted, err := Prepare(edits, len(content))
	if err != nil {
		return "", err
	}

	delta := 0
	for _, edit := range sorted {
		delta += len(edit.NewText) - edit.Span.Len()
	}

	var out strings.Builder
	out.Grow(len(content) + delta)

	cursor := 0
	for _, edit := range sorted {
		out.WriteString(content[cursor:edit.Span.Start])
		out.WriteString(edit.NewText)
		cursor = edit.Span.End
	}
	out.WriteString(content[cursor:])

	return out.String(), nil
}
