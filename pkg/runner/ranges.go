package runner

import (
	"fmt"

	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/edit"
	"github.com/yaklabco/cssfmt/pkg/format"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// formatRanges formats every range against the original source and splices
// the results in. Ranges that snap to overlapping statements are an error.
func formatRanges(source string, ranges []syntax.Span, syn syntax.Syntax, opts config.FormatOptions) (string, error) {
	edits := make([]edit.TextEdit, 0, len(ranges))
	for _, span := range ranges {
		result, err := format.FormatRange(source, span, syn, opts)
		if err != nil {
			return "", err
		}
		edits = append(edits, edit.FromRange(result))
	}

	formatted, err := edit.Apply(source, edits)
	if err != nil {
		return "", fmt.Errorf("apply range edits: %w", err)
	}
	return formatted, nil
}
