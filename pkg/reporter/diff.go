package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// diffContextLines is the number of unchanged lines shown around a change.
const diffContextLines = 3

// FileDiff is a unified diff between a file and its formatted content.
type FileDiff struct {
	Path      string
	Text      string
	Additions int
	Deletions int
}

// NewFileDiff computes the unified diff of original against formatted. The
// headers name path as a/path and b/path, in git style.
func NewFileDiff(path, original, formatted string) (*FileDiff, error) {
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(formatted),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  diffContextLines,
	})
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", path, err)
	}

	diff := &FileDiff{Path: path, Text: text}
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			diff.Additions++
		case strings.HasPrefix(line, "-"):
			diff.Deletions++
		}
	}
	return diff, nil
}

// HasChanges reports whether the diff contains any hunk.
func (d *FileDiff) HasChanges() bool {
	return d != nil && d.Text != ""
}

// writeDiff outputs a diff with a git-style header, one styled line at a time.
func writeDiff(out io.Writer, styles *Styles, diff *FileDiff) {
	fmt.Fprintln(out, styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", diff.Path, diff.Path)))

	for _, line := range strings.Split(strings.TrimSuffix(diff.Text, "\n"), "\n") {
		var styled string
		switch {
		case strings.HasPrefix(line, "@@"):
			styled = styles.DiffHunk.Render(line)
		case strings.HasPrefix(line, "+"):
			styled = styles.DiffAdd.Render(line)
		case strings.HasPrefix(line, "-"):
			styled = styles.DiffRemove.Render(line)
		default:
			styled = styles.DiffContext.Render(line)
		}
		fmt.Fprintln(out, styled)
	}
}
