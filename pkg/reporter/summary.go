package reporter

import (
	"fmt"
	"strings"

	"github.com/yaklabco/cssfmt/pkg/runner"
)

// plural returns word with an "s" unless n is one.
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// FormatSummary formats run statistics as a single line.
// Example: "12 files checked, 3 would be reformatted, 1 failed".
func (s *Styles) FormatSummary(stats runner.Stats, write bool) string {
	checked := stats.FilesFormatted + stats.FilesFailed
	if checked == 0 {
		return s.Dim.Render("No stylesheets found")
	}

	if stats.FilesChanged == 0 && stats.FilesFailed == 0 {
		if checked == 1 {
			return s.Success.Render("1 file is formatted")
		}
		return s.Success.Render(fmt.Sprintf("All %d files are formatted", checked))
	}

	parts := []string{plural(checked, "file") + " checked"}

	if stats.FilesChanged > 0 {
		if write {
			parts = append(parts, s.Written.Render(fmt.Sprintf("%d reformatted", stats.FilesWritten)))
		} else {
			parts = append(parts, s.Changed.Render(fmt.Sprintf("%d would be reformatted", stats.FilesChanged)))
		}
	}
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesFailed)))
	}

	return strings.Join(parts, ", ")
}
