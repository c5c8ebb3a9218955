package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/cssfmt/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output: "auto" (default), "always" or "never".
	Color string

	// Write reports changed files as rewritten rather than as needing it.
	Write bool

	// Diff includes a unified diff for every changed file.
	Diff bool

	// ListUnchanged also lists files that were already formatted.
	ListUnchanged bool

	// ShowSummary displays aggregate statistics after the file list.
	ShowSummary bool

	// Compact disables indentation of JSON output.
	Compact bool
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      config.FormatText,
		Color:       ColorAuto,
		ShowSummary: true,
	}
}
