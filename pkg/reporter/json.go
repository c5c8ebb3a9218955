package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/cssfmt/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path    string `json:"path"`
	Syntax  string `json:"syntax,omitempty"`
	Changed bool   `json:"changed"`
	Written bool   `json:"written,omitempty"`
	Diff    string `json:"diff,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked int   `json:"filesChecked"`
	FilesChanged int   `json:"filesChanged"`
	FilesWritten int   `json:"filesWritten"`
	FilesFailed  int   `json:"filesFailed"`
	DurationMS   int64 `json:"durationMs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("flush: %w", flushErr)
		}
	}()

	output, err := r.buildOutput(result)
	if err != nil {
		return 0, err
	}

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesChanged, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) (*JSONOutput, error) {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   []JSONFileResult{},
	}
	if result == nil {
		return output, nil
	}

	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:    file.Display,
			Changed: file.Changed,
			Written: file.Written,
		}

		if file.Err != nil {
			entry.Error = file.Err.Error()
			output.Summary.FilesFailed++
		} else {
			entry.Syntax = file.Syntax.String()
		}

		if file.Changed {
			output.Summary.FilesChanged++
			if r.opts.Diff {
				diff, err := NewFileDiff(file.Display, file.Original, file.Formatted)
				if err != nil {
					return nil, err
				}
				entry.Diff = diff.Text
			}
		}
		if file.Written {
			output.Summary.FilesWritten++
		}

		output.Files = append(output.Files, entry)
		output.Summary.FilesChecked++
	}
	output.Summary.DurationMS = result.Stats.Duration.Milliseconds()

	return output, nil
}
