package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/cssfmt/pkg/runner"
)

// TextReporter lists changed files, optionally with diffs, and a summary.
// Failed files are only counted; their errors are logged by the caller.
type TextReporter struct {
	opts   Options
	styles *Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: NewStyles(IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil && flushErr != nil {
			err = fmt.Errorf("flush: %w", flushErr)
		}
	}()

	if result == nil {
		return 0, nil
	}

	changed := 0
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return changed, fmt.Errorf("report: %w", err)
		}

		switch {
		case file.Err != nil:
			continue
		case file.Changed:
			changed++
			if err := r.writeChanged(file); err != nil {
				return changed, err
			}
		case r.opts.ListUnchanged:
			fmt.Fprintln(r.bw, r.styles.Dim.Render("unchanged "+file.Display))
		}
	}

	if r.opts.ShowSummary {
		if changed > 0 && r.opts.Diff {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprintln(r.bw, r.styles.FormatSummary(result.Stats, r.opts.Write))
	}

	return changed, nil
}

func (r *TextReporter) writeChanged(file runner.FileOutcome) error {
	if r.opts.Diff {
		diff, err := NewFileDiff(file.Display, file.Original, file.Formatted)
		if err != nil {
			return err
		}
		writeDiff(r.bw, r.styles, diff)
		return nil
	}

	verb := r.styles.Changed.Render("would reformat")
	if file.Written {
		verb = r.styles.Written.Render("reformatted")
	}
	fmt.Fprintln(r.bw, verb+" "+r.styles.FilePath.Render(file.Display))
	return nil
}
