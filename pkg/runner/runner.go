package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/cssfmt/internal/logging"
	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/format"
	"github.com/yaklabco/cssfmt/pkg/fsutil"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// ErrUnknownSyntax is returned for files whose dialect cannot be determined.
var ErrUnknownSyntax = errors.New("cannot determine stylesheet syntax")

// FormatFunc formats one stylesheet.
type FormatFunc func(source string, syn syntax.Syntax, opts config.FormatOptions) (string, error)

// Runner formats files concurrently.
type Runner struct {
	// Format is the formatter applied to every file.
	Format FormatFunc
}

// New creates a Runner using format.FormatText.
func New() *Runner {
	return &Runner{Format: format.FormatText}
}

// Run discovers files under opts.Paths and formats them concurrently.
// Outcomes are ordered by path. A file that fails is recorded in its outcome
// and does not stop the others; only discovery failures and cancellation are
// returned as errors.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	outcomes := make([]FileOutcome, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for i, path := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.processFile(groupCtx, path, opts)
			return nil
		})
	}
	waitErr := group.Wait()

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	for _, outcome := range outcomes {
		if outcome.Path == "" {
			continue
		}
		result.accumulate(outcome)
	}
	result.Stats.Duration = time.Since(start)

	if waitErr != nil {
		return result, fmt.Errorf("run cancelled: %w", waitErr)
	}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

// processFile reads, formats and optionally rewrites one file.
func (r *Runner) processFile(ctx context.Context, path string, opts Options) FileOutcome {
	logger := logging.FromContext(ctx)

	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return FileOutcome{Path: path, Display: displayPath(opts.WorkingDir, path), Err: err}
	}

	outcome := r.FormatSource(path, content, opts)
	outcome.Display = displayPath(opts.WorkingDir, path)
	if outcome.Err != nil || !outcome.Changed || !opts.Write {
		return outcome
	}

	written, err := fsutil.Replace(ctx, snap, []byte(outcome.Formatted))
	if err != nil {
		outcome.Err = fmt.Errorf("write %s: %w", outcome.Display, err)
		return outcome
	}
	outcome.Written = written
	logger.Debug("wrote file", logging.FieldPath, outcome.Display)

	return outcome
}

// FormatSource formats content that was read from name. The dialect is
// opts.Syntax when set, otherwise it is detected from name and content.
// Nothing is written.
func (r *Runner) FormatSource(name string, content []byte, opts Options) FileOutcome {
	outcome := FileOutcome{Path: name, Display: name, Original: string(content)}

	var (
		syn syntax.Syntax
		ok  bool
	)
	if opts.Syntax != nil {
		syn, ok = *opts.Syntax, true
	} else {
		syn, ok = syntax.Detect(name, content)
	}
	if !ok {
		outcome.Err = fmt.Errorf("%s: %w", name, ErrUnknownSyntax)
		return outcome
	}
	outcome.Syntax = syn

	start := time.Now()
	var (
		formatted string
		err       error
	)
	if len(opts.Ranges) > 0 {
		formatted, err = formatRanges(outcome.Original, opts.Ranges, syn, opts.Format)
	} else {
		formatted, err = r.Format(outcome.Original, syn, opts.Format)
	}
	outcome.Duration = time.Since(start)
	if err != nil {
		outcome.Err = fmt.Errorf("%s: %w", name, err)
		return outcome
	}

	outcome.Formatted = formatted
	outcome.Changed = formatted != outcome.Original
	return outcome
}

// displayPath returns path relative to workDir when it lies inside it.
func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || !filepath.IsLocal(rel) {
		return path
	}
	return filepath.ToSlash(rel)
}
