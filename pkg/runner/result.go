package runner

import (
	"time"

	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// FileOutcome is the result of formatting one file.
type FileOutcome struct {
	// Path is the absolute file path, or the name given for standard input.
	Path string

	// Display is Path relative to the working directory when possible.
	Display string

	// Syntax is the dialect the file was parsed as.
	Syntax syntax.Syntax

	// Original is the content that was read.
	Original string

	// Formatted is the formatter output. Empty when Err is set.
	Formatted string

	// Changed reports whether Formatted differs from Original.
	Changed bool

	// Written reports whether the file was replaced on disk.
	Written bool

	// Duration is the time spent formatting.
	Duration time.Duration

	// Err is set if the file could not be read, parsed or written.
	Err error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesFormatted  int
	FilesChanged    int
	FilesWritten    int
	FilesFailed     int
	Duration        time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome of every file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// NewResult builds a Result from outcomes that were produced one at a time,
// such as the single outcome of FormatSource.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{Files: make([]FileOutcome, 0, len(outcomes))}
	for _, outcome := range outcomes {
		result.Stats.FilesDiscovered++
		result.Stats.Duration += outcome.Duration
		result.accumulate(outcome)
	}
	return result
}

// HasChanges reports whether any file would change.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesFailed > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Err != nil {
		r.Stats.FilesFailed++
		return
	}

	r.Stats.FilesFormatted++
	if outcome.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
}
