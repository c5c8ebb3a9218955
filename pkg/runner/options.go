// Package runner formats many stylesheets concurrently.
package runner

import (
	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and to
	// match ExcludeGlobs. If empty, the process working directory is used.
	WorkingDir string

	// Extensions restricts directory walks to these extensions (lowercase,
	// with leading dot). Empty means every known stylesheet extension.
	Extensions []string

	// ExcludeGlobs are doublestar patterns of files or directories to skip,
	// matched against slash-separated paths relative to WorkingDir. Patterns
	// without a slash also match a base name at any depth.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of files formatted at once.
	// 0 or negative means runtime.GOMAXPROCS(0).
	Jobs int

	// Write replaces files whose formatting changed.
	Write bool

	// Syntax forces the dialect of every file instead of detecting it.
	Syntax *syntax.Syntax

	// Ranges limits formatting to the statements intersecting these byte
	// ranges. Empty means the whole file.
	Ranges []syntax.Span

	// Format holds the formatter options.
	Format config.FormatOptions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
