package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// Discover finds the stylesheets selected by opts. Named files are taken as
// given unless excluded; directories are walked for files with a stylesheet
// extension, skipping hidden entries. It returns a sorted, deduplicated list
// of absolute paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	walker := &walker{ctx: ctx, workDir: workDir, opts: opts, seen: map[string]struct{}{}}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := walker.walk(absPath); err != nil {
				return nil, err
			}
			continue
		}
		if !walker.excluded(absPath, false) {
			walker.add(absPath)
		}
	}

	slices.Sort(walker.files)
	return walker.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type walker struct {
	ctx     context.Context //nolint:containedctx // Scoped to one Discover call.
	workDir string
	opts    Options
	seen    map[string]struct{}
	files   []string
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// walk collects matching files below root.
func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || (path != root && w.excluded(path, true)) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return w.followSymlink(path)
		}

		if !hidden && w.hasExtension(path) && !w.excluded(path, false) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// followSymlink handles a symlink met during a walk. File links are treated
// as files; directory links are walked only with FollowSymlinks.
func (w *walker) followSymlink(path string) error {
	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // Broken symlinks are skipped.
	}
	info, err := os.Stat(realPath)
	if err != nil {
		return nil //nolint:nilerr // Inaccessible targets are skipped.
	}

	if info.IsDir() {
		if !w.opts.FollowSymlinks || w.excluded(path, true) {
			return nil
		}
		// Walk the target; WalkDir does not descend into a symlinked root.
		return w.walk(realPath)
	}

	if w.hasExtension(path) && !w.excluded(path, false) {
		w.add(path)
	}
	return nil
}

func (w *walker) hasExtension(path string) bool {
	if len(w.opts.Extensions) == 0 {
		return syntax.IsStylesheetPath(path)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(w.opts.Extensions, ext)
}

// excluded reports whether path matches one of the exclude globs.
func (w *walker) excluded(path string, isDir bool) bool {
	if len(w.opts.ExcludeGlobs) == 0 {
		return false
	}

	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		rel = path
	}
	return MatchesAny(filepath.ToSlash(rel), isDir, w.opts.ExcludeGlobs)
}

// MatchesAny reports whether the slash-separated relative path matches one
// of patterns. A pattern without a slash also matches the base name, and a
// directory matches a pattern that selects everything below it.
func MatchesAny(rel string, isDir bool, patterns []string) bool {
	base := rel
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		base = rel[i+1:]
	}

	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
		if match(pattern, rel) {
			return true
		}
		if !strings.Contains(strings.TrimSuffix(pattern, "/"), "/") && match(strings.TrimSuffix(pattern, "/"), base) {
			return true
		}
		if isDir && strings.HasSuffix(pattern, "/**") && match(pattern, rel+"/x") {
			return true
		}
	}
	return false
}

func match(pattern, name string) bool {
	matched, err := doublestar.Match(pattern, name)
	return err == nil && matched
}
