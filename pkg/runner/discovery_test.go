package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cssfmt/pkg/runner"
)

// tree creates files below a temp dir and returns the dir.
func tree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()

	out := make([]string, 0, len(paths))
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"a.css":                   "",
		"b.scss":                  "",
		"c.sass":                  "",
		"d.less":                  "",
		"readme.md":               "",
		".hidden.css":             "",
		".cache/e.css":            "",
		"vendor/lib.css":          "",
		"src/components/btn.scss": "",
		"src/theme.min.css":       "",
		"node_modules/x/y.css":    "",
	}

	tests := []struct {
		name    string
		paths   []string
		exclude []string
		exts    []string
		want    []string
	}{
		{
			name: "walks the working directory",
			want: []string{
				"a.css", "b.scss", "c.sass", "d.less",
				"node_modules/x/y.css", "src/components/btn.scss", "src/theme.min.css", "vendor/lib.css",
			},
		},
		{
			name:    "exclude globs",
			exclude: []string{"vendor/**", "node_modules", "*.min.css"},
			want:    []string{"a.css", "b.scss", "c.sass", "d.less", "src/components/btn.scss"},
		},
		{
			name:    "double star in the middle",
			exclude: []string{"src/**/*.scss"},
			paths:   []string{"src"},
			want:    []string{"src/theme.min.css"},
		},
		{
			name:  "extension filter",
			paths: []string{"."},
			exts:  []string{".less", ".sass"},
			want:  []string{"c.sass", "d.less"},
		},
		{
			name:  "named files are deduplicated and kept regardless of extension",
			paths: []string{"readme.md", "a.css", "./a.css", "src"},
			want:  []string{"a.css", "readme.md", "src/components/btn.scss", "src/theme.min.css"},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			root := tree(t, files)
			got, err := runner.Discover(context.Background(), runner.Options{
				Paths:        testCase.paths,
				WorkingDir:   root,
				ExcludeGlobs: testCase.exclude,
				Extensions:   testCase.exts,
			})
			require.NoError(t, err)
			assert.Equal(t, testCase.want, relAll(t, root, got))
		})
	}
}

func TestDiscoverMissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscoverSymlinks(t *testing.T) {
	t.Parallel()

	root := tree(t, map[string]string{"real/a.css": "", "main.css": ""})
	outside := tree(t, map[string]string{"linked.css": ""})
	if err := os.Symlink(outside, filepath.Join(root, "shared")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := runner.Discover(context.Background(), runner.Options{WorkingDir: root})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.css", "real/a.css"}, relAll(t, root, got))

	got, err = runner.Discover(context.Background(), runner.Options{WorkingDir: root, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestMatchesAny(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rel      string
		isDir    bool
		patterns []string
		want     bool
	}{
		{"dist/app.css", false, []string{"dist/**"}, true},
		{"dist", true, []string{"dist/**"}, true},
		{"a/b/dist", true, []string{"dist"}, true},
		{"a/b/c.min.css", false, []string{"*.min.css"}, true},
		{"a/b/c.css", false, []string{"a/*.css"}, false},
		{"a/b/c.css", false, []string{"a/**/*.css"}, true},
		{"a/b/c.css", false, []string{"./a/b/c.css"}, true},
		{"a/b/c.css", false, nil, false},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.want, runner.MatchesAny(testCase.rel, testCase.isDir, testCase.patterns),
			"%s %v", testCase.rel, testCase.patterns)
	}
}
