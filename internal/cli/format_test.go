package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cssfmt/internal/cli"
	"github.com/yaklabco/cssfmt/pkg/reporter"
)

const (
	messyCSS     = "a{color:red}\n"
	formattedCSS = "a {\n  color: red;\n}\n"
)

type execResult struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command inside dir with the given stdin.
func execute(t *testing.T, dir, stdin string, args ...string) execResult {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--cwd", dir, "--color", "never"}, args...))

	err := cmd.Execute()
	return execResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestFormatPrintsFormattedFile(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.css": messyCSS})

	result := execute(t, dir, "", "a.css")
	require.NoError(t, result.err)
	assert.Equal(t, formattedCSS, result.stdout)

	content, err := os.ReadFile(filepath.Join(dir, "a.css"))
	require.NoError(t, err)
	assert.Equal(t, messyCSS, string(content), "print mode must not touch the file")
}

func TestFormatCheck(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"a.css":      messyCSS,
		"ok/b.css":   formattedCSS,
		"notes.txt":  "not a stylesheet",
		"sub/c.scss": "$a:1;\n",
	})

	result := execute(t, dir, "", "--check", ".")
	require.ErrorIs(t, result.err, cli.ErrFilesChanged)
	assert.Equal(t, cli.ExitChanged, cli.ExitCode(result.err))
	assert.Equal(t,
		"would reformat a.css\nwould reformat sub/c.scss\n3 files checked, 2 would be reformatted\n",
		result.stdout)
}

func TestFormatCheckClean(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.css": formattedCSS})

	result := execute(t, dir, "", "--check", "a.css")
	require.NoError(t, result.err)
	assert.Equal(t, "1 file is formatted\n", result.stdout)
}

func TestFormatWrite(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.css": messyCSS, "b.css": formattedCSS})

	result := execute(t, dir, "", "--write")
	require.NoError(t, result.err)
	assert.Equal(t, "reformatted a.css\n2 files checked, 1 reformatted\n", result.stdout)

	content, err := os.ReadFile(filepath.Join(dir, "a.css"))
	require.NoError(t, err)
	assert.Equal(t, formattedCSS, string(content))
}

func TestFormatDiff(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.css": messyCSS})

	result := execute(t, dir, "", "--diff", "a.css")
	require.NoError(t, result.err)
	assert.Contains(t, result.stdout, "diff --git a/a.css b/a.css\n")
	assert.Contains(t, result.stdout, "-a{color:red}\n")
	assert.Contains(t, result.stdout, "+  color: red;\n")
}

func TestFormatIgnore(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"a.css":            messyCSS,
		"vendor/lib.css":   messyCSS,
		".cssfmt.yml":      "ignore:\n  - \"*.min.css\"\n",
		"dist/app.min.css": messyCSS,
	})

	result := execute(t, dir, "", "--check", "--ignore", "vendor/**", ".")
	require.ErrorIs(t, result.err, cli.ErrFilesChanged)
	assert.Equal(t, "would reformat a.css\n1 file checked, 1 would be reformatted\n", result.stdout)
}

func TestFormatStdin(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	result := execute(t, dir, "$a:1;\n", "--syntax", "scss", "-")
	require.NoError(t, result.err)
	assert.Equal(t, "$a: 1;\n", result.stdout)

	result = execute(t, dir, messyCSS, "--stdin-filename", "in.css")
	require.NoError(t, result.err)
	assert.Equal(t, formattedCSS, result.stdout)
}

func TestFormatStdinUnknownSyntax(t *testing.T) {
	t.Parallel()

	result := execute(t, t.TempDir(), messyCSS, "-")
	require.ErrorIs(t, result.err, cli.ErrFormatFailed)
	assert.Empty(t, result.stdout)
	assert.Contains(t, result.stderr, "format failed")
}

func TestFormatParseErrorContinues(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.css": messyCSS, "broken.css": "a{color:red"})

	result := execute(t, dir, "", "--write", ".")
	require.ErrorIs(t, result.err, cli.ErrFormatFailed)
	assert.Equal(t, cli.ExitFormatError, cli.ExitCode(result.err))
	assert.Contains(t, result.stderr, "broken.css")
	assert.Contains(t, result.stdout, "reformatted a.css\n")
	assert.Contains(t, result.stdout, "1 failed")

	content, err := os.ReadFile(filepath.Join(dir, "a.css"))
	require.NoError(t, err)
	assert.Equal(t, formattedCSS, string(content))
}

func TestFormatJSONReport(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.css": messyCSS})

	result := execute(t, dir, "", "--check", "--format", "json", "a.css")
	require.ErrorIs(t, result.err, cli.ErrFilesChanged)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(result.stdout), &output))
	require.Len(t, output.Files, 1)
	assert.Equal(t, "a.css", output.Files[0].Path)
	assert.True(t, output.Files[0].Changed)
	assert.Equal(t, 1, output.Summary.FilesChanged)
}

func TestFormatOptionFlags(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.css": messyCSS})

	result := execute(t, dir, "", "--indent-width", "4", "a.css")
	require.NoError(t, result.err)
	assert.Equal(t, "a {\n    color: red;\n}\n", result.stdout)

	result = execute(t, dir, "", "--use-tabs", "a.css")
	require.NoError(t, result.err)
	assert.Equal(t, "a {\n\tcolor: red;\n}\n", result.stdout)

	result = execute(t, dir, "", "--set", "indentWidth=3", "a.css")
	require.NoError(t, result.err)
	assert.Equal(t, "a {\n   color: red;\n}\n", result.stdout)
}

func TestFormatProjectConfig(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{
		"a.css":       "a{color:#FFF}\n",
		".cssfmt.yml": "hex_case: upper\nindent_width: 4\n",
	})

	result := execute(t, dir, "", "a.css")
	require.NoError(t, result.err)
	assert.Equal(t, "a {\n    color: #FFF;\n}\n", result.stdout)
}

func TestFormatInvalidOptionIsWarning(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.css": messyCSS})

	result := execute(t, dir, "", "--set", "quotes=sideways", "a.css")
	require.NoError(t, result.err)
	assert.Equal(t, formattedCSS, result.stdout)
	assert.Contains(t, result.stderr, "quotes")
}

func TestFormatUsageErrors(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.css": messyCSS})

	tests := []struct {
		name string
		args []string
	}{
		{"unknown syntax", []string{"--syntax", "stylus", "a.css"}},
		{"unknown report format", []string{"--format", "sarif", "a.css"}},
		{"bad set", []string{"--set", "print_width", "a.css"}},
		{"bad ignore pattern", []string{"--ignore", "[", "a.css"}},
		{"unknown flag", []string{"--frobnicate"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result := execute(t, dir, "", testCase.args...)
			require.ErrorIs(t, result.err, cli.ErrInvalidUsage)
			assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(result.err))
		})
	}
}

func TestFormatWriteAndCheckConflict(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.css": messyCSS})

	result := execute(t, dir, "", "--write", "--check", "a.css")
	require.Error(t, result.err)
}

func TestFormatBrokenConfig(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.css": messyCSS, ".cssfmt.yml": "indent_width: [\n"})

	result := execute(t, dir, "", "a.css")
	require.ErrorIs(t, result.err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(result.err))
}

func TestFormatRange(t *testing.T) {
	t.Parallel()

	dir := writeFiles(t, map[string]string{"a.css": "a{color:red}\nb{top:0}\n"})

	result := execute(t, dir, "", "--range", "13:15", "a.css")
	require.NoError(t, result.err)
	assert.Equal(t, "a{color:red}\nb {\n  top: 0;\n}\n", result.stdout)

	result = execute(t, dir, "", "--range", "13", "a.css")
	require.ErrorIs(t, result.err, cli.ErrInvalidUsage)

	result = execute(t, dir, "", "--range", "0:1", "a.css", "b.css")
	require.ErrorIs(t, result.err, cli.ErrInvalidUsage)
}
