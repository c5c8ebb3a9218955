package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/parser"
	"github.com/yaklabco/cssfmt/pkg/runner"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

func TestRun(t *testing.T) {
	t.Parallel()

	root := tree(t, map[string]string{
		"ok.css":      "a {\n  color: red;\n}\n",
		"messy.scss":  "$x:1;a{b:$x}",
		"broken.less": "a { color: red",
		"sub/d.sass":  "a\n  color: red\n",
	})

	result, err := runner.New().Run(context.Background(), runner.Options{
		WorkingDir: root,
		Jobs:       2,
		Format:     config.DefaultFormatOptions(),
	})
	require.NoError(t, err)

	displays := make([]string, 0, len(result.Files))
	for _, file := range result.Files {
		displays = append(displays, file.Display)
	}
	assert.Equal(t, []string{"broken.less", "messy.scss", "ok.css", "sub/d.sass"}, displays)

	broken := result.Files[0]
	require.Error(t, broken.Err)
	var parseErr *parser.Error
	require.ErrorAs(t, broken.Err, &parseErr)

	messy := result.Files[1]
	require.NoError(t, messy.Err)
	assert.Equal(t, syntax.SCSS, messy.Syntax)
	assert.True(t, messy.Changed)
	assert.False(t, messy.Written)
	assert.Equal(t, "$x: 1;\na {\n  b: $x;\n}\n", messy.Formatted)

	assert.False(t, result.Files[2].Changed)
	assert.Equal(t, syntax.Sass, result.Files[3].Syntax)

	assert.Equal(t, runner.Stats{
		FilesDiscovered: 4,
		FilesFormatted:  3,
		FilesChanged:    1,
		FilesFailed:     1,
		Duration:        result.Stats.Duration,
	}, result.Stats)
	assert.True(t, result.HasChanges())
	assert.True(t, result.HasErrors())

	content, err := os.ReadFile(filepath.Join(root, "messy.scss"))
	require.NoError(t, err)
	assert.Equal(t, "$x:1;a{b:$x}", string(content), "files are not written without Write")
}

func TestRunWrite(t *testing.T) {
	t.Parallel()

	root := tree(t, map[string]string{
		"a.css": "a{color:red}",
		"b.css": "b {\n  top: 0;\n}\n",
	})

	result, err := runner.New().Run(context.Background(), runner.Options{
		WorkingDir: root,
		Write:      true,
		Format:     config.DefaultFormatOptions(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.FilesWritten)
	assert.True(t, result.Files[0].Written)
	assert.False(t, result.Files[1].Written)

	content, err := os.ReadFile(filepath.Join(root, "a.css"))
	require.NoError(t, err)
	assert.Equal(t, "a {\n  color: red;\n}\n", string(content))
}

func TestRunForcedSyntax(t *testing.T) {
	t.Parallel()

	root := tree(t, map[string]string{"theme.txt": "a{b:c}"})
	forced := syntax.Less

	var calls atomic.Int32
	run := &runner.Runner{Format: func(source string, syn syntax.Syntax, _ config.FormatOptions) (string, error) {
		calls.Add(1)
		assert.Equal(t, syntax.Less, syn)
		return strings.ToUpper(source), nil
	}}

	result, err := run.Run(context.Background(), runner.Options{
		Paths:      []string{"theme.txt"},
		WorkingDir: root,
		Syntax:     &forced,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "A{B:C}", result.Files[0].Formatted)
	assert.EqualValues(t, 1, calls.Load())
}

func TestRunUnknownSyntax(t *testing.T) {
	t.Parallel()

	root := tree(t, map[string]string{"notes.unknownext": ""})

	result, err := runner.New().Run(context.Background(), runner.Options{
		Paths:      []string{"notes.unknownext"},
		WorkingDir: root,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	require.ErrorIs(t, result.Files[0].Err, runner.ErrUnknownSyntax)
}

func TestRunFormatterErrorsDoNotStopTheBatch(t *testing.T) {
	t.Parallel()

	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[name+".css"] = name
	}
	root := tree(t, files)

	errBoom := errors.New("boom")
	run := &runner.Runner{Format: func(source string, _ syntax.Syntax, _ config.FormatOptions) (string, error) {
		if source == "c" || source == "f" {
			return "", errBoom
		}
		return source, nil
	}}

	result, err := run.Run(context.Background(), runner.Options{WorkingDir: root, Jobs: 3})
	require.NoError(t, err)
	require.Len(t, result.Files, 8)
	assert.Equal(t, 2, result.Stats.FilesFailed)
	assert.Equal(t, 6, result.Stats.FilesFormatted)
	require.ErrorIs(t, result.Files[2].Err, errBoom)
	require.ErrorIs(t, result.Files[5].Err, errBoom)
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	root := tree(t, map[string]string{"a.css": "a{}"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New().Run(ctx, runner.Options{WorkingDir: root})
	require.ErrorIs(t, err, context.Canceled)
}

func TestFormatSource(t *testing.T) {
	t.Parallel()

	outcome := runner.New().FormatSource("<stdin>", []byte("a{color:red}"), runner.Options{
		Format: config.DefaultFormatOptions(),
	})
	require.ErrorIs(t, outcome.Err, runner.ErrUnknownSyntax)

	css := syntax.CSS
	outcome = runner.New().FormatSource("<stdin>", []byte("a{color:red}"), runner.Options{
		Syntax: &css,
		Format: config.DefaultFormatOptions(),
	})
	require.NoError(t, outcome.Err)
	assert.Equal(t, "a {\n  color: red;\n}\n", outcome.Formatted)
	assert.True(t, outcome.Changed)
}

func TestFormatSourceRanges(t *testing.T) {
	t.Parallel()

	src := "a{color:red}\nb{top:0}\nc{left:0}\n"
	css := syntax.CSS

	outcome := runner.New().FormatSource("in.css", []byte(src), runner.Options{
		Syntax: &css,
		Ranges: []syntax.Span{{Start: 0, End: 2}, {Start: 22, End: 24}},
		Format: config.DefaultFormatOptions(),
	})
	require.NoError(t, outcome.Err)
	assert.Equal(t, "a {\n  color: red;\n}\nb{top:0}\nc {\n  left: 0;\n}\n", outcome.Formatted)

	outcome = runner.New().FormatSource("in.css", []byte(src), runner.Options{
		Ranges: []syntax.Span{{Start: 0, End: 100}},
		Format: config.DefaultFormatOptions(),
	})
	require.Error(t, outcome.Err)
}

func TestNewResult(t *testing.T) {
	t.Parallel()

	result := runner.NewResult(
		runner.FileOutcome{Path: "a", Changed: true},
		runner.FileOutcome{Path: "b", Err: errors.New("boom")},
	)

	assert.Len(t, result.Files, 2)
	assert.Equal(t, 2, result.Stats.FilesDiscovered)
	assert.Equal(t, 1, result.Stats.FilesFormatted)
	assert.True(t, result.HasChanges())
	assert.True(t, result.HasErrors())
}
