package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/reporter"
	"github.com/yaklabco/cssfmt/pkg/runner"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Display:   "a.css",
				Syntax:    syntax.CSS,
				Original:  "a{color:red}\n",
				Formatted: "a {\n  color: red;\n}\n",
				Changed:   true,
			},
			{
				Display:   "b.scss",
				Syntax:    syntax.SCSS,
				Original:  "b {\n}\n",
				Formatted: "b {\n}\n",
			},
			{
				Display: "c.less",
				Err:     errors.New("1:3: unexpected end of input"),
			},
		},
		Stats: runner.Stats{
			FilesDiscovered: 3,
			FilesFormatted:  2,
			FilesChanged:    1,
			FilesFailed:     1,
			Duration:        1500 * time.Millisecond,
		},
	}
}

func textOptions(buf *bytes.Buffer) reporter.Options {
	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Color = reporter.ColorNever
	return opts
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*reporter.Options)
		result func() *runner.Result
		want   string
	}{
		{
			name:   "check",
			modify: func(*reporter.Options) {},
			result: sampleResult,
			want:   "would reformat a.css\n2 files checked, 1 would be reformatted, 1 failed\n",
		},
		{
			name: "write",
			modify: func(opts *reporter.Options) {
				opts.Write = true
			},
			result: func() *runner.Result {
				result := sampleResult()
				result.Files[0].Written = true
				result.Stats.FilesWritten = 1
				return result
			},
			want: "reformatted a.css\n2 files checked, 1 reformatted, 1 failed\n",
		},
		{
			name: "list unchanged without summary",
			modify: func(opts *reporter.Options) {
				opts.ListUnchanged = true
				opts.ShowSummary = false
			},
			result: sampleResult,
			want:   "would reformat a.css\nunchanged b.scss\n",
		},
		{
			name:   "all formatted",
			modify: func(*reporter.Options) {},
			result: func() *runner.Result {
				result := sampleResult()
				result.Files = result.Files[1:2]
				result.Stats = runner.Stats{FilesDiscovered: 1, FilesFormatted: 1}
				return result
			},
			want: "1 file is formatted\n",
		},
		{
			name:   "nothing found",
			modify: func(*reporter.Options) {},
			result: func() *runner.Result { return &runner.Result{} },
			want:   "No stylesheets found\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			opts := textOptions(&buf)
			testCase.modify(&opts)

			rep, err := reporter.New(opts)
			require.NoError(t, err)

			_, err = rep.Report(context.Background(), testCase.result())
			require.NoError(t, err)
			assert.Equal(t, testCase.want, buf.String())
		})
	}
}

func TestTextReporterDiff(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := textOptions(&buf)
	opts.Diff = true

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	changed, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	out := buf.String()
	assert.Contains(t, out, "diff --git a/a.css b/a.css\n")
	assert.Contains(t, out, "+  color: red;\n")
	assert.NotContains(t, out, "would reformat")
	assert.Contains(t, out, "\n\n2 files checked")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := textOptions(&buf)
	opts.Format = config.FormatJSON
	opts.Diff = true

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	changed, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	require.Len(t, output.Files, 3)
	assert.Equal(t, "a.css", output.Files[0].Path)
	assert.Equal(t, "css", output.Files[0].Syntax)
	assert.True(t, output.Files[0].Changed)
	assert.Contains(t, output.Files[0].Diff, "+++ b/a.css")
	assert.Empty(t, output.Files[1].Diff)
	assert.Equal(t, "1:3: unexpected end of input", output.Files[2].Error)
	assert.Empty(t, output.Files[2].Syntax)

	assert.Equal(t, reporter.JSONSummary{
		FilesChecked: 3,
		FilesChanged: 1,
		FilesFailed:  1,
		DurationMS:   1500,
	}, output.Summary)
}

func TestJSONReporterCompact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := textOptions(&buf)
	opts.Format = config.FormatJSON
	opts.Compact = true

	rep, err := reporter.New(opts)
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t,
		`{"version":"1.0.0","files":[],"summary":{"filesChecked":0,"filesChanged":0,"filesWritten":0,"filesFailed":0,"durationMs":0}}`+"\n",
		buf.String())
}

func TestNewUnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "sarif"})
	require.Error(t, err)
}

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, reporter.IsColorEnabled(reporter.ColorAlways, &buf))
	assert.False(t, reporter.IsColorEnabled(reporter.ColorNever, &buf))
	assert.False(t, reporter.IsColorEnabled(reporter.ColorAuto, &buf))
}
