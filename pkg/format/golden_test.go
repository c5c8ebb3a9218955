package format_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"

	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/format"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// TestFormatGolden formats every stylesheet in testdata and compares the
// result with the matching .golden file. Run with -update to rewrite them.
func TestFormatGolden(t *testing.T) {
	t.Parallel()

	entries, err := os.ReadDir("testdata")
	require.NoError(t, err)

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !syntax.IsStylesheetPath(name) {
			continue
		}

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			src, err := os.ReadFile(filepath.Join("testdata", name))
			require.NoError(t, err)

			syn, ok := syntax.Detect(name, src)
			require.True(t, ok)

			got, err := format.FormatText(string(src), syn, config.DefaultFormatOptions())
			require.NoError(t, err)
			golden.Assert(t, got, name+".golden")

			again, err := format.FormatText(got, syn, config.DefaultFormatOptions())
			require.NoError(t, err)
			require.Equal(t, got, again, "formatting is not idempotent")
			require.False(t, strings.Contains(got, " \n"), "trailing whitespace in output")
		})
	}
}

// TestFormatOptionsGolden formats the fixtures under testdata/options with
// one option changed from its default.
func TestFormatOptionsGolden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		adjust func(opts *config.FormatOptions)
	}{
		{
			name: "grid",
			src:  "grid.css",
		},
		{
			name: "operator-after",
			src:  "operators.scss",
			adjust: func(opts *config.FormatOptions) {
				opts.Layout.PrintWidth = 30
			},
		},
		{
			name: "operator-before",
			src:  "operators.scss",
			adjust: func(opts *config.FormatOptions) {
				opts.Layout.PrintWidth = 30
				opts.Language.OperatorLineBreak = config.OperatorLineBreakBefore
			},
		},
		{
			name: "trailing-comma",
			src:  "trailing-comma.scss",
			adjust: func(opts *config.FormatOptions) {
				opts.Language.TrailingComma = true
			},
		},
		{
			name: "single-line-block",
			src:  "single-line-block.css",
			adjust: func(opts *config.FormatOptions) {
				opts.Language.SingleLineBlockThreshold = 2
			},
		},
		{
			name: "keyframes-percentage",
			src:  "keyframes.css",
			adjust: func(opts *config.FormatOptions) {
				opts.Language.KeyframeSelectorNotation = config.KeyframeSelectorNotationPercentage
			},
		},
		{
			name: "keyframes-keyword",
			src:  "keyframes.css",
			adjust: func(opts *config.FormatOptions) {
				opts.Language.KeyframeSelectorNotation = config.KeyframeSelectorNotationKeyword
			},
		},
		{
			name: "pseudo-parens",
			src:  "pseudo-parens.css",
			adjust: func(opts *config.FormatOptions) {
				opts.Layout.PrintWidth = 20
				opts.Language.LineBreakInPseudoParens = true
			},
		},
		{
			name: "selectors-always",
			src:  "selectors-always.css",
			adjust: func(opts *config.FormatOptions) {
				opts.Language.BlockSelectorLineBreak = config.BlockSelectorLineBreakAlways
			},
		},
		{
			name: "selectors-wrap",
			src:  "selectors-wrap.css",
			adjust: func(opts *config.FormatOptions) {
				opts.Layout.PrintWidth = 20
				opts.Language.BlockSelectorLineBreak = config.BlockSelectorLineBreakWrap
			},
		},
		{
			name: "comments",
			src:  "comments.scss",
			adjust: func(opts *config.FormatOptions) {
				opts.Language.FormatComments = true
			},
		},
		{
			name: "selector-override",
			src:  "selector-override.css",
		},
		{
			name: "prefer-single-line",
			src:  "prefer-single-line.css",
			adjust: func(opts *config.FormatOptions) {
				opts.Language.PreferSingleLine = true
			},
		},
		{
			name: "prefer-source-lines",
			src:  "prefer-single-line.css",
		},
		{
			name: "attr-quotes-always",
			src:  "attr-quotes.css",
		},
		{
			name: "attr-quotes-ignore",
			src:  "attr-quotes.css",
			adjust: func(opts *config.FormatOptions) {
				opts.Language.AttrValueQuotes = config.AttrValueQuotesIgnore
			},
		},
		{
			name: "raw-values",
			src:  "raw-values.css",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			opts := config.DefaultFormatOptions()
			if testCase.adjust != nil {
				testCase.adjust(&opts)
			}

			src, err := os.ReadFile(filepath.Join("testdata", "options", testCase.src))
			require.NoError(t, err)

			syn, ok := syntax.Detect(testCase.src, src)
			require.True(t, ok)

			got, err := format.FormatText(string(src), syn, opts)
			require.NoError(t, err)
			golden.Assert(t, got, filepath.Join("options", testCase.name+".golden"))

			again, err := format.FormatText(got, syn, opts)
			require.NoError(t, err)
			require.Equal(t, got, again, "formatting is not idempotent")
		})
	}
}
