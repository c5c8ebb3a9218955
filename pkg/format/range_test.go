package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/format"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

func spanOf(t *testing.T, src, needle string) syntax.Span {
	t.Helper()

	start := strings.Index(src, needle)
	require.GreaterOrEqual(t, start, 0, "%q not found", needle)
	return syntax.Span{Start: start, End: start + len(needle)}
}

func TestFormatRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		selection string
		wantCode  string
		wantText  string
	}{
		{
			name:      "single declaration",
			src:       ".a {\n  color:red;  font-size: 16px;\n}\n",
			selection: "color:red;",
			wantCode:  "color: red;",
			wantText:  "color:red;",
		},
		{
			name:      "snaps to whole declarations",
			src:       ".a {\n  color:red;\n  top:0;\n  left:0;\n}\n",
			selection: "red;\n  to",
			wantCode:  "color: red;\n  top: 0;",
			wantText:  "color:red;\n  top:0;",
		},
		{
			name:      "top level rule",
			src:       "a{color:red}\nb{color:blue}\n",
			selection: "a{",
			wantCode:  "a {\n  color: red;\n}",
			wantText:  "a{color:red}",
		},
		{
			name:      "nested rule keeps indentation",
			src:       ".a {\n    b{top:0}\n}\n",
			selection: "b{top:0}",
			wantCode:  "b {\n      top: 0;\n    }",
			wantText:  "b{top:0}",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result, err := format.FormatRange(testCase.src, spanOf(t, testCase.src, testCase.selection),
				syntax.SCSS, config.DefaultFormatOptions())
			require.NoError(t, err)
			assert.Equal(t, testCase.wantCode, result.Code)
			assert.Equal(t, testCase.wantText, result.Range.Text(testCase.src))
		})
	}
}

func TestFormatRangeEmpty(t *testing.T) {
	t.Parallel()

	src := "a{}\n\n\nb{}"

	result, err := format.FormatRange(src, syntax.Span{Start: 2, End: 2}, syntax.CSS, config.DefaultFormatOptions())
	require.NoError(t, err)
	assert.Empty(t, result.Code)
	assert.Equal(t, syntax.Span{Start: 2, End: 2}, result.Range)

	result, err = format.FormatRange(src, syntax.Span{Start: 4, End: 5}, syntax.CSS, config.DefaultFormatOptions())
	require.NoError(t, err)
	assert.Empty(t, result.Code)
	assert.Equal(t, syntax.Span{Start: 4, End: 4}, result.Range)
}

func TestFormatRangeOutOfBounds(t *testing.T) {
	t.Parallel()

	_, err := format.FormatRange("a{}", syntax.Span{Start: 1, End: 10}, syntax.CSS, config.DefaultFormatOptions())
	require.Error(t, err)

	var rangeErr *format.RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 10, rangeErr.End)
	assert.Equal(t, 3, rangeErr.Len)
}
