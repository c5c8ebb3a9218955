package edit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/edit"
	"github.com/yaklabco/cssfmt/pkg/format"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

func replace(start, end int, text string) edit.TextEdit {
	return edit.TextEdit{Span: syntax.Span{Start: start, End: end}, NewText: text}
}

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []edit.TextEdit
		want    string
	}{
		{
			name:    "no edits",
			content: "a{}",
			want:    "a{}",
		},
		{
			name:    "single replacement",
			content: "a{color:red}",
			edits:   []edit.TextEdit{replace(2, 11, "color: red;")},
			want:    "a{color: red;}",
		},
		{
			name:    "insertion",
			content: "a{}",
			edits:   []edit.TextEdit{replace(1, 1, " ")},
			want:    "a {}",
		},
		{
			name:    "deletion",
			content: "a  {}",
			edits:   []edit.TextEdit{replace(1, 2, "")},
			want:    "a {}",
		},
		{
			name:    "unsorted edits",
			content: "abcdef",
			edits:   []edit.TextEdit{replace(4, 6, "ZZ"), replace(0, 2, "XX")},
			want:    "XXcdZZ",
		},
		{
			name:    "adjacent edits",
			content: "abcdef",
			edits:   []edit.TextEdit{replace(0, 2, "XX"), replace(2, 4, "YY"), replace(4, 6, "ZZ")},
			want:    "XXYYZZ",
		},
		{
			name:    "duplicate edits collapse",
			content: "abc",
			edits:   []edit.TextEdit{replace(0, 1, "A"), replace(0, 1, "A")},
			want:    "Abc",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := edit.Apply(testCase.content, testCase.edits)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestApplyErrors(t *testing.T) {
	t.Parallel()

	_, err := edit.Apply("abc", []edit.TextEdit{replace(2, 5, "x")})
	var validationErr *edit.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "exceeds content length")

	_, err = edit.Apply("abc", []edit.TextEdit{replace(-1, 1, "x")})
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "negative")

	_, err = edit.Apply("abc", []edit.TextEdit{replace(2, 1, "x")})
	require.ErrorAs(t, err, &validationErr)

	_, err = edit.Apply("abcdef", []edit.TextEdit{replace(0, 3, "x"), replace(2, 4, "y")})
	var conflictErr *edit.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, syntax.Span{Start: 0, End: 3}, conflictErr.First.Span)
	assert.Equal(t, syntax.Span{Start: 2, End: 4}, conflictErr.Second.Span)
}

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	assert.NoError(t, edit.DetectConflicts(nil))
	assert.NoError(t, edit.DetectConflicts([]edit.TextEdit{replace(0, 2, ""), replace(2, 2, "x"), replace(2, 3, "")}))
	assert.Error(t, edit.DetectConflicts([]edit.TextEdit{replace(0, 2, ""), replace(1, 3, "")}))
}

func TestFromRange(t *testing.T) {
	t.Parallel()

	src := "a{color:red}\nb{top:0}\n"

	result, err := format.FormatRange(src, syntax.Span{Start: 0, End: 2}, syntax.CSS, config.DefaultFormatOptions())
	require.NoError(t, err)

	got, err := edit.Apply(src, []edit.TextEdit{edit.FromRange(result)})
	require.NoError(t, err)
	assert.Equal(t, "a {\n  color: red;\n}\nb{top:0}\n", got)
}
