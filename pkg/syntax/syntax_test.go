package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cssfmt/pkg/syntax"
)

func TestParseSyntax(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    syntax.Syntax
		wantErr bool
	}{
		{input: "css", want: syntax.CSS},
		{input: "SCSS", want: syntax.SCSS},
		{input: " sass ", want: syntax.Sass},
		{input: "Less", want: syntax.Less},
		{input: "stylus", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			got, err := syntax.ParseSyntax(testCase.input)
			if testCase.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, name string) syntax.Syntax {
	t.Helper()

	got, err := syntax.ParseSyntax(name)
	require.NoError(t, err)
	return got
}

func TestSyntaxPredicates(t *testing.T) {
	t.Parallel()

	assert.False(t, syntax.CSS.IsSassLike())
	assert.True(t, syntax.SCSS.IsSassLike())
	assert.True(t, syntax.Sass.IsSassLike())
	assert.False(t, syntax.Less.IsSassLike())

	assert.False(t, syntax.CSS.AllowsLineComments())
	assert.True(t, syntax.Less.AllowsLineComments())
}

func TestSpan(t *testing.T) {
	t.Parallel()

	outer := syntax.Span{Start: 2, End: 10}

	assert.Equal(t, 8, outer.Len())
	assert.True(t, outer.Contains(syntax.Span{Start: 2, End: 10}))
	assert.True(t, outer.Contains(syntax.Span{Start: 4, End: 5}))
	assert.False(t, outer.Contains(syntax.Span{Start: 1, End: 5}))

	assert.True(t, outer.Intersects(syntax.Span{Start: 9, End: 12}))
	assert.False(t, outer.Intersects(syntax.Span{Start: 10, End: 12}))
	assert.True(t, outer.Intersects(syntax.Span{Start: 10, End: 10}))
	assert.False(t, outer.Intersects(syntax.Span{Start: 11, End: 11}))

	assert.Equal(t, "cd", syntax.Span{Start: 2, End: 4}.Text("abcdef"))
}
