package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cssfmt/pkg/syntax"
)

func tokenKinds(tokens []token) []tokenKind {
	kinds := make([]tokenKind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.kind)
	}
	return kinds
}

func TestScanKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		syntax   syntax.Syntax
		input    string
		expected []tokenKind
	}{
		{
			name:     "declaration",
			syntax:   syntax.CSS,
			input:    "color:red;",
			expected: []tokenKind{tokIdent, tokColon, tokIdent, tokSemicolon, tokEOF},
		},
		{
			name:     "numbers",
			syntax:   syntax.CSS,
			input:    "1 2.5em 50% -3 .5",
			expected: []tokenKind{tokNumber, tokDimension, tokPercentage, tokNumber, tokNumber, tokEOF},
		},
		{
			name:     "minus after value is a delimiter",
			syntax:   syntax.SCSS,
			input:    "10-2",
			expected: []tokenKind{tokNumber, tokDelim, tokNumber, tokEOF},
		},
		{
			name:     "scss interpolation",
			syntax:   syntax.SCSS,
			input:    "#{$a}",
			expected: []tokenKind{tokInterpStart, tokVariable, tokRBrace, tokEOF},
		},
		{
			name:     "hash in css",
			syntax:   syntax.CSS,
			input:    "#fff",
			expected: []tokenKind{tokHash, tokEOF},
		},
		{
			name:     "less interpolation",
			syntax:   syntax.Less,
			input:    "@{name}-x @@var",
			expected: []tokenKind{tokLessInterp, tokIdent, tokAtKeyword, tokEOF},
		},
		{
			name:     "unquoted url",
			syntax:   syntax.CSS,
			input:    "url(a.png) url('b.png')",
			expected: []tokenKind{tokURL, tokIdent, tokLParen, tokString, tokRParen, tokEOF},
		},
		{
			name:     "bang",
			syntax:   syntax.CSS,
			input:    "red ! important",
			expected: []tokenKind{tokIdent, tokBang, tokEOF},
		},
		{
			name:     "multi-character delimiters",
			syntax:   syntax.SCSS,
			input:    "$a...>=",
			expected: []tokenKind{tokVariable, tokDelim, tokDelim, tokEOF},
		},
		{
			name:     "unicode range",
			syntax:   syntax.CSS,
			input:    "U+0025-00FF",
			expected: []tokenKind{tokUnicodeRange, tokEOF},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tokens, _, err := scan(testCase.input, testCase.syntax)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, tokenKinds(tokens))
		})
	}
}

func TestScanDimensionUnit(t *testing.T) {
	t.Parallel()

	tokens, _, err := scan("12.5px", syntax.CSS)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, tokDimension, tokens[0].kind)
	assert.Equal(t, 4, tokens[0].unitStart)
}

func TestScanComments(t *testing.T) {
	t.Parallel()

	input := "a { /* block */ } // line\r\n"

	_, comments, err := scan(input, syntax.SCSS)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, syntax.BlockComment, comments[0].Kind)
	assert.Equal(t, "/* block */", comments[0].Content)
	assert.Equal(t, syntax.LineComment, comments[1].Kind)
	assert.Equal(t, "// line", comments[1].Content)

	// CSS has no line comments.
	tokens, comments, err := scan("a // b", syntax.CSS)
	require.NoError(t, err)
	assert.Empty(t, comments)
	assert.Equal(t, []tokenKind{tokIdent, tokDelim, tokDelim, tokIdent, tokEOF}, tokenKinds(tokens))
}

func TestScanSpaceBefore(t *testing.T) {
	t.Parallel()

	tokens, _, err := scan("a/**/b c", syntax.CSS)
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.False(t, tokens[0].spaceBefore)
	assert.True(t, tokens[1].spaceBefore, "comment counts as whitespace")
	assert.True(t, tokens[2].spaceBefore)
}

func TestScanErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		message string
		line    int
		column  int
	}{
		{"unterminated comment", "a {}\n/* x", "unterminated comment", 2, 1},
		{"unterminated string", "a { b: 'x\n}", "unterminated string", 1, 8},
		{"unterminated url", "a { b: url(x", "unterminated url", 1, 8},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := scan(testCase.input, syntax.CSS)
			require.Error(t, err)

			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, testCase.message, perr.Message)
			assert.Equal(t, testCase.line, perr.Line)
			assert.Equal(t, testCase.column, perr.Column)
		})
	}
}

func TestIndentTokens(t *testing.T) {
	t.Parallel()

	input := "a\n  color: red\n  b\n    top: 0\n"

	tokens, _, err := scan(input, syntax.Sass)
	require.NoError(t, err)

	tokens, err = indentTokens(input, tokens)
	require.NoError(t, err)

	expected := []tokenKind{
		tokIdent, tokLBrace,
		tokIdent, tokColon, tokIdent, tokSemicolon,
		tokIdent, tokLBrace,
		tokIdent, tokColon, tokNumber, tokSemicolon,
		tokRBrace, tokRBrace, tokEOF,
	}
	assert.Equal(t, expected, tokenKinds(tokens))
}

func TestIndentTokensContinuation(t *testing.T) {
	t.Parallel()

	input := "a,\n  b\n  color: red\n"

	tokens, _, err := scan(input, syntax.Sass)
	require.NoError(t, err)

	tokens, err = indentTokens(input, tokens)
	require.NoError(t, err)

	expected := []tokenKind{
		tokIdent, tokComma, tokIdent, tokLBrace,
		tokIdent, tokColon, tokIdent, tokSemicolon,
		tokRBrace, tokEOF,
	}
	assert.Equal(t, expected, tokenKinds(tokens))
}
