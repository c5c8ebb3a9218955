package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/format"
	"github.com/yaklabco/cssfmt/pkg/parser"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

type formatCase struct {
	name   string
	syntax syntax.Syntax
	src    string
	want   string
}

var formatCases = []formatCase{
	{
		name:   "rule",
		syntax: syntax.CSS,
		src:    ".a{color:red;font-size:16px}",
		want:   ".a {\n  color: red;\n  font-size: 16px;\n}\n",
	},
	{
		name:   "media and",
		syntax: syntax.CSS,
		src:    "@media (min-width:10px)and(max-width:20px){}",
		want:   "@media (min-width: 10px) and (max-width: 20px) {\n}\n",
	},
	{
		name:   "empty",
		syntax: syntax.CSS,
		src:    "",
		want:   "",
	},
	{
		name:   "comment only",
		syntax: syntax.CSS,
		src:    "/* a */",
		want:   "/* a */\n",
	},
	{
		name:   "hex lowercased",
		syntax: syntax.CSS,
		src:    "a{color:#FFF}",
		want:   "a {\n  color: #fff;\n}\n",
	},
	{
		name:   "selector list on one line",
		syntax: syntax.CSS,
		src:    "a,b{color:red}",
		want:   "a, b {\n  color: red;\n}\n",
	},
	{
		name:   "selector list kept on separate lines",
		syntax: syntax.CSS,
		src:    "a,\nb{color:red}",
		want:   "a,\nb {\n  color: red;\n}\n",
	},
	{
		name:   "double quotes",
		syntax: syntax.CSS,
		src:    "a{content:'x'}",
		want:   "a {\n  content: \"x\";\n}\n",
	},
	{
		name:   "important lowercased",
		syntax: syntax.CSS,
		src:    "a{color:red!IMPORTANT}",
		want:   "a {\n  color: red !important;\n}\n",
	},
	{
		name:   "calc keeps needed parens",
		syntax: syntax.CSS,
		src:    "a{width:calc((1px + 2px) * 3)}",
		want:   "a {\n  width: calc((1px + 2px) * 3);\n}\n",
	},
	{
		name:   "scss variable",
		syntax: syntax.SCSS,
		src:    "$a:1px;",
		want:   "$a: 1px;\n",
	},
	{
		name:   "scss map and nested properties",
		syntax: syntax.SCSS,
		src: "$map: (a: 1, b: 2) !default;\n" +
			".icon-#{$name} {\n  font: {\n    family: x;\n  }\n  &:hover { color: red; }\n}\n",
		want: "$map: (a: 1, b: 2) !default;\n" +
			".icon-#{$name} {\n  font: {\n    family: x;\n  }\n  &:hover {\n    color: red;\n  }\n}\n",
	},
	{
		name:   "scss if else",
		syntax: syntax.SCSS,
		src:    ".x{@if $a{b:c}@else{b:d}}",
		want:   ".x {\n  @if $a {\n    b: c;\n  } @else {\n    b: d;\n  }\n}\n",
	},
	{
		name:   "less",
		syntax: syntax.Less,
		src: "@width: 10px;\n" +
			".m(@a; @b: 2) when (@a > 0) { width: @a; }\n" +
			".x { .m(1; 2) !important; #ns > .mixin(); &:extend(.y all); }\n" +
			"@detached: { color: red; };\n" +
			"@detached();\n",
		want: "@width: 10px;\n" +
			".m(@a; @b: 2) when (@a > 0) {\n  width: @a;\n}\n" +
			".x {\n  .m(1; 2) !important;\n  #ns > .mixin();\n  &:extend(.y all);\n}\n" +
			"@detached: {\n  color: red;\n}\n" +
			"@detached();\n",
	},
	{
		name:   "sass indented",
		syntax: syntax.Sass,
		src:    "=large\n  font-size: 2em\n.a\n  +large\n",
		want:   "@mixin large\n  font-size: 2em\n.a\n  @include large\n",
	},
	{
		name:   "comment after namespace pipe",
		syntax: syntax.CSS,
		src:    "ns|/* c */a{}",
		want:   "ns|/* c */a {\n}\n",
	},
	{
		name:   "multi-line sass map",
		syntax: syntax.SCSS,
		src:    "$breakpoints: (\n  small: 576px,\n  medium: 768px\n);\n",
		want:   "$breakpoints: (\n  small: 576px,\n  medium: 768px\n);\n",
	},
	{
		name:   "multi-line sass map in a block",
		syntax: syntax.SCSS,
		src:    ".a{$m:(\nx:1,\ny:2\n)}",
		want:   ".a {\n  $m: (\n    x: 1,\n    y: 2\n  );\n}\n",
	},
}

func TestFormatText(t *testing.T) {
	t.Parallel()

	for _, testCase := range formatCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := format.FormatText(testCase.src, testCase.syntax, config.DefaultFormatOptions())
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestFormatTextIdempotent(t *testing.T) {
	t.Parallel()

	for _, testCase := range formatCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := format.FormatText(testCase.want, testCase.syntax, config.DefaultFormatOptions())
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestFormatTextNoTrailingWhitespace(t *testing.T) {
	t.Parallel()

	src := "a  {  /* c */  \n  color :  red  ;  \n\n\n\n  b { top : 0 }  }  \n"
	got, err := format.FormatText(src, syntax.SCSS, config.DefaultFormatOptions())
	require.NoError(t, err)

	for idx, line := range strings.Split(got, "\n") {
		assert.Equal(t, strings.TrimRight(line, " \t"), line, "line %d has trailing whitespace", idx+1)
	}
	assert.NotContains(t, got, "\n\n\n", "at most one blank line is kept")
}

func TestFormatTextLineBreak(t *testing.T) {
	t.Parallel()

	opts := config.DefaultFormatOptions()
	opts.Layout.LineBreak = config.LineBreakCRLF

	got, err := format.FormatText("a{color:red}", syntax.CSS, opts)
	require.NoError(t, err)
	assert.Equal(t, "a {\r\n  color: red;\r\n}\r\n", got)
}

func TestFormatTextTabs(t *testing.T) {
	t.Parallel()

	opts := config.DefaultFormatOptions()
	opts.Layout.UseTabs = true

	got, err := format.FormatText("a{color:red}", syntax.CSS, opts)
	require.NoError(t, err)
	assert.Equal(t, "a {\n\tcolor: red;\n}\n", got)
}

func TestFormatTextQuotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		quotes config.Quotes
		src    string
		want   string
	}{
		{config.QuotesAlwaysDouble, `'a'`, `"a"`},
		{config.QuotesAlwaysSingle, `"a"`, `'a'`},
		{config.QuotesPreferDouble, `'a'`, `"a"`},
		{config.QuotesPreferDouble, `'say "hi"'`, `'say "hi"'`},
		{config.QuotesPreferSingle, `"a"`, `'a'`},
		{config.QuotesPreferSingle, `"it's"`, `"it's"`},
	}

	for _, testCase := range tests {
		t.Run(string(testCase.quotes)+" "+testCase.src, func(t *testing.T) {
			t.Parallel()

			opts := config.DefaultFormatOptions()
			opts.Language.Quotes = testCase.quotes

			got, err := format.FormatText("a{content:"+testCase.src+"}", syntax.CSS, opts)
			require.NoError(t, err)
			assert.Equal(t, "a {\n  content: "+testCase.want+";\n}\n", got)
		})
	}
}

func TestFormatTextIgnoreDirectives(t *testing.T) {
	t.Parallel()

	t.Run("file", func(t *testing.T) {
		t.Parallel()

		src := "/* cssfmt-ignore-file */\na{color:red}"
		got, err := format.FormatText(src, syntax.CSS, config.DefaultFormatOptions())
		require.NoError(t, err)
		assert.Equal(t, src, got)
	})

	t.Run("statement", func(t *testing.T) {
		t.Parallel()

		src := "a{color:red}\n/* cssfmt-ignore */\nb{color:blue}\n"
		got, err := format.FormatText(src, syntax.CSS, config.DefaultFormatOptions())
		require.NoError(t, err)
		assert.Equal(t, "a {\n  color: red;\n}\n/* cssfmt-ignore */\nb{color:blue}\n", got)
	})
}

func TestFormatTextDeclarationOrder(t *testing.T) {
	t.Parallel()

	opts := config.DefaultFormatOptions()
	opts.Language.DeclarationOrder = config.DeclarationOrderAlphabetical

	got, err := format.FormatText("a{top:0;-webkit-box-shadow:none;color:red;b{x:y}width:1px;left:0}", syntax.SCSS, opts)
	require.NoError(t, err)
	assert.Equal(t,
		"a {\n  -webkit-box-shadow: none;\n  color: red;\n  top: 0;\n  b {\n    x: y;\n  }\n  left: 0;\n  width: 1px;\n}\n",
		got)
}

func TestFormatTextParseError(t *testing.T) {
	t.Parallel()

	_, err := format.FormatText("a {", syntax.CSS, config.DefaultFormatOptions())
	require.Error(t, err)

	var perr *parser.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
}
