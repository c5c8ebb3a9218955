package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/format"
	"github.com/yaklabco/cssfmt/pkg/parser"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// TestFormatKeywordComments checks comments standing next to the keywords
// of Sass and Less statements.
func TestFormatKeywordComments(t *testing.T) {
	t.Parallel()

	tests := []formatCase{
		{
			name:   "use with",
			syntax: syntax.SCSS,
			src:    "@use 'a' /* c1 */ with ($x: 1);",
			want:   "@use \"a\" /* c1 */ with ($x: 1);\n",
		},
		{
			name:   "use as",
			syntax: syntax.SCSS,
			src:    "@use 'a' /* c1 */ as b /* c2 */ with ($x: 1);",
			want:   "@use \"a\" /* c1 */ as b /* c2 */ with ($x: 1);\n",
		},
		{
			name:   "each in",
			syntax: syntax.SCSS,
			src:    "@each $a /* c1 */ in $list {}",
			want:   "@each $a /* c1 */ in $list {\n}\n",
		},
		{
			name:   "for through",
			syntax: syntax.SCSS,
			src:    "@for $i from 1 /* c1 */ through 2 {}",
			want:   "@for $i from 1 /* c1 */ through 2 {\n}\n",
		},
		{
			name:   "for from",
			syntax: syntax.SCSS,
			src:    "@for $i /* c1 */ from 1 to 2 {}",
			want:   "@for $i /* c1 */ from 1 to 2 {\n}\n",
		},
		{
			name:   "forward hide",
			syntax: syntax.SCSS,
			src:    "@forward 'a' as p-* /* c1 */ hide b;",
			want:   "@forward \"a\" as p-* /* c1 */ hide b;\n",
		},
		{
			name:   "include using",
			syntax: syntax.SCSS,
			src:    "@include m($a) /* c1 */ using ($x) {}",
			want:   "@include m($a) /* c1 */ using ($x) {\n}\n",
		},
		{
			name:   "less mixin call before semicolon",
			syntax: syntax.Less,
			src:    ".a { .m() /* c1 */; }",
			want:   ".a {\n  .m() /* c1 */;\n}\n",
		},
		{
			name:   "less import options",
			syntax: syntax.Less,
			src:    "@import (reference) /* c1 */ 'a';",
			want:   "@import (reference) /* c1 */ \"a\";\n",
		},
		{
			name:   "less namespace child",
			syntax: syntax.Less,
			src:    ".a { #ns /* c1 */ > .m(); }",
			want:   ".a {\n  #ns /* c1 */ > .m();\n}\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := format.FormatText(testCase.src, testCase.syntax, config.DefaultFormatOptions())
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)

			again, err := format.FormatText(got, testCase.syntax, config.DefaultFormatOptions())
			require.NoError(t, err)
			assert.Equal(t, got, again, "formatting is not idempotent")
		})
	}
}

// TestFormatKeepsComments places a comment in each gap of every statement
// kind and checks that it survives formatting.
func TestFormatKeepsComments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		syntax syntax.Syntax
		src    string
	}{
		{"before rule", syntax.CSS, "/* c */ a {}"},
		{"before block", syntax.CSS, "a /* c */ {}"},
		{"before combinator", syntax.CSS, "a /* c */ > b {}"},
		{"after combinator", syntax.CSS, "a > /* c */ b {}"},
		{"after selector comma", syntax.CSS, "a, /* c */ b {}"},
		{"namespace prefix", syntax.CSS, "ns|/* c */a {}"},
		{"pseudo argument", syntax.CSS, "a:not(/* c */ b) {}"},
		{"after colon", syntax.CSS, "a { color: /* c */ red; }"},
		{"before important", syntax.CSS, "a { color: red /* c */ !important; }"},
		{"before semicolon", syntax.CSS, "a { color: red /* c */; }"},
		{"between values", syntax.CSS, "a { margin: 0 /* c */ auto; }"},
		{"function argument", syntax.CSS, "a { width: min(/* c */ 1px, 2px); }"},
		{"before function comma", syntax.CSS, "a { width: min(1px /* c */, 2px); }"},
		{"calc operator", syntax.CSS, "a { width: calc(1px /* c */ + 2px); }"},
		{"custom property", syntax.CSS, "a { --x: /* c */ 1px; }"},
		{"media name", syntax.CSS, "@media /* c */ screen {}"},
		{"media query", syntax.CSS, "@media screen and /* c */ (color) {}"},
		{"import url", syntax.CSS, "@import 'a' /* c */;"},
		{"keyframe selector", syntax.CSS, "@keyframes k { /* c */ from {} }"},
		{"empty block", syntax.CSS, "a { /* c */ }"},
		{"sass variable", syntax.SCSS, "$a: /* c */ 1;"},
		{"sass flag", syntax.SCSS, "$a: 1 /* c */ !default;"},
		{"sass map value", syntax.SCSS, "$m: (a: /* c */ 1);"},
		{"sass map key", syntax.SCSS, "$m: (a /* c */: 1);"},
		{"if condition", syntax.SCSS, "@if /* c */ $a {} @else {}"},
		{"before else", syntax.SCSS, "@if $a {} /* c */ @else {}"},
		{"mixin parameter", syntax.SCSS, "@mixin m(/* c */ $a) {}"},
		{"parameter default", syntax.SCSS, "@mixin m($a: /* c */ 1) {}"},
		{"include argument", syntax.SCSS, "a { @include m(/* c */ 1); }"},
		{"include using", syntax.SCSS, "@include m /* c */ using ($x) {}"},
		{"each in", syntax.SCSS, "@each $a in /* c */ $list {}"},
		{"for to", syntax.SCSS, "@for $i from 1 to /* c */ 2 {}"},
		{"use with", syntax.SCSS, "@use 'a' with /* c */ ($x: 1);"},
		{"forward show", syntax.SCSS, "@forward 'a' show /* c */ b;"},
		{"return", syntax.SCSS, "@function f() { @return /* c */ 1; }"},
		{"less guard", syntax.Less, ".m(@a) when /* c */ (@a > 0) {}"},
		{"less variable", syntax.Less, "@v: /* c */ 1;"},
		{"less mixin important", syntax.Less, ".a { .m(1) /* c */ !important; }"},
		{"less mixin arguments", syntax.Less, ".a { .m(/* c */ 1); }"},
		{"less mixin callee", syntax.Less, ".a { #ns /* c */ .m(); }"},
		{"less import href", syntax.Less, "@import (css) 'a' /* c */ screen;"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := format.FormatText(testCase.src, testCase.syntax, config.DefaultFormatOptions())
			require.NoError(t, err)
			assert.Contains(t, got, "/* c */")

			_, _, err = parser.Parse(got, testCase.syntax)
			require.NoError(t, err, "formatted output does not parse:\n%s", got)
		})
	}
}
