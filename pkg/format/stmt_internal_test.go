package format

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/doc"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

func TestNeedsParens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		parent syntax.OperatorKind
		child  syntax.OperatorKind
		right  bool
		want   bool
	}{
		{"sum in product", syntax.OperatorMul, syntax.OperatorAdd, false, true},
		{"product in sum", syntax.OperatorAdd, syntax.OperatorMul, true, false},
		{"left associative sum", syntax.OperatorSub, syntax.OperatorSub, false, false},
		{"difference on the right", syntax.OperatorSub, syntax.OperatorSub, true, true},
		{"sum on the right of sum", syntax.OperatorAdd, syntax.OperatorSub, true, false},
		{"quotient on the right", syntax.OperatorDiv, syntax.OperatorMul, true, true},
		{"product on the right of product", syntax.OperatorMul, syntax.OperatorDiv, true, false},
		{"modulo on the right of product", syntax.OperatorMul, syntax.OperatorMod, true, true},
		{"or in and", syntax.OperatorAnd, syntax.OperatorOr, false, true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, needsParens(testCase.parent, testCase.child, testCase.right))
		})
	}
}

func TestCompareProperties(t *testing.T) {
	t.Parallel()

	sorted := func(order config.DeclarationOrder, names ...string) []string {
		out := slices.Clone(names)
		slices.SortStableFunc(out, func(a, b string) int { return compareProperties(order, a, b) })
		return out
	}

	assert.Equal(t,
		[]string{"-webkit-box-shadow", "color", "top"},
		sorted(config.DeclarationOrderAlphabetical, "top", "color", "-webkit-box-shadow"))
	assert.Equal(t,
		[]string{"display", "width", "color", "zoom"},
		sorted(config.DeclarationOrderSmacss, "zoom", "color", "width", "display"))
	assert.Equal(t,
		[]string{"position", "margin", "padding", "color"},
		sorted(config.DeclarationOrderConcentric, "color", "padding", "margin", "position"))
}

func TestUnprefixed(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "transition", unprefixed("-webkit-transition"))
	assert.Equal(t, "--custom", unprefixed("--custom"))
	assert.Equal(t, "color", unprefixed("color"))
}

func TestCommentIndexBetween(t *testing.T) {
	t.Parallel()

	comments := []syntax.Comment{
		{Kind: syntax.BlockComment, Span: syntax.Span{Start: 2, End: 9}, Content: "/* a */"},
		{Kind: syntax.LineComment, Span: syntax.Span{Start: 12, End: 16}, Content: "// b"},
		{Kind: syntax.BlockComment, Span: syntax.Span{Start: 20, End: 27}, Content: "/* c */"},
	}
	idx := newCommentIndex(comments)

	collect := func(start, end int) []string {
		var out []string
		for comment := range idx.between(start, end) {
			out = append(out, comment.Content)
		}
		return out
	}

	if diff := cmp.Diff([]string{"/* a */", "// b"}, collect(0, 16)); diff != "" {
		t.Errorf("between(0, 16) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"// b"}, collect(3, 19)); diff != "" {
		t.Errorf("between(3, 19) mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, collect(10, 15), "a comment crossing the end is excluded")
	assert.Empty(t, collect(16, 12))
	assert.True(t, idx.any(0, 30))
	assert.False(t, idx.any(28, 40))
}

func TestUnspacedCommentsDropLineComments(t *testing.T) {
	t.Parallel()

	src := "a/* x */// y\nb"
	comments := []syntax.Comment{
		{Kind: syntax.BlockComment, Span: syntax.Span{Start: 1, End: 8}, Content: "/* x */"},
		{Kind: syntax.LineComment, Span: syntax.Span{Start: 8, End: 12}, Content: "// y"},
	}
	c := newCtx(src, syntax.SCSS, comments, config.DefaultFormatOptions())

	out, err := doc.Print(c.unspacedComments(c.comments.between(1, 13)), doc.PrintOptions{})
	require.NoError(t, err)
	assert.Equal(t, "/* x */", out)
}

func TestPadComment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		comment syntax.Comment
		want    string
	}{
		{syntax.Comment{Kind: syntax.BlockComment, Content: "/*x*/"}, "/* x */"},
		{syntax.Comment{Kind: syntax.BlockComment, Content: "/* x */"}, "/* x */"},
		{syntax.Comment{Kind: syntax.BlockComment, Content: "/**doc*/"}, "/**doc */"},
		{syntax.Comment{Kind: syntax.BlockComment, Content: "/**/"}, "/**/"},
		{syntax.Comment{Kind: syntax.LineComment, Content: "//x"}, "// x"},
		{syntax.Comment{Kind: syntax.LineComment, Content: "/// x"}, "/// x"},
	}

	for _, testCase := range tests {
		t.Run(testCase.comment.Content, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, padComment(testCase.comment))
		})
	}
}

func TestMatchDirective(t *testing.T) {
	t.Parallel()

	line := func(content string) syntax.Comment {
		return syntax.Comment{Kind: syntax.LineComment, Content: content}
	}

	arg, ok := matchDirective(line("// cssfmt-selector-override: always"), "cssfmt-selector-override")
	assert.True(t, ok)
	assert.Equal(t, "always", arg)

	arg, ok = matchDirective(line("// cssfmt-selector-override wrap"), "cssfmt-selector-override")
	assert.True(t, ok)
	assert.Equal(t, "wrap", arg)

	_, ok = matchDirective(line("// cssfmt-ignore-file"), "cssfmt-ignore")
	assert.False(t, ok)

	_, ok = matchDirective(syntax.Comment{Kind: syntax.BlockComment, Content: "/* cssfmt-ignore */"}, "cssfmt-ignore")
	assert.True(t, ok)

	override, valid := parseSelectorOverride("Consistent")
	assert.True(t, valid)
	assert.Equal(t, overrideConsistent, override)
	_, valid = parseSelectorOverride("sometimes")
	assert.False(t, valid)
}

func TestStateIsCopied(t *testing.T) {
	t.Parallel()

	parent := state{}.with(stateTopLevel)
	child := parent.with(stateKeepQuotes).without(stateTopLevel)

	assert.True(t, parent.has(stateTopLevel))
	assert.False(t, parent.has(stateKeepQuotes))
	assert.True(t, child.has(stateKeepQuotes))
	assert.False(t, child.has(stateTopLevel))
}

func TestUnexpectedPanics(t *testing.T) {
	t.Parallel()

	c := newCtx("", syntax.CSS, nil, config.DefaultFormatOptions())
	assert.Panics(t, func() { c.formatStatement(nil, state{}) })
}
