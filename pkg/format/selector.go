package format

import (
	"strings"

	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/doc"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// pseudosWithSelectorArgs take a selector list argument that may be broken
// across lines with linebreakInPseudoParens.
var pseudosWithSelectorArgs = map[string]bool{
	"is": true, "where": true, "not": true, "has": true, "matches": true,
	"-webkit-any": true, "-moz-any": true,
}

// formatRuleSelector formats the selector list of a qualified rule
// according to blockSelectorLinebreak or the override in st.
func (c *ctx) formatRuleSelector(list *syntax.SelectorList, st state) doc.Doc {
	mode := c.options.BlockSelectorLineBreak
	switch st.selector {
	case overrideIgnore:
		return c.verbatim(list.Range)
	case overrideAlways:
		mode = config.BlockSelectorLineBreakAlways
	case overrideConsistent:
		mode = config.BlockSelectorLineBreakConsistent
	case overrideWrap:
		mode = config.BlockSelectorLineBreakWrap
	case overrideNone:
	}

	var line doc.Doc
	switch mode {
	case config.BlockSelectorLineBreakAlways:
		line = doc.HardLine
	case config.BlockSelectorLineBreakWrap:
		line = doc.SoftLine
	default:
		line = doc.LineOrSpace
		prefer := c.options.PreferSingleLineFor(c.options.SelectorsPreferSingleLine)
		if !prefer && c.selectorsOnSeparateLines(list) {
			line = doc.HardLine
		}
	}

	return doc.Group(c.formatSelectorItems(list, st, line))
}

// selectorsOnSeparateLines reports whether any selector of list starts on
// a new line after its preceding comma.
func (c *ctx) selectorsOnSeparateLines(list *syntax.SelectorList) bool {
	for idx, comma := range list.Commas {
		if idx+1 < len(list.Selectors) && c.onNewLine(comma.End, list.Selectors[idx+1].Range.Start) {
			return true
		}
	}
	return false
}

// formatSelectorList formats a selector list nested in another construct,
// such as a pseudo-class argument or an @extend prelude, on one line.
func (c *ctx) formatSelectorList(list *syntax.SelectorList, st state) doc.Doc {
	return c.formatSelectorItems(list, st, doc.Space)
}

func (c *ctx) formatSelectorItems(list *syntax.SelectorList, st state, line doc.Doc) doc.Doc {
	items := make([]listItem, 0, len(list.Selectors))
	for _, selector := range list.Selectors {
		items = append(items, listItem{doc: c.formatComplexSelector(selector, st), span: selector.Range})
	}
	return c.formatSeparatedList(items, list.Commas, ",", line, false)
}

func (c *ctx) formatComplexSelector(selector *syntax.ComplexSelector, st state) doc.Doc {
	parts := make([]doc.Doc, 0, len(selector.Children)*2)
	prevEnd := -1
	needSpace := false

	for idx, child := range selector.Children {
		span := child.Span()
		if prevEnd >= 0 && prevEnd < span.Start {
			comments, lastLine := c.endSpacedComments(c.comments.between(prevEnd, span.Start))
			parts = append(parts, comments)
			if lastLine {
				parts = append(parts, doc.HardLine)
				needSpace = false
			}
		}

		switch child := child.(type) {
		case *syntax.Combinator:
			if child.Kind == syntax.CombinatorDescendant {
				needSpace = true
				break
			}
			if idx > 0 {
				parts = append(parts, doc.Space)
			}
			parts = append(parts, doc.Text(child.Kind.String()))
			needSpace = idx < len(selector.Children)-1
		case *syntax.CompoundSelector:
			if needSpace {
				parts = append(parts, doc.Space)
			}
			parts = append(parts, c.formatCompoundSelector(child, st))
			needSpace = false
		default:
			return unexpected("complex selector", child)
		}
		prevEnd = span.End
	}

	return doc.List(parts)
}

func (c *ctx) formatCompoundSelector(compound *syntax.CompoundSelector, st state) doc.Doc {
	parts := make([]doc.Doc, 0, len(compound.Children))
	for idx, simple := range compound.Children {
		if idx > 0 {
			parts = append(parts, c.unspacedComments(
				c.comments.between(compound.Children[idx-1].Span().End, simple.Span().Start)))
		}
		parts = append(parts, c.formatSimpleSelector(simple, st))
	}
	return doc.List(parts)
}

//nolint:cyclop // One case per simple selector kind.
func (c *ctx) formatSimpleSelector(simple syntax.SimpleSelector, st state) doc.Doc {
	switch simple := simple.(type) {
	case *syntax.TypeSelector:
		return doc.Concat(c.formatNsPrefix(simple.Prefix, simple.Name.Span().Start), c.formatValue(simple.Name, st))
	case *syntax.UniversalSelector:
		return doc.Concat(c.formatNsPrefix(simple.Prefix, simple.Range.End-1), doc.Text("*"))
	case *syntax.ClassSelector:
		return doc.Concat(doc.Text("."), c.formatValue(simple.Name, st))
	case *syntax.IDSelector:
		return doc.Concat(doc.Text("#"), c.formatValue(simple.Name, st))
	case *syntax.AttributeSelector:
		return c.formatAttributeSelector(simple, st)
	case *syntax.PseudoClassSelector:
		return c.formatPseudo(":", simple.Name, simple.Arg, simple.Range, st)
	case *syntax.PseudoElementSelector:
		return c.formatPseudo("::", simple.Name, simple.Arg, simple.Range, st)
	case *syntax.NestingSelector:
		if simple.Suffix == nil {
			return doc.Text("&")
		}
		return doc.Concat(doc.Text("&"), c.formatValue(simple.Suffix, st))
	case *syntax.PlaceholderSelector:
		return doc.Concat(doc.Text("%"), c.formatValue(simple.Name, st))
	default:
		return unexpected("simple selector", simple)
	}
}

// formatNsPrefix formats a namespace prefix followed by the name starting
// at nameStart. Comments between the prefix and the name stay unspaced.
func (c *ctx) formatNsPrefix(prefix *syntax.NsPrefix, nameStart int) doc.Doc {
	if prefix == nil {
		return doc.Nil
	}
	var name string
	switch prefix.Kind {
	case syntax.NsPrefixIdent:
		name = prefix.Name.Raw
	case syntax.NsPrefixUniversal:
		name = "*"
	case syntax.NsPrefixNone:
	}
	return doc.Concat(doc.Text(name+"|"), c.unspacedComments(c.comments.between(prefix.Range.End, nameStart)))
}

func (c *ctx) formatAttributeSelector(attr *syntax.AttributeSelector, st state) doc.Doc {
	if c.comments.any(attr.Range.Start, attr.Range.End) {
		return c.verbatim(attr.Range)
	}

	parts := []doc.Doc{
		doc.Text("["),
		c.formatNsPrefix(attr.Prefix, attr.Name.Span().Start),
		c.formatValue(attr.Name, st),
	}
	if attr.Matcher != "" {
		parts = append(parts, doc.Text(attr.Matcher), c.formatAttributeValue(attr.Value, st))
	}
	if attr.Modifier != nil {
		parts = append(parts, doc.Text(" "+strings.ToLower(attr.Modifier.Raw)))
	}
	parts = append(parts, doc.Text("]"))
	return doc.List(parts)
}

// formatAttributeValue quotes plain identifier values when attrValueQuotes
// is always.
func (c *ctx) formatAttributeValue(value syntax.ComponentValue, st state) doc.Doc {
	ident, ok := value.(*syntax.Ident)
	if !ok || c.options.AttrValueQuotes != config.AttrValueQuotesAlways || strings.ContainsAny(ident.Raw, `"'\`) {
		return c.formatValue(value, st)
	}
	quote := chooseQuote(c.options.Quotes, '"', false, false)
	return doc.Text(string(quote) + ident.Raw + string(quote))
}

func (c *ctx) formatPseudo(
	colons string, name syntax.InterpolableIdent, arg syntax.PseudoArg, span syntax.Span, st state,
) doc.Doc {
	nameDoc := c.formatValue(name, st)
	lower := ""
	if ident, ok := name.(*syntax.Ident); ok {
		lower = strings.ToLower(ident.Raw)
		nameDoc = doc.Text(lower)
	}
	head := doc.Concat(doc.Text(colons), nameDoc)
	if arg == nil {
		return head
	}

	openEnd, closeStart := name.Span().End+1, span.End-1
	argSpan := arg.Span()
	var body doc.Doc
	switch arg := arg.(type) {
	case *syntax.SelectorList:
		body = c.formatSelectorList(arg, st)
		if c.options.LineBreakInPseudoParens && pseudosWithSelectorArgs[lower] {
			body = c.formatSelectorItems(arg, st, doc.LineOrSpace)
			return doc.Concat(head, c.formatParens("(", ")", body, doc.LineOrNil,
				parenBounds{openEnd: openEnd, first: argSpan.Start, last: argSpan.End, closeStart: closeStart}))
		}
	case *syntax.NthArg:
		body = c.formatNthArg(arg, st)
	case *syntax.TokenList:
		body = c.formatTokens(arg.Tokens, doc.Space)
	default:
		return unexpected("pseudo argument", arg)
	}

	leading := c.gapComments(openEnd, argSpan.Start, doc.Nil)
	trailing := c.gapComments(argSpan.End, closeStart, doc.Nil)
	return doc.Concat(head, doc.Text("("), leading, body, trailing, doc.Text(")"))
}

func (c *ctx) formatNthArg(nth *syntax.NthArg, st state) doc.Doc {
	indexEnd := nth.Range.Start + len(nth.Index)
	index := doc.Text(normalizeNth(nth.Index))
	if c.comments.any(nth.Range.Start, indexEnd) {
		index = c.verbatim(syntax.Span{Start: nth.Range.Start, End: indexEnd})
	}
	if nth.Of == nil {
		return index
	}
	return doc.Concat(index, doc.Text(" of "), c.formatSelectorList(nth.Of, st))
}

// normalizeNth rewrites An+B as `2n + 1`, `-n + 3`, `odd` and so on.
// Arguments holding interpolation are kept as written.
func normalizeNth(index string) string {
	if strings.ContainsAny(index, "#@$") {
		return index
	}
	compact := strings.ToLower(strings.Join(strings.Fields(index), ""))
	n := strings.IndexByte(compact, 'n')
	if n < 0 || n+1 >= len(compact) || compact == "even" {
		return compact
	}
	sign := compact[n+1]
	if sign != '+' && sign != '-' {
		return compact
	}
	return compact[:n+1] + " " + string(sign) + " " + compact[n+2:]
}
