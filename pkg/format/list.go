package format

import (
	"github.com/yaklabco/cssfmt/pkg/doc"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// listItem is one element of a separated list.
type listItem struct {
	doc  doc.Doc
	span syntax.Span
}

// formatSeparatedList interleaves items with their separators and the
// comments around them. line goes after each separator unless a line
// comment forces a hard break. A separator written after the last item is
// kept; otherwise, when trailing is set and the trailingComma option is on,
// one is added only if the enclosing group breaks.
func (c *ctx) formatSeparatedList(items []listItem, seps []syntax.Span, sep string, line doc.Doc, trailing bool) doc.Doc {
	parts := make([]doc.Doc, 0, len(items)*4)
	for idx, item := range items {
		parts = append(parts, item.doc)

		if idx >= len(seps) {
			if idx == len(items)-1 && trailing && c.options.TrailingComma {
				parts = append(parts, doc.FlatOrBreak(doc.Nil, doc.Text(sep)))
			}
			continue
		}

		sepSpan := seps[idx]
		parts = append(parts, c.gapComments(item.span.End, sepSpan.Start, doc.Nil), doc.Text(sep))
		if idx+1 < len(items) {
			parts = append(parts, c.gapComments(sepSpan.End, items[idx+1].span.Start, line))
		}
	}
	return doc.List(parts)
}

// joinSpanned formats nodes joined by sep and a space, threading the
// comments found between them.
func (c *ctx) joinSpanned(spans []syntax.Span, docs []doc.Doc, seps []syntax.Span, sep string) doc.Doc {
	items := make([]listItem, len(docs))
	for idx := range docs {
		items[idx] = listItem{doc: docs[idx], span: spans[idx]}
	}
	return c.formatSeparatedList(items, seps, sep, doc.Space, false)
}

// formatParenList formats items inside the parentheses spanning span. A
// separator after the last item counts as part of the list so that
// comments after it stay inside the parentheses.
func (c *ctx) formatParenList(
	span syntax.Span, items []listItem, seps []syntax.Span, sep string, trailing, preferSingleLine bool,
) doc.Doc {
	openEnd, closeStart := span.Start+1, span.End-1
	if len(items) == 0 {
		inner, lastLine := c.startSpacedCommentsWithoutLast(c.comments.between(openEnd, closeStart))
		if lastLine {
			inner = doc.Concat(inner, doc.HardLine)
		}
		return doc.Concat(doc.Text("("), inner, doc.Text(")"))
	}

	first, last := items[0].span, items[len(items)-1].span
	if n := len(seps); n == len(items) {
		last.End = seps[n-1].End
	}
	return c.formatParens("(", ")",
		c.formatSeparatedList(items, seps, sep, doc.LineOrSpace, trailing),
		c.smartLineBreak(openEnd, first.Start, preferSingleLine, doc.LineOrNil),
		parenBounds{openEnd: openEnd, first: first.Start, last: last.End, closeStart: closeStart})
}
