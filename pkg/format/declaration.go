package format

import (
	"strings"

	"github.com/yaklabco/cssfmt/pkg/doc"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// gridProperties lay out their value one source line per output line.
var gridProperties = map[string]bool{
	"grid":                  true,
	"grid-area":             true,
	"grid-template":         true,
	"grid-template-areas":   true,
	"grid-template-columns": true,
	"grid-template-rows":    true,
}

// multiValueProperties put every comma separated item on its own line when
// some item has more than one part.
var multiValueProperties = map[string]bool{
	"box-shadow":            true,
	"grid":                  true,
	"grid-template":         true,
	"grid-template-columns": true,
	"mask":                  true,
	"src":                   true,
	"transition":            true,
	"will-change":           true,
}

// identName returns the raw text of a plain identifier, or "" for an
// interpolated one.
func identName(name syntax.InterpolableIdent) string {
	if ident, ok := name.(*syntax.Ident); ok {
		return ident.Raw
	}
	return ""
}

// formatPropertyName lowercases property names except custom properties
// and names inside unknown at-rules and Less detached rulesets.
func (c *ctx) formatPropertyName(name syntax.InterpolableIdent, st state) doc.Doc {
	ident, ok := name.(*syntax.Ident)
	if !ok {
		return c.formatValue(name, st)
	}
	if strings.HasPrefix(ident.Raw, "--") || st.has(stateInUnknownAtRule|stateInLessDetachedRuleset) {
		return doc.Text(ident.Raw)
	}
	return doc.Text(strings.ToLower(ident.Raw))
}

func (c *ctx) formatDeclaration(decl *syntax.Declaration, st state) doc.Doc {
	nameEnd := decl.Name.Span().End
	parts := []doc.Doc{c.formatPropertyName(decl.Name, st)}
	if decl.Merge != "" {
		parts = append(parts, doc.Text(decl.Merge))
	}
	parts = append(parts, doc.Text(":"))

	valueEnd := nameEnd
	if len(decl.Value) > 0 {
		valueEnd = decl.Value[len(decl.Value)-1].Span().End
		if decl.Raw {
			parts = append(parts, c.formatRawValue(decl, nameEnd))
		} else {
			name := strings.ToLower(identName(decl.Name))
			parts = append(parts, c.formatDeclarationValue(name, decl.Value, nameEnd, st))
		}
	}

	if decl.Important != nil {
		parts = append(parts,
			c.gapComments(valueEnd, decl.Important.Range.Start, doc.Space),
			doc.Text("!"+strings.ToLower(decl.Important.Name)))
		valueEnd = decl.Important.Range.End
	}

	if decl.Block != nil {
		// Nested properties as in `font: 12px { family: serif; }`.
		parts = append(parts, c.spaceBeforeBlock(valueEnd, decl.Block), c.formatBlock(decl.Block, st))
		return doc.List(parts)
	}

	comments, lastLine := c.endSpacedComments(c.comments.between(valueEnd, decl.Range.End))
	parts = append(parts, comments)
	if lastLine {
		parts = append(parts, doc.HardLine)
	}
	return doc.List(parts)
}

// formatRawValue prints custom property and filter values token by token.
func (c *ctx) formatRawValue(decl *syntax.Declaration, nameEnd int) doc.Doc {
	tokens := make([]*syntax.RawToken, 0, len(decl.Value))
	for _, value := range decl.Value {
		if token, ok := value.(*syntax.RawToken); ok {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		return doc.Nil
	}
	return doc.Concat(
		c.gapComments(nameEnd, tokens[0].Range.Start, doc.Space),
		c.indent(c.formatTokens(tokens, doc.SoftLine)),
	)
}

// formatDeclarationValue lays out the value of a declaration, a Sass
// variable or a Less variable after its colon.
func (c *ctx) formatDeclarationValue(name string, values []syntax.ComponentValue, colonEnd int, st state) doc.Doc {
	first := values[0].Span()

	if c.syntax != syntax.Sass && gridProperties[name] && c.onNewLine(first.Start, values[len(values)-1].Span().End) {
		return doc.Concat(
			c.leadingValueComments(colonEnd, first.Start),
			c.indent(doc.Concat(doc.HardLine, c.formatGridValue(values, st))),
		)
	}

	if c.syntax != syntax.Sass && multiValueProperties[name] && hasMultiPartItem(values) {
		return doc.Concat(
			c.leadingValueComments(colonEnd, first.Start),
			c.indent(doc.Concat(doc.HardLine, c.formatValueSequence(values, st, doc.SoftLine, doc.HardLine))),
		)
	}

	if len(values) == 1 && hugsColon(values[0]) {
		return doc.Concat(c.gapComments(colonEnd, first.Start, doc.Space), c.formatValue(values[0], st))
	}

	prefer := c.options.PreferSingleLineFor(c.options.TopLevelDeclarationsPreferSingleLine)
	hardFirst := st.has(stateTopLevel) && c.syntax != syntax.Sass && !prefer && c.onNewLine(colonEnd, first.Start)
	leading, lastLine := c.endSpacedComments(c.comments.between(colonEnd, first.Start))
	hardFirst = hardFirst || lastLine
	sequence := c.formatValueSequence(values, st, doc.SoftLine, doc.LineOrSpace)

	if hasSeparator(values) {
		firstLine := doc.LineOrSpace
		if hardFirst {
			firstLine = doc.HardLine
		}
		return doc.Group(c.indent(doc.Concat(leading, firstLine, sequence)))
	}

	firstLine := doc.Space
	if hardFirst {
		firstLine = doc.HardLine
	}
	return doc.Concat(leading, c.indent(doc.Concat(firstLine, sequence)))
}

// leadingValueComments returns the comments between a colon and the first
// value of a value printed on the following lines.
func (c *ctx) leadingValueComments(colonEnd, firstStart int) doc.Doc {
	comments, _ := c.endSpacedComments(c.comments.between(colonEnd, firstStart))
	return comments
}

// hugsColon reports whether a sole value indents its own contents, so it
// starts right after the colon and closes at the declaration's indentation.
func hugsColon(value syntax.ComponentValue) bool {
	switch value.(type) {
	case *syntax.Function, *syntax.SassMap, *syntax.Parenthesized:
		return true
	default:
		return false
	}
}

func hasSeparator(values []syntax.ComponentValue) bool {
	for _, value := range values {
		if isSeparator(value) {
			return true
		}
	}
	return false
}

// hasMultiPartItem reports whether values form a comma list in which some
// item consists of more than one value.
func hasMultiPartItem(values []syntax.ComponentValue) bool {
	if !hasSeparator(values) {
		return false
	}
	count, multi := 0, false
	for _, value := range values {
		if isSeparator(value) {
			count = 0
			continue
		}
		count++
		multi = multi || count > 1
	}
	return multi
}

// formatGridValue keeps the line grouping of the source: every source line
// of the value becomes one output line.
func (c *ctx) formatGridValue(values []syntax.ComponentValue, st state) doc.Doc {
	var (
		lines   []doc.Doc
		current []syntax.ComponentValue
	)
	flush := func() {
		if len(current) > 0 {
			lines = append(lines, c.formatValueSequence(current, st, doc.Space, doc.Space))
			current = nil
		}
	}

	for idx, value := range values {
		if idx > 0 {
			prevEnd := values[idx-1].Span().End
			if c.onNewLine(prevEnd, value.Span().Start) {
				flush()
				comments, _ := c.endSpacedComments(c.comments.between(prevEnd, value.Span().Start))
				if len(lines) > 0 {
					lines[len(lines)-1] = doc.Concat(lines[len(lines)-1], comments)
				}
			}
		}
		current = append(current, value)
	}
	flush()

	return doc.Join(lines, doc.HardLine)
}
