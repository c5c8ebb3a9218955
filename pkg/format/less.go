package format

import (
	"strings"

	"github.com/yaklabco/cssfmt/pkg/doc"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

func (c *ctx) formatLessVariableDecl(decl *syntax.LessVariableDecl, st state) doc.Doc {
	parts := []doc.Doc{doc.Text("@" + decl.Name.Name + ":")}
	end := decl.Name.Range.End

	if decl.Ruleset != nil {
		parts = append(parts,
			c.spaceBeforeBlock(end, decl.Ruleset),
			c.formatBlock(decl.Ruleset, st.with(stateInLessDetachedRuleset)))
		return doc.List(parts)
	}

	if len(decl.Value) > 0 {
		parts = append(parts, c.formatDeclarationValue("", decl.Value, end, st))
		end = decl.Value[len(decl.Value)-1].Span().End
	}
	if decl.Important != nil {
		parts = append(parts,
			c.gapComments(end, decl.Important.Range.Start, doc.Space),
			doc.Text("!"+strings.ToLower(decl.Important.Name)))
		end = decl.Important.Range.End
	}

	comments, lastLine := c.endSpacedComments(c.comments.between(end, decl.Range.End))
	parts = append(parts, comments)
	if lastLine {
		parts = append(parts, doc.HardLine)
	}
	return doc.List(parts)
}

// lessSeparator returns the separator of mixin parameters or arguments.
func lessSeparator(semicolons bool) string {
	if semicolons {
		return ";"
	}
	return ","
}

func (c *ctx) formatLessMixinDefinition(mixin *syntax.LessMixinDefinition, st state) doc.Doc {
	parts := []doc.Doc{doc.Text(mixin.Name.Raw)}
	headerEnd := mixin.Name.Range.End
	if mixin.Params != nil {
		parts = append(parts, c.formatLessMixinParams(mixin.Params, st))
		headerEnd = mixin.Params.Range.End
	}
	if mixin.Guard != nil {
		parts = append(parts,
			c.gapComments(headerEnd, mixin.Guard.Range.Start, doc.Space),
			c.formatLessGuard(mixin.Guard, st))
		headerEnd = mixin.Guard.Range.End
	}
	parts = append(parts, c.spaceBeforeBlock(headerEnd, mixin.Block), c.formatBlock(mixin.Block, st))
	return doc.List(parts)
}

func (c *ctx) formatLessMixinParams(params *syntax.LessMixinParams, st state) doc.Doc {
	items := make([]listItem, 0, len(params.Params))
	for _, param := range params.Params {
		items = append(items, listItem{doc: c.formatLessMixinParam(param, st), span: param.Range})
	}
	prefer := c.options.PreferSingleLineFor(c.options.LessMixinParamsPreferSingleLine)
	return c.formatParenList(params.Range, items, params.Separators, lessSeparator(params.Semicolons), false, prefer)
}

func (c *ctx) formatLessMixinParam(param *syntax.LessMixinParam, st state) doc.Doc {
	if param.Name == nil {
		return doc.Text("...")
	}
	parts := []doc.Doc{c.formatValue(param.Name, st)}
	if param.Colon != nil && len(param.Default) > 0 {
		parts = append(parts,
			c.unspacedComments(c.comments.between(param.Name.Span().End, param.Colon.Start)),
			doc.Text(":"),
			c.gapComments(param.Colon.End, param.Default[0].Span().Start, doc.Space),
			c.formatValueSequence(param.Default, st, doc.Space, doc.LineOrSpace))
	}
	if param.Rest {
		parts = append(parts, doc.Text("..."))
	}
	return doc.List(parts)
}

func (c *ctx) formatLessMixinCall(call *syntax.LessMixinCall, st state) doc.Doc {
	parts := make([]doc.Doc, 0, len(call.Callee.Parts)*2+4)
	prevEnd := -1
	for _, part := range call.Callee.Parts {
		nameStart := part.Name.Range.Start
		switch {
		case prevEnd < 0:
		case part.Combinator == ">":
			combinator := syntax.Span{Start: part.Range.Start, End: part.Range.Start + len(">")}
			parts = append(parts, c.keywordClause(prevEnd, combinator, ">", nameStart))
		case part.Combinator == " ":
			parts = append(parts, c.gapComments(prevEnd, nameStart, doc.Space))
		default:
			parts = append(parts, c.unspacedComments(c.comments.between(prevEnd, nameStart)))
		}
		parts = append(parts, doc.Text(part.Name.Raw))
		prevEnd = part.Name.Range.End
	}
	end := call.Callee.Range.End

	if call.Args != nil {
		items := make([]listItem, 0, len(call.Args.Args))
		for _, arg := range call.Args.Args {
			items = append(items, listItem{doc: c.formatValue(arg, st), span: arg.Span()})
		}
		prefer := c.options.PreferSingleLineFor(c.options.LessMixinArgsPreferSingleLine)
		parts = append(parts,
			c.unspacedComments(c.comments.between(end, call.Args.Range.Start)),
			c.formatParenList(call.Args.Range, items, call.Args.Separators, lessSeparator(call.Args.Semicolons), false, prefer))
		end = call.Args.Range.End
	}

	if call.Important != nil {
		parts = append(parts,
			c.gapComments(end, call.Important.Range.Start, doc.Space),
			doc.Text("!"+strings.ToLower(call.Important.Name)))
		end = call.Important.Range.End
	}

	comments, lastLine := c.endSpacedComments(c.comments.between(end, call.Range.End))
	parts = append(parts, comments)
	if lastLine {
		parts = append(parts, doc.HardLine)
	}
	return doc.List(parts)
}

// formatLessGuard formats `when cond, cond`; commas mean logical or.
func (c *ctx) formatLessGuard(guard *syntax.LessGuard, st state) doc.Doc {
	items := make([]listItem, 0, len(guard.Conditions))
	for _, condition := range guard.Conditions {
		items = append(items, listItem{doc: c.formatValue(condition, st), span: condition.Span()})
	}
	return doc.Concat(
		doc.Text("when"),
		c.gapComments(guard.Keyword.End, guard.Conditions[0].Span().Start, doc.Space),
		c.formatSeparatedList(items, guard.Commas, ",", doc.Space, false),
	)
}

func (c *ctx) formatLessImport(lessImport *syntax.LessImport, st state) doc.Doc {
	options := lessImport.Options
	items := make([]listItem, 0, len(options.Names))
	for _, name := range options.Names {
		items = append(items, listItem{doc: doc.Text(strings.ToLower(name.Raw)), span: name.Range})
	}
	prefer := c.options.PreferSingleLineFor(c.options.LessImportOptionsPreferSingleLine)
	href := lessImport.Href.Span()

	parts := []doc.Doc{
		c.formatParenList(options.Range, items, options.Commas, ",", false, prefer),
		c.gapComments(options.Range.End, href.Start, doc.Space),
		c.formatValue(lessImport.Href, st),
	}
	if lessImport.Media != nil {
		parts = append(parts,
			c.gapComments(href.End, lessImport.Media.Range.Start, doc.Space),
			c.formatMediaQueryList(lessImport.Media, st))
	}
	return doc.List(parts)
}
