package format

import (
	"strings"

	"github.com/yaklabco/cssfmt/pkg/doc"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

func (c *ctx) formatSassVariableDecl(decl *syntax.SassVariableDecl, st state) doc.Doc {
	var parts []doc.Doc
	if decl.Module != nil {
		parts = append(parts, doc.Text(decl.Module.Raw+"."))
	}
	parts = append(parts,
		doc.Text("$"+decl.Name.Name+":"),
		c.formatDeclarationValue("", decl.Value, decl.Name.Range.End, st))

	end := decl.Value[len(decl.Value)-1].Span().End
	parts = append(parts, c.formatFlags(decl.Flags, end)...)
	if len(decl.Flags) > 0 {
		end = decl.Flags[len(decl.Flags)-1].Range.End
	}

	comments, lastLine := c.endSpacedComments(c.comments.between(end, decl.Range.End))
	parts = append(parts, comments)
	if lastLine {
		parts = append(parts, doc.HardLine)
	}
	return doc.List(parts)
}

// formatFlags formats `!default`, `!global` and friends after a value
// ending at end.
func (c *ctx) formatFlags(flags []*syntax.Bang, end int) []doc.Doc {
	parts := make([]doc.Doc, 0, len(flags)*2)
	for _, flag := range flags {
		parts = append(parts,
			c.gapComments(end, flag.Range.Start, doc.Space),
			doc.Text("!"+strings.ToLower(flag.Name)))
		end = flag.Range.End
	}
	return parts
}

// clauseSeparator goes between the closing brace of an `@if` clause and
// the following `@else`.
func (c *ctx) clauseSeparator(prevEnd, nextStart int) doc.Doc {
	comments, lastLine := c.endSpacedComments(c.comments.between(prevEnd, nextStart))
	if c.syntax == syntax.Sass || lastLine {
		return doc.Concat(comments, doc.HardLine)
	}
	return doc.Concat(comments, doc.Space)
}

func (c *ctx) formatSassIf(rule *syntax.SassIfAtRule, st state) doc.Doc {
	var parts []doc.Doc
	prevEnd := -1
	for idx, clause := range rule.Clauses {
		keyword := "@if"
		if idx > 0 {
			keyword = "@else if"
			parts = append(parts, c.clauseSeparator(prevEnd, clause.Range.Start))
		}
		condition := clause.Condition.Span()
		parts = append(parts,
			doc.Text(keyword),
			c.gapComments(clause.Keyword.End, condition.Start, doc.Space),
			c.formatValue(clause.Condition, st),
			c.spaceBeforeBlock(condition.End, clause.Block),
			c.formatBlock(clause.Block, st))
		prevEnd = clause.Block.Range.End
	}

	if rule.Else != nil {
		keywordEnd := rule.Else.Range.Start + len("@else")
		parts = append(parts,
			c.clauseSeparator(prevEnd, rule.Else.Range.Start),
			doc.Text("@else"),
			c.spaceBeforeBlock(keywordEnd, rule.Else.Block),
			c.formatBlock(rule.Else.Block, st))
	}
	return doc.List(parts)
}

// keywordClause formats a keyword standing between two nodes, keeping the
// comments on both sides of it.
func (c *ctx) keywordClause(prevEnd int, keyword syntax.Span, text string, nextStart int) doc.Doc {
	return doc.Concat(
		c.gapComments(prevEnd, keyword.Start, doc.Space),
		doc.Text(text),
		c.gapComments(keyword.End, nextStart, doc.Space),
	)
}

func (c *ctx) formatSassUse(use *syntax.SassUse, st state) doc.Doc {
	parts := []doc.Doc{c.formatValue(use.Path, st)}
	end := use.Path.Span().End
	if use.Namespace != nil {
		parts = append(parts,
			c.keywordClause(end, *use.As, "as", use.Namespace.Range.Start),
			doc.Text(use.Namespace.Raw))
		end = use.Namespace.Range.End
	}
	if use.Config != nil {
		parts = append(parts, c.formatSassModuleConfig(end, use.Config, st))
	}
	return doc.List(parts)
}

func (c *ctx) formatSassForward(forward *syntax.SassForward, st state) doc.Doc {
	parts := []doc.Doc{c.formatValue(forward.Path, st)}
	end := forward.Path.Span().End
	if forward.Prefix != nil {
		parts = append(parts,
			c.keywordClause(end, *forward.As, "as", forward.Prefix.Range.Start),
			doc.Text(forward.Prefix.Raw))
		end = forward.Prefix.Range.End
	}
	if forward.Visibility != nil && len(forward.Members) > 0 {
		docs := make([]doc.Doc, 0, len(forward.Members))
		spans := make([]syntax.Span, 0, len(forward.Members))
		for _, member := range forward.Members {
			docs = append(docs, c.formatValue(member, st))
			spans = append(spans, member.Span())
		}
		visibility := strings.ToLower(forward.Visibility.Raw)
		parts = append(parts,
			c.keywordClause(end, forward.Visibility.Range, visibility, spans[0].Start),
			c.joinSpanned(spans, docs, forward.Commas, ","))
		end = spans[len(spans)-1].End
	}
	if forward.Config != nil {
		parts = append(parts, c.formatSassModuleConfig(end, forward.Config, st))
	}
	return doc.List(parts)
}

// formatSassModuleConfig formats `with (...)` following a node ending at
// prevEnd.
func (c *ctx) formatSassModuleConfig(prevEnd int, config *syntax.SassModuleConfig, st state) doc.Doc {
	items := make([]listItem, 0, len(config.Items))
	for _, item := range config.Items {
		value := item.Value.Span()
		parts := []doc.Doc{
			doc.Text("$" + item.Name.Name),
			c.unspacedComments(c.comments.between(item.Name.Range.End, item.Colon.Start)),
			doc.Text(":"),
			c.gapComments(item.Colon.End, value.Start, doc.Space),
			c.formatValue(item.Value, st),
		}
		parts = append(parts, c.formatFlags(item.Flags, value.End)...)
		items = append(items, listItem{doc: doc.List(parts), span: item.Range})
	}

	prefer := c.options.PreferSingleLineFor(c.options.SassModuleConfigPreferSingleLine)
	return doc.Concat(
		c.keywordClause(prevEnd, config.With, "with", config.Parens.Start),
		c.formatParenList(config.Parens, items, config.Commas, ",", true, prefer),
	)
}

func (c *ctx) formatSassImport(sassImport *syntax.SassImport, st state) doc.Doc {
	docs := make([]doc.Doc, 0, len(sassImport.Paths))
	spans := make([]syntax.Span, 0, len(sassImport.Paths))
	for _, path := range sassImport.Paths {
		docs = append(docs, c.formatValue(path, st))
		spans = append(spans, path.Span())
	}
	return c.joinSpanned(spans, docs, sassImport.Commas, ",")
}

func (c *ctx) formatSassCallable(callable *syntax.SassCallable, st state) doc.Doc {
	name := c.formatValue(callable.Name, st)
	if callable.Params == nil {
		return name
	}
	return doc.Concat(name, c.formatSassParams(callable.Params, st))
}

func (c *ctx) formatSassParams(params *syntax.SassParams, st state) doc.Doc {
	items := make([]listItem, 0, len(params.Params))
	for _, param := range params.Params {
		parts := []doc.Doc{doc.Text("$" + param.Name.Name)}
		if param.Colon != nil && param.Default != nil {
			parts = append(parts,
				c.unspacedComments(c.comments.between(param.Name.Range.End, param.Colon.Start)),
				doc.Text(":"),
				c.gapComments(param.Colon.End, param.Default.Span().Start, doc.Space),
				c.formatValue(param.Default, st))
		}
		if param.Rest {
			parts = append(parts, doc.Text("..."))
		}
		items = append(items, listItem{doc: doc.List(parts), span: param.Range})
	}

	prefer := c.options.PreferSingleLineFor(c.options.SassParamsPreferSingleLine)
	return c.formatParenList(params.Range, items, params.Commas, ",", true, prefer)
}

// formatSassArgs formats the argument list of `@include` or `@content`.
func (c *ctx) formatSassArgs(args *syntax.SassArgs, preferSingleLine bool, st state) doc.Doc {
	if args == nil {
		return doc.Nil
	}
	items := make([]listItem, 0, len(args.Args))
	for _, arg := range args.Args {
		items = append(items, listItem{doc: c.formatValue(arg, st), span: arg.Span()})
	}
	return c.formatParenList(args.Range, items, args.Commas, ",", true, preferSingleLine)
}

func (c *ctx) formatSassInclude(include *syntax.SassInclude, st state) doc.Doc {
	prefer := c.options.PreferSingleLineFor(c.options.SassIncludeAtRulePreferSingleLine)
	parts := []doc.Doc{c.formatValue(include.Target, st)}
	end := include.Target.Span().End
	if include.Args != nil {
		parts = append(parts,
			c.unspacedComments(c.comments.between(end, include.Args.Range.Start)),
			c.formatSassArgs(include.Args, prefer, st))
		end = include.Args.Range.End
	}
	if include.Using != nil {
		parts = append(parts,
			c.keywordClause(end, *include.UsingKeyword, "using", include.Using.Range.Start),
			c.formatSassParams(include.Using, st))
	}
	return doc.List(parts)
}

func (c *ctx) formatSassEach(each *syntax.SassEach, st state) doc.Doc {
	docs := make([]doc.Doc, 0, len(each.Bindings))
	spans := make([]syntax.Span, 0, len(each.Bindings))
	for _, binding := range each.Bindings {
		docs = append(docs, doc.Text("$"+binding.Name))
		spans = append(spans, binding.Range)
	}
	return doc.Concat(
		c.joinSpanned(spans, docs, each.Commas, ","),
		c.keywordClause(spans[len(spans)-1].End, each.In.Range, "in", each.Expr.Span().Start),
		doc.Group(c.indent(c.formatValue(each.Expr, st))),
	)
}

func (c *ctx) formatSassFor(loop *syntax.SassFor, st state) doc.Doc {
	start, end := loop.Start.Span(), loop.End.Span()
	return doc.Concat(
		doc.Text("$"+loop.Variable.Name),
		c.keywordClause(loop.Variable.Range.End, loop.From.Range, "from", start.Start),
		c.formatValue(loop.Start, st),
		c.keywordClause(start.End, loop.Bound.Range, strings.ToLower(loop.Bound.Raw), end.Start),
		c.formatValue(loop.End, st),
	)
}
