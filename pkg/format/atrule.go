package format

import (
	"strings"

	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/doc"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// knownAtRules have blocks whose declarations follow the usual case rules.
var knownAtRules = map[string]bool{
	"charset": true, "color-profile": true, "container": true, "counter-style": true,
	"document": true, "-moz-document": true, "font-face": true, "font-feature-values": true,
	"font-palette-values": true, "import": true, "layer": true, "media": true,
	"namespace": true, "nest": true, "page": true, "position-try": true, "property": true,
	"scope": true, "starting-style": true, "supports": true, "view-transition": true,
	"viewport": true, "-ms-viewport": true,
	// Sass
	"at-root": true, "content": true, "debug": true, "each": true, "else": true,
	"error": true, "extend": true, "for": true, "forward": true, "function": true,
	"if": true, "include": true, "mixin": true, "return": true, "use": true,
	"warn": true, "while": true,
	// Less
	"plugin": true,
}

func isKnownAtRule(name string) bool {
	return knownAtRules[name] || strings.HasSuffix(name, "keyframes")
}

func (c *ctx) formatAtRule(rule *syntax.AtRule, st state) doc.Doc {
	name := strings.ToLower(rule.Name.Raw)
	parts := []doc.Doc{doc.Text("@" + name)}
	headerEnd := rule.Name.Range.End

	if rule.Prelude != nil {
		prelude := rule.Prelude.Span()
		sep := doc.Space
		if _, ok := rule.Prelude.(*syntax.SassContent); ok {
			sep = doc.Nil
		}
		parts = append(parts,
			c.gapComments(headerEnd, prelude.Start, sep),
			c.formatPrelude(name, rule.Prelude, st))
		headerEnd = prelude.End
	}

	if rule.Block == nil {
		comments, lastLine := c.endSpacedComments(c.comments.between(headerEnd, rule.Range.End))
		parts = append(parts, comments)
		if lastLine {
			parts = append(parts, doc.HardLine)
		}
		return doc.List(parts)
	}

	blockState := st
	if !isKnownAtRule(name) {
		blockState = blockState.with(stateInUnknownAtRule)
	}
	parts = append(parts, c.spaceBeforeBlock(headerEnd, rule.Block), c.formatBlock(rule.Block, blockState))
	return doc.List(parts)
}

// hasCSSPreludeComments reports whether a structured CSS prelude contains
// comments, which are then kept by printing the prelude as written.
func (c *ctx) hasCSSPreludeComments(prelude syntax.AtRulePrelude) bool {
	switch prelude.(type) {
	case *syntax.MediaQueryList, *syntax.SupportsCondition, *syntax.ImportPrelude,
		*syntax.ContainerPrelude, *syntax.LayerPrelude, *syntax.NamespacePrelude,
		*syntax.PagePrelude, *syntax.ScopePrelude:
		span := prelude.Span()
		return c.comments.any(span.Start, span.End)
	default:
		return false
	}
}

//nolint:cyclop,gocyclo // One case per prelude kind.
func (c *ctx) formatPrelude(name string, prelude syntax.AtRulePrelude, st state) doc.Doc {
	if c.hasCSSPreludeComments(prelude) {
		return c.verbatim(prelude.Span())
	}

	switch prelude := prelude.(type) {
	case *syntax.MediaQueryList:
		return doc.Group(c.indent(c.formatMediaQueryList(prelude, st)))
	case *syntax.SupportsCondition:
		return doc.Group(c.indent(c.formatSupportsCondition(prelude, st)))
	case *syntax.ImportPrelude:
		return c.formatImportPrelude(prelude, st)
	case *syntax.ContainerPrelude:
		condition := c.formatMediaCondition(prelude.Condition, st)
		if prelude.Name != nil {
			condition = doc.Concat(doc.Text(prelude.Name.Raw), doc.Space, condition)
		}
		return doc.Group(c.indent(condition))
	case *syntax.LayerPrelude:
		return c.formatLayerPrelude(prelude)
	case *syntax.NamespacePrelude:
		uri := c.formatValue(prelude.URI, st)
		if prelude.Prefix == nil {
			return uri
		}
		return doc.Concat(doc.Text(prelude.Prefix.Raw), doc.Space, uri)
	case *syntax.PagePrelude:
		return c.formatPagePrelude(prelude)
	case *syntax.ScopePrelude:
		return c.formatScopePrelude(prelude, st)
	case *syntax.ValuePrelude:
		if name == "charset" {
			st = st.with(stateKeepQuotes)
		}
		return doc.Group(c.indent(c.formatValueSequence(prelude.Values, st, doc.SoftLine, doc.LineOrSpace)))
	case *syntax.SelectorPrelude:
		return c.formatSelectorList(prelude.Selector, st)
	case *syntax.TokenList:
		return c.formatTokens(prelude.Tokens, doc.Space)
	case *syntax.SassUse:
		return c.formatSassUse(prelude, st)
	case *syntax.SassForward:
		return c.formatSassForward(prelude, st)
	case *syntax.SassImport:
		return c.formatSassImport(prelude, st)
	case *syntax.SassCallable:
		return c.formatSassCallable(prelude, st)
	case *syntax.SassInclude:
		return c.formatSassInclude(prelude, st)
	case *syntax.SassContent:
		prefer := c.options.PreferSingleLineFor(c.options.SassContentAtRulePreferSingleLine)
		return c.formatSassArgs(prelude.Args, prefer, st)
	case *syntax.SassEach:
		return c.formatSassEach(prelude, st)
	case *syntax.SassFor:
		return c.formatSassFor(prelude, st)
	case *syntax.SassExtend:
		selector := c.formatSelectorList(prelude.Selector, st)
		if prelude.Optional == nil {
			return selector
		}
		return doc.Concat(selector, doc.Text(" !"+strings.ToLower(prelude.Optional.Name)))
	case *syntax.LessImport:
		return c.formatLessImport(prelude, st)
	default:
		return unexpected("at-rule prelude", prelude)
	}
}

func (c *ctx) formatMediaQueryList(list *syntax.MediaQueryList, st state) doc.Doc {
	items := make([]listItem, 0, len(list.Queries))
	for _, query := range list.Queries {
		items = append(items, listItem{doc: c.formatMediaQuery(query, st), span: query.Span()})
	}
	return c.formatSeparatedList(items, list.Commas, ",", doc.LineOrSpace, false)
}

func (c *ctx) formatMediaQuery(query syntax.MediaQuery, st state) doc.Doc {
	switch query := query.(type) {
	case *syntax.MediaQueryWithType:
		var parts []doc.Doc
		if query.Modifier != nil {
			parts = append(parts, doc.Text(strings.ToLower(query.Modifier.Raw)), doc.Space)
		}
		parts = append(parts, c.formatLowerIdent(query.MediaType, st))
		typed := doc.List(parts)
		if query.Condition == nil {
			return typed
		}
		return c.operatorBreak(typed, "and", c.formatMediaCondition(query.Condition, st))
	case *syntax.MediaCondition:
		return c.formatMediaCondition(query, st)
	default:
		return unexpected("media query", query)
	}
}

// formatLowerIdent lowercases a plain identifier and keeps interpolated
// ones as written.
func (c *ctx) formatLowerIdent(name syntax.ComponentValue, st state) doc.Doc {
	if ident, ok := name.(*syntax.Ident); ok {
		return doc.Text(strings.ToLower(ident.Raw))
	}
	return c.formatValue(name, st)
}

func (c *ctx) formatMediaCondition(cond *syntax.MediaCondition, st state) doc.Doc {
	var result doc.Doc
	for _, kind := range cond.Conditions {
		switch kind := kind.(type) {
		case *syntax.MediaInParens:
			result = c.formatMediaInParens(kind, st)
		case *syntax.MediaNot:
			result = doc.Concat(doc.Text("not "), c.formatMediaInParens(kind.Condition, st))
		case *syntax.MediaAnd:
			result = c.operatorBreak(result, "and", c.formatMediaInParens(kind.Condition, st))
		case *syntax.MediaOr:
			result = c.operatorBreak(result, "or", c.formatMediaInParens(kind.Condition, st))
		default:
			return unexpected("media condition", kind)
		}
	}
	return result
}

func (c *ctx) formatMediaInParens(inParens *syntax.MediaInParens, st state) doc.Doc {
	switch {
	case inParens.Function != nil:
		return c.formatFunction(inParens.Function, st)
	case inParens.Condition != nil:
		return doc.Concat(doc.Text("("), c.formatMediaCondition(inParens.Condition, st), doc.Text(")"))
	default:
		return doc.Concat(doc.Text("("), c.formatMediaFeature(inParens.Feature, st), doc.Text(")"))
	}
}

func (c *ctx) formatMediaFeature(feature syntax.MediaFeature, st state) doc.Doc {
	switch feature := feature.(type) {
	case *syntax.MediaFeaturePlain:
		return doc.Concat(c.formatLowerIdent(feature.Name, st), doc.Text(": "), c.formatValue(feature.Value, st))
	case *syntax.MediaFeatureBoolean:
		return c.formatLowerIdent(feature.Name, st)
	case *syntax.MediaFeatureRange:
		return doc.Concat(
			c.formatLowerIdent(feature.Left, st),
			doc.Text(" "+feature.Comparison.Raw+" "),
			c.formatLowerIdent(feature.Right, st),
		)
	case *syntax.MediaFeatureRangeInterval:
		return doc.Concat(
			c.formatValue(feature.Left, st),
			doc.Text(" "+feature.LeftComparison.Raw+" "),
			c.formatLowerIdent(feature.Name, st),
			doc.Text(" "+feature.RightComparison.Raw+" "),
			c.formatValue(feature.Right, st),
		)
	default:
		return unexpected("media feature", feature)
	}
}

func (c *ctx) formatSupportsCondition(cond *syntax.SupportsCondition, st state) doc.Doc {
	var result doc.Doc
	for _, kind := range cond.Conditions {
		switch kind := kind.(type) {
		case *syntax.SupportsInParens:
			result = c.formatSupportsInParens(kind, st)
		case *syntax.SupportsNot:
			result = doc.Concat(doc.Text("not "), c.formatSupportsInParens(kind.Condition, st))
		case *syntax.SupportsAnd:
			result = c.operatorBreak(result, "and", c.formatSupportsInParens(kind.Condition, st))
		case *syntax.SupportsOr:
			result = c.operatorBreak(result, "or", c.formatSupportsInParens(kind.Condition, st))
		default:
			return unexpected("supports condition", kind)
		}
	}
	return result
}

func (c *ctx) formatSupportsInParens(inParens *syntax.SupportsInParens, st state) doc.Doc {
	switch {
	case inParens.Function != nil:
		return c.formatFunction(inParens.Function, st)
	case inParens.Declaration != nil:
		return doc.Concat(doc.Text("("), c.formatDeclaration(inParens.Declaration, st), doc.Text(")"))
	default:
		return doc.Concat(doc.Text("("), c.formatSupportsCondition(inParens.Condition, st), doc.Text(")"))
	}
}

func (c *ctx) formatImportPrelude(prelude *syntax.ImportPrelude, st state) doc.Doc {
	parts := []doc.Doc{c.formatValue(prelude.Href, st)}
	if prelude.Layer != nil {
		parts = append(parts, doc.Space, c.formatValue(prelude.Layer, st))
	}
	if supports := prelude.Supports; supports != nil {
		var inner doc.Doc
		if supports.Declaration != nil {
			inner = c.formatDeclaration(supports.Declaration, st)
		} else {
			inner = c.formatSupportsCondition(supports.Condition, st)
		}
		parts = append(parts, doc.Text(" supports("), inner, doc.Text(")"))
	}
	if prelude.Media != nil {
		parts = append(parts, doc.LineOrSpace, c.formatMediaQueryList(prelude.Media, st))
	}
	return doc.Group(c.indent(doc.List(parts)))
}

func (c *ctx) formatLayerPrelude(prelude *syntax.LayerPrelude) doc.Doc {
	docs := make([]doc.Doc, 0, len(prelude.Names))
	spans := make([]syntax.Span, 0, len(prelude.Names))
	for _, name := range prelude.Names {
		parts := make([]string, 0, len(name.Parts))
		for _, part := range name.Parts {
			parts = append(parts, part.Raw)
		}
		docs = append(docs, doc.Text(strings.Join(parts, ".")))
		spans = append(spans, name.Range)
	}
	return c.joinSpanned(spans, docs, prelude.Commas, ",")
}

func (c *ctx) formatPagePrelude(prelude *syntax.PagePrelude) doc.Doc {
	docs := make([]doc.Doc, 0, len(prelude.Selectors))
	spans := make([]syntax.Span, 0, len(prelude.Selectors))
	for _, selector := range prelude.Selectors {
		var sb strings.Builder
		if selector.Name != nil {
			sb.WriteString(selector.Name.Raw)
		}
		for _, pseudo := range selector.Pseudos {
			sb.WriteString(":" + strings.ToLower(pseudo.Raw))
		}
		docs = append(docs, doc.Text(sb.String()))
		spans = append(spans, selector.Range)
	}
	return c.joinSpanned(spans, docs, prelude.Commas, ",")
}

func (c *ctx) formatScopePrelude(prelude *syntax.ScopePrelude, st state) doc.Doc {
	var parts []doc.Doc
	if prelude.Start != nil {
		parts = append(parts, doc.Text("("), c.formatSelectorList(prelude.Start, st), doc.Text(")"))
	}
	if prelude.To != nil {
		if len(parts) > 0 {
			parts = append(parts, doc.Space)
		}
		parts = append(parts, doc.Text("to ("), c.formatSelectorList(prelude.End, st), doc.Text(")"))
	}
	return doc.List(parts)
}

func (c *ctx) formatKeyframeBlock(block *syntax.KeyframeBlock, st state) doc.Doc {
	docs := make([]doc.Doc, 0, len(block.Selectors))
	spans := make([]syntax.Span, 0, len(block.Selectors))
	for _, selector := range block.Selectors {
		docs = append(docs, c.formatKeyframeSelector(selector, st))
		spans = append(spans, selector.Range)
	}
	headerEnd := block.Selectors[len(block.Selectors)-1].Range.End
	return doc.Concat(
		c.joinSpanned(spans, docs, block.Commas, ","),
		c.spaceBeforeBlock(headerEnd, block.Block),
		c.formatBlock(block.Block, st),
	)
}

// formatKeyframeSelector lowercases keyframe keywords and converts between
// from/to and 0%/100% as keyframeSelectorNotation asks.
func (c *ctx) formatKeyframeSelector(selector *syntax.KeyframeSelector, st state) doc.Doc {
	notation := c.options.KeyframeSelectorNotation
	switch value := selector.Value.(type) {
	case *syntax.Ident:
		keyword := strings.ToLower(value.Raw)
		if notation == config.KeyframeSelectorNotationPercentage {
			switch keyword {
			case "from":
				return doc.Text("0%")
			case "to":
				return doc.Text("100%")
			}
		}
		return doc.Text(keyword)
	case *syntax.Percentage:
		percentage := c.formatNumber(value.Value.Raw) + "%"
		if notation == config.KeyframeSelectorNotationKeyword {
			switch percentage {
			case "0%":
				return doc.Text("from")
			case "100%":
				return doc.Text("to")
			}
		}
		return doc.Text(percentage)
	default:
		return c.formatValue(selector.Value, st)
	}
}
