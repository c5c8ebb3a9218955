package parser

import (
	"strings"

	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// parsePrelude parses the prelude of the at-rule name ending at token index
// end. Preludes that do not match the grammar of their at-rule are kept as
// raw tokens.
func (p *parser) parsePrelude(name string, end int) syntax.AtRulePrelude {
	parse := p.preludeParser(name)
	if parse == nil {
		return p.parseTokenList(end)
	}

	saved := p.pos
	prelude, ok := try(p, parse)
	if ok && p.pos == end {
		return prelude
	}
	p.pos = saved
	return p.parseTokenList(end)
}

//nolint:gocyclo,cyclop // At-rule table.
func (p *parser) preludeParser(name string) func() syntax.AtRulePrelude {
	sassLike := p.syntax.IsSassLike()

	switch {
	case name == "media":
		return func() syntax.AtRulePrelude { return p.parseMediaQueryList() }
	case name == "import":
		return p.parseImportPrelude
	case name == "supports":
		return func() syntax.AtRulePrelude { return p.parseSupportsCondition() }
	case name == "container":
		return func() syntax.AtRulePrelude { return p.parseContainerPrelude() }
	case name == "layer":
		return func() syntax.AtRulePrelude { return p.parseLayerPrelude() }
	case name == "namespace":
		return func() syntax.AtRulePrelude { return p.parseNamespacePrelude() }
	case name == "page":
		return func() syntax.AtRulePrelude { return p.parsePagePrelude() }
	case name == "scope":
		return func() syntax.AtRulePrelude { return p.parseScopePrelude() }
	case name == "at-root" || name == "nest":
		return func() syntax.AtRulePrelude {
			start := p.peek().span.Start
			list := p.parseSelectorList()
			return &syntax.SelectorPrelude{Spanned: p.spanFrom(start), Selector: list}
		}
	case isValuePreludeRule(name):
		return func() syntax.AtRulePrelude { return p.parseValuePrelude() }
	case !sassLike:
		return nil
	}

	switch name {
	case "use":
		return func() syntax.AtRulePrelude { return p.parseSassUse() }
	case "forward":
		return func() syntax.AtRulePrelude { return p.parseSassForward() }
	case "mixin", "function":
		return func() syntax.AtRulePrelude { return p.parseSassCallable() }
	case "include":
		return func() syntax.AtRulePrelude { return p.parseSassInclude() }
	case "content":
		return func() syntax.AtRulePrelude {
			start := p.peek().span.Start
			return &syntax.SassContent{Args: p.parseSassArgs(), Spanned: p.spanFrom(start)}
		}
	case "each":
		return func() syntax.AtRulePrelude { return p.parseSassEach() }
	case "for":
		return func() syntax.AtRulePrelude { return p.parseSassFor() }
	case "extend":
		return func() syntax.AtRulePrelude { return p.parseSassExtend() }
	case "return", "debug", "warn", "error", "while":
		return func() syntax.AtRulePrelude { return p.parseValuePrelude() }
	default:
		return nil
	}
}

func isValuePreludeRule(name string) bool {
	switch name {
	case "charset", "counter-style", "property", "font-feature-values", "font-palette-values",
		"position-try", "plugin", "color-profile":
		return true
	default:
		return strings.HasSuffix(name, "keyframes")
	}
}

// atPreludeEnd reports whether the current token ends an at-rule prelude.
func (p *parser) atPreludeEnd() bool {
	switch p.peek().kind {
	case tokEOF, tokSemicolon, tokLBrace, tokRBrace:
		return true
	default:
		return false
	}
}

func (p *parser) parseValuePrelude() *syntax.ValuePrelude {
	start := p.peek().span.Start
	values := p.parseValues(valueMode{expr: p.syntax.IsSassLike()}, false)
	if len(values) == 0 {
		p.failUnexpected("value")
	}
	return &syntax.ValuePrelude{Spanned: p.spanFrom(start), Values: values}
}

func (p *parser) parseMediaQueryList() *syntax.MediaQueryList {
	start := p.peek().span.Start
	list := &syntax.MediaQueryList{}
	for {
		list.Queries = append(list.Queries, p.parseMediaQuery())
		if !p.at(tokComma) {
			break
		}
		list.Commas = append(list.Commas, p.next().span)
	}
	list.Spanned = p.spanFrom(start)
	return list
}

func (p *parser) parseMediaQuery() syntax.MediaQuery {
	tok := p.peek()
	if tok.kind == tokLParen || isIdent(tok, "not") && p.peekAt(1).kind == tokLParen {
		return p.parseMediaCondition()
	}

	start := tok.span.Start
	query := &syntax.MediaQueryWithType{}
	if (isIdent(tok, "not") || isIdent(tok, "only")) && p.peekAt(1).spaceBefore {
		query.Modifier = identFromToken(p.next())
	}
	query.MediaType = p.parseInterpolableIdent()

	if p.atIdent("and") {
		query.And = identFromToken(p.next())
		query.Condition = p.parseMediaCondition()
	}

	query.Spanned = p.spanFrom(start)
	return query
}

func (p *parser) parseMediaCondition() *syntax.MediaCondition {
	p.enter()
	defer p.leave()

	start := p.peek().span.Start
	condition := &syntax.MediaCondition{}

	if p.atIdent("not") {
		keyword := identFromToken(p.next())
		inParens := p.parseMediaInParens()
		condition.Conditions = append(condition.Conditions, &syntax.MediaNot{
			Spanned:   p.spanFrom(keyword.Range.Start),
			Keyword:   keyword,
			Condition: inParens,
		})
	} else {
		condition.Conditions = append(condition.Conditions, p.parseMediaInParens())
	}

	for {
		switch {
		case p.atIdent("and"):
			keyword := identFromToken(p.next())
			inParens := p.parseMediaInParens()
			condition.Conditions = append(condition.Conditions, &syntax.MediaAnd{
				Spanned:   p.spanFrom(keyword.Range.Start),
				Keyword:   keyword,
				Condition: inParens,
			})
		case p.atIdent("or"):
			keyword := identFromToken(p.next())
			inParens := p.parseMediaInParens()
			condition.Conditions = append(condition.Conditions, &syntax.MediaOr{
				Spanned:   p.spanFrom(keyword.Range.Start),
				Keyword:   keyword,
				Condition: inParens,
			})
		default:
			condition.Spanned = p.spanFrom(start)
			return condition
		}
	}
}

func (p *parser) parseMediaInParens() *syntax.MediaInParens {
	start := p.peek().span.Start

	if !p.at(tokLParen) {
		value := p.parseIdentLike(valueMode{})
		function, ok := value.(*syntax.Function)
		if !ok {
			p.failf(start, "expected '('")
		}
		return &syntax.MediaInParens{Spanned: function.Spanned, Function: function}
	}

	p.next()
	inParens := &syntax.MediaInParens{}

	if p.at(tokLParen) || p.atIdent("not") {
		inParens.Condition = p.parseMediaCondition()
	} else {
		inParens.Feature = p.parseMediaFeature()
	}

	p.expect(tokRParen)
	inParens.Spanned = p.spanFrom(start)
	return inParens
}

func isComparison(tok token) bool {
	if tok.kind != tokDelim {
		return false
	}
	switch tok.raw {
	case "<", "<=", ">", ">=", "=":
		return true
	default:
		return false
	}
}

func (p *parser) parseMediaComparison() *syntax.MediaComparison {
	tok := p.next()
	return &syntax.MediaComparison{Spanned: syntax.Spanned{Range: tok.span}, Raw: tok.raw}
}

func (p *parser) parseMediaFeature() syntax.MediaFeature {
	start := p.peek().span.Start
	mode := valueMode{}

	tok := p.peek()
	if (tok.kind == tokIdent || tok.kind == tokInterpStart) && p.peekAt(1).kind == tokColon {
		name := p.parseInterpolableIdent()
		colon := p.expect(tokColon)
		value := p.parseSpaceList(mode)
		return &syntax.MediaFeaturePlain{Spanned: p.spanFrom(start), Name: name, Colon: colon.span, Value: value}
	}

	left := p.parseExpr(mode, 1)
	if !isComparison(p.peek()) {
		name, ok := left.(syntax.InterpolableIdent)
		if !ok {
			p.failf(start, "expected media feature")
		}
		return &syntax.MediaFeatureBoolean{Spanned: p.spanFrom(start), Name: name}
	}

	comparison := p.parseMediaComparison()
	middle := p.parseExpr(mode, 1)
	if !isComparison(p.peek()) {
		return &syntax.MediaFeatureRange{Spanned: p.spanFrom(start), Left: left, Comparison: comparison, Right: middle}
	}

	name, ok := middle.(syntax.InterpolableIdent)
	if !ok {
		p.failf(middle.Span().Start, "expected media feature name")
	}
	rightComparison := p.parseMediaComparison()
	right := p.parseExpr(mode, 1)
	return &syntax.MediaFeatureRangeInterval{
		Spanned:         p.spanFrom(start),
		Left:            left,
		LeftComparison:  comparison,
		Name:            name,
		RightComparison: rightComparison,
		Right:           right,
	}
}

func (p *parser) parseSupportsCondition() *syntax.SupportsCondition {
	p.enter()
	defer p.leave()

	start := p.peek().span.Start
	condition := &syntax.SupportsCondition{}

	if p.atIdent("not") {
		keyword := identFromToken(p.next())
		inParens := p.parseSupportsInParens()
		condition.Conditions = append(condition.Conditions, &syntax.SupportsNot{
			Spanned:   p.spanFrom(keyword.Range.Start),
			Keyword:   keyword,
			Condition: inParens,
		})
	} else {
		condition.Conditions = append(condition.Conditions, p.parseSupportsInParens())
	}

	for {
		switch {
		case p.atIdent("and"):
			keyword := identFromToken(p.next())
			inParens := p.parseSupportsInParens()
			condition.Conditions = append(condition.Conditions, &syntax.SupportsAnd{
				Spanned:   p.spanFrom(keyword.Range.Start),
				Keyword:   keyword,
				Condition: inParens,
			})
		case p.atIdent("or"):
			keyword := identFromToken(p.next())
			inParens := p.parseSupportsInParens()
			condition.Conditions = append(condition.Conditions, &syntax.SupportsOr{
				Spanned:   p.spanFrom(keyword.Range.Start),
				Keyword:   keyword,
				Condition: inParens,
			})
		default:
			condition.Spanned = p.spanFrom(start)
			return condition
		}
	}
}

func (p *parser) parseSupportsInParens() *syntax.SupportsInParens {
	start := p.peek().span.Start

	if !p.at(tokLParen) {
		value := p.parseIdentLike(valueMode{})
		function, ok := value.(*syntax.Function)
		if !ok {
			p.failf(start, "expected '('")
		}
		return &syntax.SupportsInParens{Spanned: function.Spanned, Function: function}
	}

	p.next()
	inParens := &syntax.SupportsInParens{}
	inParens.Declaration, inParens.Condition = p.parseDeclarationOrCondition()
	p.expect(tokRParen)
	inParens.Spanned = p.spanFrom(start)
	return inParens
}

// parseDeclarationOrCondition parses the inside of `( ... )` in a supports
// query.
func (p *parser) parseDeclarationOrCondition() (*syntax.Declaration, *syntax.SupportsCondition) {
	saved := p.pos
	decl, ok := try(p, p.parseDeclaration)
	if ok && p.at(tokRParen) {
		return decl, nil
	}
	p.pos = saved
	return nil, p.parseSupportsCondition()
}

func (p *parser) parseImportPrelude() syntax.AtRulePrelude {
	start := p.peek().span.Start

	if p.syntax == syntax.Less && p.at(tokLParen) {
		return p.parseLessImport()
	}
	if p.syntax.IsSassLike() {
		saved := p.pos
		if sassImport, ok := try(p, p.parseSassImport); ok && p.atPreludeEnd() {
			return sassImport
		}
		p.pos = saved
	}

	prelude := &syntax.ImportPrelude{Href: p.parseImportHref()}

	if p.atIdent("layer") {
		if next := p.peekAt(1); next.kind == tokLParen && !next.spaceBefore {
			prelude.Layer = p.parseIdentLike(valueMode{})
		} else {
			prelude.Layer = identFromToken(p.next())
		}
	}

	if p.atIdent("supports") && p.peekAt(1).kind == tokLParen && p.adjacent(1) {
		supportsStart := p.next().span.Start
		p.next()
		supports := &syntax.ImportSupports{}
		supports.Declaration, supports.Condition = p.parseDeclarationOrCondition()
		p.expect(tokRParen)
		supports.Spanned = p.spanFrom(supportsStart)
		prelude.Supports = supports
	}

	if !p.atPreludeEnd() {
		prelude.Media = p.parseMediaQueryList()
	}

	prelude.Spanned = p.spanFrom(start)
	return prelude
}

func (p *parser) parseImportHref() syntax.ComponentValue {
	switch tok := p.peek(); tok.kind {
	case tokString:
		return p.parseStr(p.next())
	case tokURL:
		return urlFromToken(p.next())
	case tokIdent:
		if value, ok := p.parseIdentLike(valueMode{}).(*syntax.URL); ok {
			return value
		}
	}
	p.failUnexpected("string or url()")
	return nil
}

func (p *parser) parseSassImport() *syntax.SassImport {
	start := p.peek().span.Start
	sassImport := &syntax.SassImport{}
	for {
		if !p.at(tokString) {
			p.failUnexpected("string")
		}
		sassImport.Paths = append(sassImport.Paths, p.parseStr(p.next()))
		if !p.at(tokComma) {
			break
		}
		sassImport.Commas = append(sassImport.Commas, p.next().span)
	}
	sassImport.Spanned = p.spanFrom(start)
	return sassImport
}

func (p *parser) parseContainerPrelude() *syntax.ContainerPrelude {
	start := p.peek().span.Start
	prelude := &syntax.ContainerPrelude{}

	tok := p.peek()
	if tok.kind == tokIdent && !isIdent(tok, "not") && (p.peekAt(1).kind != tokLParen || p.peekAt(1).spaceBefore) {
		prelude.Name = identFromToken(p.next())
	}
	if !p.atPreludeEnd() {
		prelude.Condition = p.parseMediaCondition()
	}

	prelude.Spanned = p.spanFrom(start)
	return prelude
}

func (p *parser) parseLayerPrelude() *syntax.LayerPrelude {
	start := p.peek().span.Start
	prelude := &syntax.LayerPrelude{}

	for {
		nameStart := p.peek().span.Start
		name := &syntax.LayerName{}
		name.Parts = append(name.Parts, identFromToken(p.expect(tokIdent)))
		for p.atDelim(".") && p.adjacent(0) && p.peekAt(1).kind == tokIdent && p.adjacent(1) {
			p.next()
			name.Parts = append(name.Parts, identFromToken(p.next()))
		}
		name.Spanned = p.spanFrom(nameStart)
		prelude.Names = append(prelude.Names, name)

		if !p.at(tokComma) {
			break
		}
		prelude.Commas = append(prelude.Commas, p.next().span)
	}

	prelude.Spanned = p.spanFrom(start)
	return prelude
}

func (p *parser) parseNamespacePrelude() *syntax.NamespacePrelude {
	start := p.peek().span.Start
	prelude := &syntax.NamespacePrelude{}

	if p.at(tokIdent) && !isIdent(p.peek(), "url") {
		prelude.Prefix = identFromToken(p.next())
	}
	prelude.URI = p.parseImportHref()

	prelude.Spanned = p.spanFrom(start)
	return prelude
}

func (p *parser) parsePagePrelude() *syntax.PagePrelude {
	start := p.peek().span.Start
	prelude := &syntax.PagePrelude{}

	for {
		selectorStart := p.peek().span.Start
		selector := &syntax.PageSelector{}
		if p.at(tokIdent) {
			selector.Name = identFromToken(p.next())
		}
		for p.at(tokColon) && (selector.Name == nil && len(selector.Pseudos) == 0 || p.adjacent(0)) {
			p.next()
			if !p.adjacent(0) {
				p.failUnexpected("page pseudo-class")
			}
			selector.Pseudos = append(selector.Pseudos, identFromToken(p.expect(tokIdent)))
		}
		if selector.Name == nil && len(selector.Pseudos) == 0 {
			p.failUnexpected("page selector")
		}
		selector.Spanned = p.spanFrom(selectorStart)
		prelude.Selectors = append(prelude.Selectors, selector)

		if !p.at(tokComma) {
			break
		}
		prelude.Commas = append(prelude.Commas, p.next().span)
	}

	prelude.Spanned = p.spanFrom(start)
	return prelude
}

func (p *parser) parseScopePrelude() *syntax.ScopePrelude {
	start := p.peek().span.Start
	prelude := &syntax.ScopePrelude{}

	if p.at(tokLParen) {
		p.next()
		prelude.Start = p.parseSelectorList()
		p.expect(tokRParen)
	}
	if p.atIdent("to") {
		prelude.To = identFromToken(p.next())
		p.expect(tokLParen)
		prelude.End = p.parseSelectorList()
		p.expect(tokRParen)
	}
	if prelude.Start == nil && prelude.To == nil {
		p.failUnexpected("'('")
	}

	prelude.Spanned = p.spanFrom(start)
	return prelude
}
