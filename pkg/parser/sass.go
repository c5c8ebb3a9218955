package parser

import (
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

func (p *parser) parseSassModulePath() syntax.InterpolableStr {
	if !p.at(tokString) {
		p.failUnexpected("string")
	}
	return p.parseStr(p.next())
}

func (p *parser) parseSassUse() *syntax.SassUse {
	start := p.peek().span.Start
	use := &syntax.SassUse{Path: p.parseSassModulePath()}

	if p.atIdent("as") {
		as := p.next().span
		use.As = &as
		if tok := p.peek(); tok.isDelim("*") {
			p.next()
			use.Namespace = &syntax.Ident{Spanned: syntax.Spanned{Range: tok.span}, Raw: "*"}
		} else {
			use.Namespace = identFromToken(p.expect(tokIdent))
		}
	}
	if p.atIdent("with") {
		use.Config = p.parseSassModuleConfig()
	}

	use.Spanned = p.spanFrom(start)
	return use
}

func (p *parser) parseSassForward() *syntax.SassForward {
	start := p.peek().span.Start
	forward := &syntax.SassForward{Path: p.parseSassModulePath()}

	if p.atIdent("as") {
		as := p.next().span
		forward.As = &as
		name := p.expect(tokIdent)
		star := p.peek()
		if !star.isDelim("*") || star.spaceBefore {
			p.failUnexpected("'*'")
		}
		p.next()
		forward.Prefix = &syntax.Ident{Spanned: spanned(name.span.Start, star.span.End), Raw: name.raw + "*"}
	}

	if p.atIdent("show") || p.atIdent("hide") {
		forward.Visibility = identFromToken(p.next())
		for {
			switch tok := p.peek(); tok.kind {
			case tokVariable:
				forward.Members = append(forward.Members, variableFromToken(p.next()))
			case tokIdent:
				forward.Members = append(forward.Members, identFromToken(p.next()))
			default:
				p.failUnexpected("member name")
			}
			if !p.at(tokComma) {
				break
			}
			forward.Commas = append(forward.Commas, p.next().span)
		}
	}

	if p.atIdent("with") {
		forward.Config = p.parseSassModuleConfig()
	}

	forward.Spanned = p.spanFrom(start)
	return forward
}

func (p *parser) parseSassModuleConfig() *syntax.SassModuleConfig {
	with := p.next().span
	config := &syntax.SassModuleConfig{With: with}
	open := p.expect(tokLParen)

	for !p.at(tokRParen) {
		itemStart := p.peek().span.Start
		item := &syntax.SassModuleConfigItem{Name: variableFromToken(p.expect(tokVariable))}
		item.Colon = p.expect(tokColon).span
		item.Value = p.parseSpaceList(valueMode{expr: true})
		for p.at(tokBang) {
			item.Flags = append(item.Flags, p.parseBang())
		}
		item.Spanned = p.spanFrom(itemStart)
		config.Items = append(config.Items, item)

		if !p.at(tokComma) {
			break
		}
		config.Commas = append(config.Commas, p.next().span)
	}

	closing := p.expect(tokRParen)
	config.Parens = syntax.Span{Start: open.span.Start, End: closing.span.End}
	config.Spanned = p.spanFrom(with.Start)
	return config
}

func (p *parser) parseSassCallable() *syntax.SassCallable {
	start := p.peek().span.Start
	callable := &syntax.SassCallable{Name: p.parseInterpolableIdent()}
	if p.at(tokLParen) {
		callable.Params = p.parseSassParams()
	}
	callable.Spanned = p.spanFrom(start)
	return callable
}

func (p *parser) parseSassParams() *syntax.SassParams {
	p.enter()
	defer p.leave()

	open := p.expect(tokLParen)
	params := &syntax.SassParams{}

	for !p.at(tokRParen) {
		paramStart := p.peek().span.Start
		param := &syntax.SassParam{Name: variableFromToken(p.expect(tokVariable))}
		switch {
		case p.at(tokColon):
			colon := p.next().span
			param.Colon = &colon
			param.Default = p.parseSpaceList(valueMode{expr: true})
		case p.atDelim("..."):
			p.next()
			param.Rest = true
		}
		param.Spanned = p.spanFrom(paramStart)
		params.Params = append(params.Params, param)

		if !p.at(tokComma) {
			break
		}
		params.Commas = append(params.Commas, p.next().span)
	}

	closing := p.expect(tokRParen)
	params.Spanned = spanned(open.span.Start, closing.span.End)
	return params
}

func (p *parser) parseSassArgs() *syntax.SassArgs {
	p.enter()
	defer p.leave()

	open := p.expect(tokLParen)
	args := &syntax.SassArgs{}
	mode := valueMode{expr: true, args: true}

	for !p.at(tokRParen) {
		if p.at(tokVariable) && p.peekAt(1).kind == tokColon {
			args.Args = append(args.Args, p.parseSassKeywordArgument(mode))
		} else {
			args.Args = append(args.Args, p.parseSpaceList(mode))
		}
		if !p.at(tokComma) {
			break
		}
		args.Commas = append(args.Commas, p.next().span)
	}

	closing := p.expect(tokRParen)
	args.Spanned = spanned(open.span.Start, closing.span.End)
	return args
}

func (p *parser) parseSassInclude() *syntax.SassInclude {
	start := p.peek().span.Start
	include := &syntax.SassInclude{}

	name := p.parseInterpolableIdent()
	include.Target = name
	if module, ok := name.(*syntax.Ident); ok && p.atDelim(".") && p.adjacent(0) &&
		p.peekAt(1).kind == tokIdent && p.adjacent(1) {
		p.next()
		member := identFromToken(p.next())
		include.Target = &syntax.SassQualifiedName{Spanned: p.spanFrom(start), Module: module, Member: member}
	}

	if p.at(tokLParen) {
		include.Args = p.parseSassArgs()
	}
	if p.atIdent("using") {
		using := p.next().span
		include.UsingKeyword = &using
		include.Using = p.parseSassParams()
	}

	include.Spanned = p.spanFrom(start)
	return include
}

func (p *parser) parseSassEach() *syntax.SassEach {
	start := p.peek().span.Start
	each := &syntax.SassEach{}

	for {
		each.Bindings = append(each.Bindings, variableFromToken(p.expect(tokVariable)))
		if !p.at(tokComma) {
			break
		}
		each.Commas = append(each.Commas, p.next().span)
	}
	each.In = p.expectIdent("in")
	each.Expr = p.parseExpressionValue(valueMode{expr: true})

	each.Spanned = p.spanFrom(start)
	return each
}

func (p *parser) parseSassFor() *syntax.SassFor {
	start := p.peek().span.Start
	loop := &syntax.SassFor{Variable: variableFromToken(p.expect(tokVariable))}
	mode := valueMode{expr: true}

	loop.From = p.expectIdent("from")
	loop.Start = p.parseExpr(mode, 1)
	if p.atIdent("through") {
		loop.Bound = identFromToken(p.next())
	} else {
		loop.Bound = p.expectIdent("to")
	}
	loop.End = p.parseExpr(mode, 1)

	loop.Spanned = p.spanFrom(start)
	return loop
}

func (p *parser) parseSassExtend() *syntax.SassExtend {
	start := p.peek().span.Start
	extend := &syntax.SassExtend{Selector: p.parseSelectorList()}
	if p.at(tokBang) {
		extend.Optional = p.parseBang()
	}
	extend.Spanned = p.spanFrom(start)
	return extend
}
