package parser

import (
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// parseLessStatement parses statements that only exist in Less: extend
// rules, mixin definitions and mixin calls. It reports false when the
// statement is an ordinary rule or declaration.
func (p *parser) parseLessStatement() (syntax.Statement, bool) {
	tok := p.peek()

	if tok.isDelim("&") && p.peekAt(1).kind == tokColon && p.adjacent(1) && isIdent(p.peekAt(2), "extend") &&
		p.peekAt(3).kind == tokLParen {
		end := p.statementEnd()
		if p.tokens[end].kind != tokLBrace {
			return p.parseLessExtendRule(), true
		}
		return nil, false
	}

	if !p.atLessMixinName(0) {
		return nil, false
	}

	end := p.statementEnd()
	if p.tokens[end].kind != tokLBrace {
		return p.parseLessMixinCall(), true
	}
	if p.isLessMixinDefinition() {
		return p.parseLessMixinDefinition(), true
	}
	return nil, false
}

// atLessMixinName reports whether a mixin name `.name` or `#name` starts at
// offset.
func (p *parser) atLessMixinName(offset int) bool {
	tok := p.peekAt(offset)
	if tok.kind == tokHash {
		return true
	}
	next := p.peekAt(offset + 1)
	return tok.isDelim(".") && (next.kind == tokIdent || next.kind == tokLessInterp) && !next.spaceBefore
}

// isLessMixinDefinition reports whether the statement at the current
// position is `.name(params) [when guard] {`.
func (p *parser) isLessMixinDefinition() bool {
	idx := p.pos + 1
	if p.tokens[p.pos].isDelim(".") {
		idx++
	}
	paren := p.tokens[idx]
	if paren.kind != tokLParen || paren.spaceBefore {
		return false
	}

	closeIdx := p.matchingParen(idx)
	after := p.tokens[closeIdx+1]
	return after.kind == tokLBrace || isIdent(after, "when")
}

func (p *parser) parseLessMixinName() *syntax.Ident {
	tok := p.next()
	if tok.kind == tokHash {
		return identFromToken(tok)
	}
	name := p.next()
	return &syntax.Ident{Spanned: spanned(tok.span.Start, name.span.End), Raw: "." + name.raw}
}

func (p *parser) parseLessMixinDefinition() *syntax.LessMixinDefinition {
	start := p.peek().span.Start
	def := &syntax.LessMixinDefinition{Name: p.parseLessMixinName()}
	def.Params = p.parseLessMixinParams()
	if p.atIdent("when") {
		def.Guard = p.parseLessGuard()
	}
	def.Block = p.parseBlock(blockRegular)
	def.Spanned = p.spanFrom(start)
	return def
}

// usesSemicolons reports whether the parenthesized list starting at the
// current `(` separates its items with semicolons.
func (p *parser) usesSemicolons() bool {
	closeIdx := p.matchingParen(p.pos)
	depth := 0
	for idx := p.pos + 1; idx < closeIdx; idx++ {
		switch p.tokens[idx].kind {
		case tokLParen, tokLBracket, tokLBrace:
			depth++
		case tokRParen, tokRBracket, tokRBrace:
			depth--
		case tokSemicolon:
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

func lessVariableFromToken(tok token) *syntax.LessVariable {
	return &syntax.LessVariable{Spanned: syntax.Spanned{Range: tok.span}, Name: tok.raw[1:]}
}

func (p *parser) parseLessMixinParams() *syntax.LessMixinParams {
	p.enter()
	defer p.leave()

	params := &syntax.LessMixinParams{Semicolons: p.usesSemicolons()}
	open := p.expect(tokLParen)
	mode := valueMode{}

	for !p.at(tokRParen) {
		paramStart := p.peek().span.Start
		param := &syntax.LessMixinParam{}

		switch tok := p.peek(); {
		case tok.isDelim("..."):
			p.next()
			param.Rest = true
		case tok.kind == tokAtKeyword:
			param.Name = lessVariableFromToken(p.next())
			switch {
			case p.at(tokColon):
				colon := p.next().span
				param.Colon = &colon
				param.Default = p.parseValues(mode, !params.Semicolons)
			case p.atDelim("..."):
				p.next()
				param.Rest = true
			}
		default:
			param.Name = p.parseExpr(mode, 1)
		}

		param.Spanned = p.spanFrom(paramStart)
		params.Params = append(params.Params, param)

		if !p.at(tokComma) && !p.at(tokSemicolon) {
			break
		}
		params.Separators = append(params.Separators, p.next().span)
	}

	closing := p.expect(tokRParen)
	params.Spanned = spanned(open.span.Start, closing.span.End)
	return params
}

func (p *parser) parseLessMixinCall() *syntax.LessMixinCall {
	start := p.peek().span.Start
	call := &syntax.LessMixinCall{Callee: p.parseLessMixinCallee()}

	if p.at(tokLParen) {
		call.Args = p.parseLessMixinArgs()
	}
	if p.at(tokBang) {
		call.Important = p.parseBang()
	}
	p.endStatement()

	call.Spanned = p.spanFrom(start)
	return call
}

func (p *parser) parseLessMixinCallee() *syntax.LessMixinCallee {
	start := p.peek().span.Start
	callee := &syntax.LessMixinCallee{}

	first := p.parseLessMixinName()
	callee.Parts = append(callee.Parts, &syntax.LessMixinCalleePart{Spanned: first.Spanned, Name: first})

	for {
		saved := p.pos
		partStart := p.peek().span.Start
		combinator := ""
		switch {
		case p.atDelim(">"):
			p.next()
			combinator = ">"
		case p.peek().spaceBefore:
			combinator = " "
		}
		if !p.atLessMixinName(0) {
			p.pos = saved
			break
		}
		name := p.parseLessMixinName()
		callee.Parts = append(callee.Parts, &syntax.LessMixinCalleePart{
			Spanned:    p.spanFrom(partStart),
			Combinator: combinator,
			Name:       name,
		})
	}

	callee.Spanned = p.spanFrom(start)
	return callee
}

func (p *parser) parseLessMixinArgs() *syntax.LessMixinArgs {
	p.enter()
	defer p.leave()

	args := &syntax.LessMixinArgs{Semicolons: p.usesSemicolons()}
	open := p.expect(tokLParen)
	mode := valueMode{}

	for !p.at(tokRParen) {
		argStart := p.peek().span.Start
		if p.at(tokAtKeyword) && p.peekAt(1).kind == tokColon {
			name := lessVariableFromToken(p.next())
			p.next()
			valueStart := p.peek().span.Start
			values := p.parseValues(mode, !args.Semicolons)
			args.Args = append(args.Args, &syntax.LessNamedArg{
				Spanned: p.spanFrom(argStart),
				Name:    name,
				Value:   &syntax.ValueList{Spanned: p.spanFrom(valueStart), Values: values},
			})
		} else {
			values := p.parseValues(mode, !args.Semicolons)
			if len(values) == 0 {
				p.failUnexpected("argument")
			}
			args.Args = append(args.Args, &syntax.ValueList{Spanned: p.spanFrom(argStart), Values: values})
		}

		if !p.at(tokComma) && !p.at(tokSemicolon) {
			break
		}
		args.Separators = append(args.Separators, p.next().span)
	}

	closing := p.expect(tokRParen)
	args.Spanned = spanned(open.span.Start, closing.span.End)
	return args
}

func (p *parser) parseLessGuard() *syntax.LessGuard {
	keyword := p.expectIdent("when")
	guard := &syntax.LessGuard{Keyword: keyword.Range}
	mode := valueMode{expr: true}

	for {
		guard.Conditions = append(guard.Conditions, p.parseExpr(mode, 1))
		if !p.at(tokComma) {
			break
		}
		guard.Commas = append(guard.Commas, p.next().span)
	}

	guard.Spanned = p.spanFrom(keyword.Range.Start)
	return guard
}

func (p *parser) parseLessVariableDecl() *syntax.LessVariableDecl {
	start := p.peek().span.Start
	decl := &syntax.LessVariableDecl{Name: lessVariableFromToken(p.next())}
	p.expect(tokColon)

	if p.at(tokLBrace) {
		decl.Ruleset = p.parseBlock(blockRegular)
		if p.at(tokSemicolon) {
			p.next()
		}
		decl.Spanned = p.spanFrom(start)
		return decl
	}

	values, ok := try(p, p.parseDeclarationValue)
	if !ok {
		values = p.parseRawValue()
	}
	decl.Value = values
	if p.at(tokBang) {
		decl.Important = p.parseBang()
	}
	p.endStatement()

	decl.Spanned = p.spanFrom(start)
	return decl
}

func (p *parser) parseLessDetachedRulesetCall() *syntax.LessDetachedRulesetCall {
	start := p.peek().span.Start
	call := &syntax.LessDetachedRulesetCall{Name: lessVariableFromToken(p.next())}
	p.expect(tokLParen)
	p.expect(tokRParen)
	p.endStatement()
	call.Spanned = p.spanFrom(start)
	return call
}

func (p *parser) parseLessExtendRule() *syntax.LessExtendRule {
	start := p.next().span.Start // &
	p.next()                     // :
	p.next()                     // extend
	open := p.pos
	closeIdx := p.matchingParen(open)
	p.next()

	rule := &syntax.LessExtendRule{Args: p.parseTokenList(closeIdx)}
	p.expect(tokRParen)
	p.endStatement()
	rule.Spanned = p.spanFrom(start)
	return rule
}

func (p *parser) parseLessImport() *syntax.LessImport {
	start := p.peek().span.Start
	lessImport := &syntax.LessImport{}

	open := p.expect(tokLParen)
	options := &syntax.LessImportOptions{}
	for !p.at(tokRParen) {
		options.Names = append(options.Names, identFromToken(p.expect(tokIdent)))
		if !p.at(tokComma) {
			break
		}
		options.Commas = append(options.Commas, p.next().span)
	}
	closing := p.expect(tokRParen)
	options.Spanned = spanned(open.span.Start, closing.span.End)
	lessImport.Options = options

	lessImport.Href = p.parseImportHref()
	if !p.atPreludeEnd() {
		lessImport.Media = p.parseMediaQueryList()
	}

	lessImport.Spanned = p.spanFrom(start)
	return lessImport
}
