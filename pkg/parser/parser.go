// Package parser parses CSS, SCSS, Sass and Less source into the syntax tree
// of package syntax.
//
// The parser is a recursive descent parser over a pre-scanned token slice.
// Comments are collected by the scanner and returned next to the tree. The
// indented Sass syntax is converted to SCSS tokens before parsing, so all four
// dialects share one grammar.
package parser

import (
	"strings"

	"github.com/yaklabco/cssfmt/pkg/source"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// maxNestingDepth bounds recursion on pathological input.
const maxNestingDepth = 256

// Parse parses src in the given dialect. Comments are returned in source
// order. Errors are of type *Error.
func Parse(src string, syn syntax.Syntax) (*syntax.Stylesheet, []syntax.Comment, error) {
	tokens, comments, err := scan(src, syn)
	if err != nil {
		return nil, nil, err
	}

	if syn == syntax.Sass {
		tokens, err = indentTokens(src, tokens)
		if err != nil {
			return nil, nil, err
		}
	}

	p := &parser{
		source: src,
		syntax: syn,
		tokens: tokens,
		lines:  source.New(src),
	}

	sheet, err := p.parseStylesheet()
	if err != nil {
		return nil, nil, err
	}
	return sheet, comments, nil
}

type parser struct {
	source string
	syntax syntax.Syntax
	tokens []token
	lines  source.LineBounds
	pos    int
	depth  int
}

// blockKind selects how the statements of a block are parsed.
type blockKind uint8

const (
	blockRegular blockKind = iota
	blockKeyframes
)

func (p *parser) parseStylesheet() (sheet *syntax.Stylesheet, err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*Error)
			if !ok {
				panic(r)
			}
			err = perr
		}
	}()

	statements := p.parseStatements(blockRegular, true)
	return &syntax.Stylesheet{
		Spanned:    spanned(0, len(p.source)),
		Statements: statements,
	}, nil
}

// try runs fn and reports whether it completed without a syntax error. On
// failure the parser position is restored. Fatal errors are not recovered.
func try[T any](p *parser, fn func() T) (result T, ok bool) {
	saved := p.pos
	defer func() {
		if r := recover(); r != nil {
			if perr, isErr := r.(*Error); !isErr || perr.fatal {
				panic(r)
			}
			p.pos = saved
			ok = false
		}
	}()

	return fn(), true
}

func (p *parser) failf(pos int, format string, args ...any) {
	panic(newError(p.lines, pos, format, args...))
}

func (p *parser) failUnexpected(expected string) {
	tok := p.peek()
	p.failf(tok.span.Start, "expected %s, found %s", expected, describe(tok))
}

func describe(tok token) string {
	if tok.raw == "" || tok.kind == tokEOF {
		return tok.kind.String()
	}
	return "'" + tok.raw + "'"
}

func (p *parser) enter() {
	p.depth++
	if p.depth > maxNestingDepth {
		err := newError(p.lines, p.peek().span.Start, "nesting too deep")
		err.fatal = true
		panic(err)
	}
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) peekAt(offset int) token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) at(kind tokenKind) bool {
	return p.tokens[p.pos].kind == kind
}

func (p *parser) atDelim(raw string) bool {
	return p.tokens[p.pos].isDelim(raw)
}

func (p *parser) atIdent(name string) bool {
	return isIdent(p.tokens[p.pos], name)
}

func isIdent(tok token, name string) bool {
	return tok.kind == tokIdent && strings.EqualFold(tok.raw, name)
}

// adjacent reports whether the token at offset directly follows the
// previous token without whitespace.
func (p *parser) adjacent(offset int) bool {
	return !p.peekAt(offset).spaceBefore
}

func (p *parser) expect(kind tokenKind) token {
	if !p.at(kind) {
		p.failUnexpected(kind.String())
	}
	return p.next()
}

func (p *parser) expectIdent(name string) *syntax.Ident {
	if !p.atIdent(name) {
		p.failUnexpected("'" + name + "'")
	}
	return identFromToken(p.next())
}

// lastEnd returns the end offset of the last consumed token.
func (p *parser) lastEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.tokens[p.pos-1].span.End
}

func (p *parser) spanFrom(start int) syntax.Spanned {
	return spanned(start, p.lastEnd())
}

func spanned(start, end int) syntax.Spanned {
	return syntax.Spanned{Range: syntax.Span{Start: start, End: end}}
}

func identFromToken(tok token) *syntax.Ident {
	return &syntax.Ident{Spanned: syntax.Spanned{Range: tok.span}, Raw: tok.raw}
}

// statementEnd returns the index of the token that ends the statement
// starting at the current position: the first `;`, `{` or `}` outside
// parentheses and interpolation.
func (p *parser) statementEnd() int {
	depth, interp := 0, 0
	for idx := p.pos; ; idx++ {
		tok := p.tokens[idx]
		switch tok.kind {
		case tokEOF:
			return idx
		case tokLParen, tokLBracket:
			depth++
		case tokRParen, tokRBracket:
			if depth > 0 {
				depth--
			}
		case tokInterpStart:
			interp++
		case tokLBrace:
			if depth == 0 && interp == 0 {
				return idx
			}
		case tokRBrace:
			switch {
			case interp > 0:
				interp--
			case depth == 0:
				return idx
			}
		case tokSemicolon:
			if depth == 0 && interp == 0 {
				return idx
			}
		}
	}
}

// matchingParen returns the index of the `)` closing the `(` at idx.
func (p *parser) matchingParen(idx int) int {
	depth := 0
	for ; idx < len(p.tokens); idx++ {
		switch p.tokens[idx].kind {
		case tokLParen:
			depth++
		case tokRParen:
			depth--
			if depth == 0 {
				return idx
			}
		case tokEOF:
			p.failf(p.tokens[idx].span.Start, "unclosed '('")
		}
	}
	return len(p.tokens) - 1
}

func (p *parser) parseStatements(kind blockKind, topLevel bool) []syntax.Statement {
	var statements []syntax.Statement
	for {
		tok := p.peek()
		switch tok.kind {
		case tokEOF:
			if !topLevel {
				p.failUnexpected("'}'")
			}
			return statements
		case tokRBrace:
			if topLevel {
				p.failf(tok.span.Start, "unexpected '}'")
			}
			return statements
		case tokSemicolon:
			p.next()
			continue
		}

		statements = append(statements, p.parseStatement(kind))
	}
}

func (p *parser) parseBlock(kind blockKind) *syntax.Block {
	p.enter()
	defer p.leave()

	open := p.expect(tokLBrace)
	statements := p.parseStatements(kind, false)
	closing := p.expect(tokRBrace)

	return &syntax.Block{
		Spanned:    spanned(open.span.Start, closing.span.End),
		Statements: statements,
	}
}

//nolint:cyclop // Statement dispatch.
func (p *parser) parseStatement(kind blockKind) syntax.Statement {
	tok := p.peek()

	switch {
	case tok.kind == tokAtKeyword:
		return p.parseAtKeywordStatement()
	case tok.kind == tokVariable && p.syntax.IsSassLike() && p.peekAt(1).kind == tokColon:
		return p.parseSassVariableDecl()
	case p.syntax.IsSassLike() && tok.kind == tokIdent && p.peekAt(1).isDelim(".") &&
		p.peekAt(2).kind == tokVariable && p.adjacent(1) && p.adjacent(2):
		return p.parseSassVariableDecl()
	case p.syntax == syntax.Sass && (tok.isDelim("=") || tok.isDelim("+")) && p.peekAt(1).kind == tokIdent && p.adjacent(1):
		return p.parseSassShorthand()
	case p.syntax == syntax.Less:
		if statement, ok := p.parseLessStatement(); ok {
			return statement
		}
	}

	end := p.statementEnd()
	if p.tokens[end].kind != tokLBrace {
		return p.parseDeclarationStatement()
	}

	if kind == blockKeyframes {
		return p.parseKeyframeBlock()
	}
	if p.isNestedProperty() {
		return p.parseDeclarationStatement()
	}

	// Only the selector is probed so that nested blocks are parsed once.
	saved := p.pos
	_, ok := try(p, p.parseSelectorList)
	isRule := ok && (p.pos == end || p.syntax == syntax.Less && p.atIdent("when"))
	p.pos = saved
	if isRule {
		return p.parseQualifiedRule()
	}
	return p.parseDeclarationStatement()
}

// isNestedProperty reports whether the statement is a SCSS nested property
// such as `font: { family: x; }` or `margin: 0 { left: 1px; }`.
func (p *parser) isNestedProperty() bool {
	if !p.syntax.IsSassLike() {
		return false
	}
	name, colon, value := p.peekAt(0), p.peekAt(1), p.peekAt(2)
	return name.kind == tokIdent && colon.kind == tokColon && !colon.spaceBefore &&
		(value.spaceBefore || value.kind == tokLBrace)
}

func (p *parser) parseQualifiedRule() *syntax.QualifiedRule {
	start := p.peek().span.Start
	rule := &syntax.QualifiedRule{Selector: p.parseSelectorList()}
	if p.syntax == syntax.Less && p.atIdent("when") {
		rule.Guard = p.parseLessGuard()
	}
	rule.Block = p.parseBlock(blockRegular)
	rule.Spanned = p.spanFrom(start)
	return rule
}

func (p *parser) parseKeyframeBlock() *syntax.KeyframeBlock {
	start := p.peek().span.Start
	block := &syntax.KeyframeBlock{}

	for {
		value := p.parsePrimary(valueMode{expr: p.syntax != syntax.CSS})
		block.Selectors = append(block.Selectors, &syntax.KeyframeSelector{
			Spanned: syntax.Spanned{Range: value.Span()},
			Value:   value,
		})
		if !p.at(tokComma) {
			break
		}
		block.Commas = append(block.Commas, p.next().span)
	}

	block.Block = p.parseBlock(blockRegular)
	block.Spanned = p.spanFrom(start)
	return block
}

// parseDeclarationStatement parses a declaration and its terminating
// semicolon, which is included in its span.
func (p *parser) parseDeclarationStatement() *syntax.Declaration {
	decl := p.parseDeclaration()
	if decl.Block == nil {
		p.endStatement()
	}
	decl.Range.End = p.lastEnd()
	return decl
}

// endStatement consumes the `;` ending a statement. The last statement of a
// block may omit it.
func (p *parser) endStatement() {
	switch p.peek().kind {
	case tokSemicolon:
		p.next()
	case tokRBrace, tokEOF:
	default:
		p.failUnexpected("';'")
	}
}

func (p *parser) parseDeclaration() *syntax.Declaration {
	start := p.peek().span.Start
	decl := &syntax.Declaration{Name: p.parsePropertyName()}

	if p.syntax == syntax.Less && p.atDelim("+") {
		p.next()
		decl.Merge = "+"
		if p.atIdent("_") && p.adjacent(0) {
			p.next()
			decl.Merge = "+_"
		}
	}

	p.expect(tokColon)

	name := strings.ToLower(identText(decl.Name))
	switch {
	case strings.HasPrefix(name, "--"):
		decl.Value, decl.Raw = p.parseRawValue(), true
	case (name == "filter" || name == "-ms-filter") && strings.HasPrefix(strings.ToLower(p.peek().raw), "progid"):
		decl.Value, decl.Raw = p.parseRawValue(), true
	default:
		values, ok := try(p, p.parseDeclarationValue)
		if ok {
			decl.Value = values
		} else {
			decl.Value, decl.Raw = p.parseRawValue(), true
		}
	}

	if p.at(tokBang) {
		decl.Important = p.parseBang()
	}
	if p.at(tokLBrace) && p.syntax.IsSassLike() {
		decl.Block = p.parseBlock(blockRegular)
	}

	decl.Spanned = p.spanFrom(start)
	return decl
}

func (p *parser) parsePropertyName() syntax.InterpolableIdent {
	tok := p.peek()
	if tok.isDelim("*") && p.peekAt(1).kind == tokIdent && p.adjacent(1) {
		// IE star hack: `*zoom: 1`.
		p.next()
		name := p.next()
		return &syntax.Ident{Spanned: spanned(tok.span.Start, name.span.End), Raw: "*" + name.raw}
	}
	return p.parseInterpolableIdent()
}

func (p *parser) parseDeclarationValue() []syntax.ComponentValue {
	values := p.parseValues(valueMode{expr: p.syntax.IsSassLike()}, false)
	switch p.peek().kind {
	case tokSemicolon, tokRBrace, tokEOF, tokBang, tokRParen:
	case tokLBrace:
		if !p.syntax.IsSassLike() {
			p.failUnexpected("';'")
		}
	default:
		p.failUnexpected("';'")
	}
	return values
}

// parseRawValue consumes the tokens of a declaration value verbatim, up to
// the end of the declaration or an unbalanced `)`.
func (p *parser) parseRawValue() []syntax.ComponentValue {
	var (
		values []syntax.ComponentValue
		depth  int
	)
	for {
		tok := p.peek()
		switch tok.kind {
		case tokEOF:
			return values
		case tokLParen, tokLBracket, tokLBrace, tokInterpStart:
			depth++
		case tokRParen, tokRBracket, tokRBrace:
			if depth == 0 {
				return values
			}
			depth--
		case tokSemicolon, tokBang:
			if depth == 0 {
				return values
			}
		}
		p.next()
		if tok.synthetic {
			continue
		}
		values = append(values, &syntax.RawToken{Spanned: syntax.Spanned{Range: tok.span}, Raw: tok.raw})
	}
}

// parseTokenList consumes tokens up to index end.
func (p *parser) parseTokenList(end int) *syntax.TokenList {
	start := p.peek().span.Start
	list := &syntax.TokenList{}
	for p.pos < end {
		tok := p.next()
		if tok.synthetic {
			continue
		}
		list.Tokens = append(list.Tokens, &syntax.RawToken{Spanned: syntax.Spanned{Range: tok.span}, Raw: tok.raw})
	}
	list.Spanned = p.spanFrom(start)
	return list
}

func (p *parser) parseBang() *syntax.Bang {
	tok := p.expect(tokBang)
	name := strings.TrimLeft(tok.raw[1:], " \t\r\n\f")
	return &syntax.Bang{Spanned: syntax.Spanned{Range: tok.span}, Name: name}
}

func (p *parser) parseSassVariableDecl() *syntax.SassVariableDecl {
	start := p.peek().span.Start
	decl := &syntax.SassVariableDecl{}

	if p.at(tokIdent) {
		decl.Module = identFromToken(p.next())
		p.next() // .
	}
	decl.Name = variableFromToken(p.expect(tokVariable))
	p.expect(tokColon)

	mode := valueMode{expr: true}
	decl.Value = p.parseValues(mode, false)
	if len(decl.Value) == 0 {
		p.failUnexpected("value")
	}
	for p.at(tokBang) {
		decl.Flags = append(decl.Flags, p.parseBang())
	}

	p.endStatement()
	decl.Spanned = p.spanFrom(start)
	return decl
}

func variableFromToken(tok token) *syntax.SassVariable {
	return &syntax.SassVariable{Spanned: syntax.Spanned{Range: tok.span}, Name: tok.raw[1:]}
}

// parseSassShorthand parses `=name` and `+name` of the indented syntax as
// `@mixin` and `@include`.
func (p *parser) parseSassShorthand() *syntax.AtRule {
	marker := p.next()
	name := "mixin"
	if marker.raw == "+" {
		name = "include"
	}

	rule := &syntax.AtRule{Name: &syntax.Ident{Spanned: syntax.Spanned{Range: marker.span}, Raw: name}}
	end := p.statementEnd()
	rule.Prelude = p.parsePrelude(name, end)
	p.finishAtRule(rule, name)
	rule.Spanned = p.spanFrom(marker.span.Start)
	return rule
}

func (p *parser) parseAtKeywordStatement() syntax.Statement {
	tok := p.peek()
	name := strings.ToLower(tok.raw[1:])

	if p.syntax == syntax.Less {
		next := p.peekAt(1)
		switch {
		case strings.HasPrefix(tok.raw, "@@"):
			p.failf(tok.span.Start, "unexpected %s", describe(tok))
		case next.kind == tokColon && name != "page":
			return p.parseLessVariableDecl()
		case next.kind == tokLParen && !next.spaceBefore && p.peekAt(2).kind == tokRParen:
			return p.parseLessDetachedRulesetCall()
		}
	}

	if p.syntax.IsSassLike() {
		switch name {
		case "if":
			return p.parseSassIf()
		case "else", "elseif":
			p.failf(tok.span.Start, "@else without @if")
		}
	}

	return p.parseAtRule()
}

func (p *parser) parseAtRule() *syntax.AtRule {
	nameTok := p.next()
	rule := &syntax.AtRule{
		Name: &syntax.Ident{Spanned: syntax.Spanned{Range: nameTok.span}, Raw: nameTok.raw[1:]},
	}
	name := strings.ToLower(rule.Name.Raw)

	end := p.statementEnd()
	if p.pos < end {
		rule.Prelude = p.parsePrelude(name, end)
	}
	p.finishAtRule(rule, name)
	rule.Spanned = p.spanFrom(nameTok.span.Start)
	return rule
}

func (p *parser) finishAtRule(rule *syntax.AtRule, name string) {
	switch p.peek().kind {
	case tokLBrace:
		kind := blockRegular
		if strings.HasSuffix(name, "keyframes") {
			kind = blockKeyframes
		}
		rule.Block = p.parseBlock(kind)
	case tokSemicolon:
		p.next()
	case tokRBrace, tokEOF:
	default:
		p.failUnexpected("';' or '{'")
	}
}

func (p *parser) parseSassIf() *syntax.SassIfAtRule {
	start := p.peek().span.Start
	rule := &syntax.SassIfAtRule{}

	keyword := p.next()
	rule.Clauses = append(rule.Clauses, p.parseSassConditionalClause(keyword.span))

	for p.at(tokAtKeyword) {
		tok := p.peek()
		name := strings.ToLower(tok.raw[1:])
		if name != "else" && name != "elseif" {
			break
		}
		p.next()

		switch {
		case name == "elseif":
			rule.Clauses = append(rule.Clauses, p.parseSassConditionalClause(tok.span))
		case p.atIdent("if"):
			ifTok := p.next()
			keywordSpan := syntax.Span{Start: tok.span.Start, End: ifTok.span.End}
			rule.Clauses = append(rule.Clauses, p.parseSassConditionalClause(keywordSpan))
		default:
			block := p.parseBlock(blockRegular)
			rule.Else = &syntax.SassElseClause{Spanned: spanned(tok.span.Start, block.Range.End), Block: block}
			rule.Spanned = p.spanFrom(start)
			return rule
		}
	}

	rule.Spanned = p.spanFrom(start)
	return rule
}

func (p *parser) parseSassConditionalClause(keyword syntax.Span) *syntax.SassConditionalClause {
	clause := &syntax.SassConditionalClause{Keyword: keyword}
	clause.Condition = p.parseExpressionValue(valueMode{expr: true})
	clause.Block = p.parseBlock(blockRegular)
	clause.Spanned = p.spanFrom(keyword.Start)
	return clause
}

// parseExpressionValue parses a value list as a single node.
func (p *parser) parseExpressionValue(mode valueMode) syntax.ComponentValue {
	start := p.peek().span.Start
	values := p.parseValues(mode, false)
	switch len(values) {
	case 0:
		p.failUnexpected("expression")
		return nil
	case 1:
		return values[0]
	default:
		return &syntax.ValueList{Spanned: p.spanFrom(start), Values: values}
	}
}
