package parser

import (
	"errors"
	"strings"

	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// valueMode controls which operators are recognized in a value.
type valueMode struct {
	// math enables `/` as division and unconditional `+` and `-`.
	math bool
	// calc drops grouping parentheses; the printer restores them from
	// operator precedence.
	calc bool
	// expr enables comparisons, `and`, `or` and `not`.
	expr bool
	// args enables Sass keyword arguments.
	args bool
}

//nolint:gochecknoglobals // Read-only lookup table.
var mathFunctions = map[string]bool{
	"calc": true, "-webkit-calc": true, "-moz-calc": true,
	"min": true, "max": true, "clamp": true, "round": true, "mod": true, "rem": true,
	"sin": true, "cos": true, "tan": true, "asin": true, "acos": true, "atan": true, "atan2": true,
	"pow": true, "sqrt": true, "hypot": true, "log": true, "exp": true, "abs": true, "sign": true,
}

// IsMathFunction reports whether name is a CSS math function whose
// arguments are calculations.
func IsMathFunction(name string) bool {
	return mathFunctions[strings.ToLower(name)]
}

// parseValues parses component values up to the end of the enclosing
// construct. Commas, and slashes outside math, become *Delimiter nodes.
func (p *parser) parseValues(mode valueMode, stopAtComma bool) []syntax.ComponentValue {
	var values []syntax.ComponentValue
	for {
		tok := p.peek()
		if p.isValueStop(tok, mode, stopAtComma) {
			return values
		}

		switch {
		case tok.kind == tokComma:
			p.next()
			values = append(values, &syntax.Delimiter{Spanned: syntax.Spanned{Range: tok.span}, Kind: syntax.DelimiterComma})
			continue
		case tok.isDelim("/") && !mode.math:
			p.next()
			values = append(values, &syntax.Delimiter{Spanned: syntax.Spanned{Range: tok.span}, Kind: syntax.DelimiterSolidus})
			continue
		case mode.args && p.syntax.IsSassLike() && tok.kind == tokVariable && p.peekAt(1).kind == tokColon:
			values = append(values, p.parseSassKeywordArgument(mode))
			continue
		}

		value := p.parseExpr(mode, 1)
		if p.syntax.IsSassLike() && p.atDelim("...") {
			dots := p.next()
			value = &syntax.SassArbitraryArgument{
				Spanned: spanned(value.Span().Start, dots.span.End),
				Value:   value,
			}
		}
		values = append(values, value)
	}
}

func (p *parser) isValueStop(tok token, mode valueMode, stopAtComma bool) bool {
	switch tok.kind {
	case tokEOF, tokSemicolon, tokRBrace, tokLBrace, tokRParen, tokRBracket, tokBang, tokColon:
		return true
	case tokComma:
		return stopAtComma
	case tokDelim:
		if !mode.expr {
			switch tok.raw {
			case "<", ">", "<=", ">=", "=", "==", "!=":
				return true
			}
		}
		return tok.raw == "..."
	default:
		return false
	}
}

// parseSpaceList parses space separated values up to a comma and returns
// them as one node.
func (p *parser) parseSpaceList(mode valueMode) syntax.ComponentValue {
	start := p.peek().span.Start
	values := p.parseValues(mode, true)
	switch len(values) {
	case 0:
		p.failUnexpected("value")
		return nil
	case 1:
		return values[0]
	default:
		return &syntax.ValueList{Spanned: p.spanFrom(start), Values: values}
	}
}

func (p *parser) parseSassKeywordArgument(mode valueMode) *syntax.SassKeywordArgument {
	name := variableFromToken(p.next())
	colon := p.expect(tokColon)
	value := p.parseSpaceList(valueMode{math: mode.math, expr: true})
	return &syntax.SassKeywordArgument{
		Spanned: p.spanFrom(name.Range.Start),
		Name:    name,
		Colon:   colon.span,
		Value:   value,
	}
}

// parseExpr parses a binary expression by precedence climbing.
func (p *parser) parseExpr(mode valueMode, minPrec int) syntax.ComponentValue {
	p.enter()
	defer p.leave()

	left := p.parseUnary(mode)
	for {
		kind, prec, width, ok := p.peekOperator(mode)
		if !ok || prec < minPrec {
			return left
		}

		first := p.peek()
		for range width {
			p.next()
		}
		op := &syntax.Operator{Spanned: spanned(first.span.Start, p.lastEnd()), Kind: kind}
		right := p.parseExpr(mode, prec+1)
		left = &syntax.BinaryOperation{
			Spanned: spanned(left.Span().Start, right.Span().End),
			Left:    left,
			Op:      op,
			Right:   right,
		}
	}
}

const (
	precOr = iota + 1
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
)

func (p *parser) arithmetic(mode valueMode) bool {
	return mode.math || p.syntax != syntax.CSS
}

// peekOperator reports the binary operator at the current position and the
// number of tokens it spans.
//
//nolint:cyclop // Operator table.
func (p *parser) peekOperator(mode valueMode) (syntax.OperatorKind, int, int, bool) {
	tok := p.peek()
	next := p.peekAt(1)

	if tok.kind == tokIdent && mode.expr {
		switch strings.ToLower(tok.raw) {
		case "or":
			return syntax.OperatorOr, precOr, 1, true
		case "and":
			return syntax.OperatorAnd, precAnd, 1, true
		}
		return 0, 0, 0, false
	}
	if tok.kind != tokDelim {
		return 0, 0, 0, false
	}

	if mode.expr {
		switch tok.raw {
		case "==":
			return syntax.OperatorEq, precEquality, 1, true
		case "!=":
			return syntax.OperatorNotEq, precEquality, 1, true
		case "<":
			return syntax.OperatorLess, precRelational, 1, true
		case "<=":
			return syntax.OperatorLessEq, precRelational, 1, true
		case ">":
			return syntax.OperatorGreater, precRelational, 1, true
		case ">=":
			return syntax.OperatorGreaterEq, precRelational, 1, true
		case "=":
			if p.syntax == syntax.Less {
				if next.isDelim("<") && !next.spaceBefore {
					return syntax.OperatorLessEq, precRelational, 2, true
				}
				return syntax.OperatorEq, precEquality, 1, true
			}
		}
	}

	if !p.arithmetic(mode) {
		return 0, 0, 0, false
	}

	switch tok.raw {
	case "+", "-":
		// Outside math, `a -b` is a list; `a - b` and `a-b` are operations.
		if !mode.math && tok.spaceBefore != next.spaceBefore {
			return 0, 0, 0, false
		}
		if tok.raw == "+" {
			return syntax.OperatorAdd, precAdditive, 1, true
		}
		return syntax.OperatorSub, precAdditive, 1, true
	case "*":
		return syntax.OperatorMul, precMultiplicative, 1, true
	case "/":
		if mode.math {
			return syntax.OperatorDiv, precMultiplicative, 1, true
		}
	case "%":
		if p.syntax.IsSassLike() {
			return syntax.OperatorMod, precMultiplicative, 1, true
		}
	}
	return 0, 0, 0, false
}

func (p *parser) parseUnary(mode valueMode) syntax.ComponentValue {
	tok := p.peek()
	next := p.peekAt(1)

	switch {
	case mode.expr && isIdent(tok, "not") && next.spaceBefore && startsValue(next):
		p.next()
		op := &syntax.Operator{Spanned: syntax.Spanned{Range: tok.span}, Kind: syntax.OperatorNot}
		value := p.parseUnary(mode)
		return &syntax.UnaryOperation{Spanned: spanned(tok.span.Start, value.Span().End), Op: op, Value: value}
	case (tok.isDelim("-") || tok.isDelim("+")) && p.arithmetic(mode) && !next.spaceBefore &&
		next.kind != tokInterpStart && next.kind != tokLessInterp && startsValue(next):
		p.next()
		kind := syntax.OperatorSub
		if tok.raw == "+" {
			kind = syntax.OperatorAdd
		}
		op := &syntax.Operator{Spanned: syntax.Spanned{Range: tok.span}, Kind: kind}
		value := p.parseUnary(mode)
		return &syntax.UnaryOperation{Spanned: spanned(tok.span.Start, value.Span().End), Op: op, Value: value}
	}

	return p.parsePrimary(mode)
}

func startsValue(tok token) bool {
	switch tok.kind {
	case tokIdent, tokVariable, tokNumber, tokPercentage, tokDimension, tokString, tokLParen,
		tokHash, tokAtKeyword, tokURL, tokInterpStart, tokLessInterp, tokLBracket:
		return true
	default:
		return false
	}
}

//nolint:gocyclo,cyclop // Primary value dispatch.
func (p *parser) parsePrimary(mode valueMode) syntax.ComponentValue {
	tok := p.peek()
	next := p.peekAt(1)
	span := syntax.Spanned{Range: tok.span}

	switch tok.kind {
	case tokNumber:
		p.next()
		return &syntax.Number{Spanned: span, Raw: tok.raw}
	case tokPercentage:
		p.next()
		return &syntax.Percentage{
			Spanned: span,
			Value:   &syntax.Number{Spanned: spanned(tok.span.Start, tok.span.End-1), Raw: tok.raw[:len(tok.raw)-1]},
		}
	case tokDimension:
		p.next()
		return dimensionFromToken(tok)
	case tokString:
		p.next()
		return p.parseStr(tok)
	case tokHash:
		p.next()
		return &syntax.HexColor{Spanned: span, Raw: tok.raw[1:]}
	case tokURL:
		p.next()
		return urlFromToken(tok)
	case tokUnicodeRange:
		p.next()
		return &syntax.UnicodeRange{Spanned: span, Raw: tok.raw}
	case tokVariable:
		p.next()
		if p.syntax == syntax.Less {
			return &syntax.LessPropertyVariable{Spanned: span, Name: tok.raw[1:]}
		}
		return variableFromToken(tok)
	case tokAtKeyword:
		if p.syntax != syntax.Less {
			break
		}
		p.next()
		if strings.HasPrefix(tok.raw, "@@") {
			return &syntax.LessVariableVariable{Spanned: span, Name: tok.raw[2:]}
		}
		return &syntax.LessVariable{Spanned: span, Name: tok.raw[1:]}
	case tokLParen:
		return p.parseParenthesized(mode)
	case tokLBracket:
		return p.parseBracketBlock(mode)
	case tokIdent, tokInterpStart, tokLessInterp:
		return p.parseIdentLike(mode)
	case tokDelim:
		switch {
		case tok.raw == "-" && !next.spaceBefore && (next.kind == tokInterpStart || next.kind == tokLessInterp):
			return p.parseIdentLike(mode)
		case tok.raw == "&":
			p.next()
			return &syntax.Ident{Spanned: span, Raw: "&"}
		case tok.raw == "~" && p.syntax == syntax.Less && next.kind == tokString && !next.spaceBefore:
			p.next()
			str := p.parseStr(p.next())
			return &syntax.LessEscapedStr{Spanned: spanned(tok.span.Start, str.Span().End), Value: str}
		case tok.raw == "%" && p.syntax == syntax.Less && next.kind == tokLParen && !next.spaceBefore:
			p.next()
			name := &syntax.Ident{Spanned: span, Raw: "%"}
			return p.parseFunction(name, mode)
		}
	}

	p.failUnexpected("value")
	return nil
}

func dimensionFromToken(tok token) *syntax.Dimension {
	split := tok.unitStart - tok.span.Start
	return &syntax.Dimension{
		Spanned: syntax.Spanned{Range: tok.span},
		Value:   &syntax.Number{Spanned: spanned(tok.span.Start, tok.unitStart), Raw: tok.raw[:split]},
		Unit:    &syntax.Ident{Spanned: spanned(tok.unitStart, tok.span.End), Raw: tok.raw[split:]},
	}
}

// urlFromToken splits an unquoted `url(...)` token.
func urlFromToken(tok token) *syntax.URL {
	const nameLen = len("url")
	return &syntax.URL{
		Spanned: syntax.Spanned{Range: tok.span},
		Name:    &syntax.Ident{Spanned: spanned(tok.span.Start, tok.span.Start+nameLen), Raw: tok.raw[:nameLen]},
		Raw:     strings.TrimSpace(tok.raw[nameLen+1 : len(tok.raw)-1]),
	}
}

// parseIdentLike parses an identifier and what it introduces: a function
// call, a quoted url() or a Sass module member.
func (p *parser) parseIdentLike(mode valueMode) syntax.ComponentValue {
	name := p.parseInterpolableIdent()
	next := p.peek()

	if ident, ok := name.(*syntax.Ident); ok && p.syntax.IsSassLike() && next.isDelim(".") && !next.spaceBefore {
		member := p.peekAt(1)
		if !member.spaceBefore && (member.kind == tokIdent || member.kind == tokVariable) {
			return p.parseSassQualifiedName(ident, mode)
		}
	}

	if next.kind != tokLParen || next.spaceBefore {
		return name
	}

	if ident, ok := name.(*syntax.Ident); ok && strings.EqualFold(ident.Raw, "url") && p.peekAt(1).kind == tokString &&
		p.peekAt(2).kind == tokRParen {
		p.next()
		str := p.parseStr(p.next())
		p.next()
		return &syntax.URL{Spanned: p.spanFrom(ident.Range.Start), Name: ident, Value: str}
	}

	return p.parseFunction(name, mode)
}

func (p *parser) parseSassQualifiedName(module *syntax.Ident, mode valueMode) *syntax.SassQualifiedName {
	p.next() // .
	tok := p.next()

	var member syntax.ComponentValue
	if tok.kind == tokVariable {
		member = variableFromToken(tok)
	} else {
		name := identFromToken(tok)
		member = name
		if p.at(tokLParen) && p.adjacent(0) {
			member = p.parseFunction(name, mode)
		}
	}

	return &syntax.SassQualifiedName{Spanned: p.spanFrom(module.Range.Start), Module: module, Member: member}
}

func (p *parser) parseFunction(name syntax.InterpolableIdent, mode valueMode) *syntax.Function {
	p.enter()
	defer p.leave()

	p.expect(tokLParen)

	argMode := valueMode{expr: mode.expr, args: true}
	if IsMathFunction(identText(name)) {
		argMode = valueMode{math: true, calc: true, expr: mode.expr}
	}

	saved := p.pos
	args, ok := try(p, func() []syntax.ComponentValue { return p.parseValues(argMode, false) })
	if !ok || !p.at(tokRParen) {
		p.pos = saved
		args = p.parseRawValue()
	}
	p.expect(tokRParen)

	return &syntax.Function{Spanned: p.spanFrom(name.Span().Start), Name: name, Args: args}
}

func (p *parser) parseParenthesized(mode valueMode) syntax.ComponentValue {
	p.enter()
	defer p.leave()

	open := p.expect(tokLParen)

	if p.syntax.IsSassLike() && !mode.calc && p.looksLikeSassMap() {
		return p.parseSassMap(open)
	}

	inner := valueMode{math: mode.math || p.syntax != syntax.CSS, calc: mode.calc, expr: mode.expr}
	listStart := p.peek().span.Start
	values := p.parseValues(inner, false)
	closing := p.expect(tokRParen)

	if mode.calc && len(values) == 1 {
		return values[0]
	}

	paren := &syntax.Parenthesized{Spanned: spanned(open.span.Start, closing.span.End)}
	switch len(values) {
	case 1:
		paren.Value = values[0]
	default:
		end := listStart
		if len(values) > 0 {
			end = values[len(values)-1].Span().End
		}
		paren.Value = &syntax.ValueList{Spanned: spanned(listStart, end), Values: values}
	}
	return paren
}

// looksLikeSassMap reports whether the first item inside the parentheses
// is followed by a colon.
func (p *parser) looksLikeSassMap() bool {
	depth := 0
	for idx := p.pos; idx < len(p.tokens); idx++ {
		switch p.tokens[idx].kind {
		case tokLParen, tokLBracket, tokInterpStart:
			depth++
		case tokRParen, tokRBracket, tokRBrace:
			if depth == 0 {
				return false
			}
			depth--
		case tokColon:
			if depth == 0 {
				return true
			}
		case tokComma:
			if depth == 0 {
				return false
			}
		case tokSemicolon, tokLBrace, tokEOF:
			return false
		}
	}
	return false
}

// parseSassMap parses the body of `(key: value, ...)` after the opening
// parenthesis.
func (p *parser) parseSassMap(open token) *syntax.SassMap {
	sassMap := &syntax.SassMap{}
	mode := valueMode{math: true, expr: true}

	for !p.at(tokRParen) {
		start := p.peek().span.Start
		key := p.parseSpaceList(mode)
		colon := p.expect(tokColon)
		value := p.parseSpaceList(mode)
		sassMap.Items = append(sassMap.Items, &syntax.SassMapItem{
			Spanned: p.spanFrom(start),
			Key:     key,
			Colon:   colon.span,
			Value:   value,
		})
		if !p.at(tokComma) {
			break
		}
		sassMap.Commas = append(sassMap.Commas, p.next().span)
	}

	if len(sassMap.Items) == 0 {
		p.failUnexpected("map key")
	}
	closing := p.expect(tokRParen)
	sassMap.Spanned = spanned(open.span.Start, closing.span.End)
	return sassMap
}

func (p *parser) parseBracketBlock(mode valueMode) *syntax.BracketBlock {
	p.enter()
	defer p.leave()

	open := p.expect(tokLBracket)
	values := p.parseValues(valueMode{expr: mode.expr}, false)
	closing := p.expect(tokRBracket)
	return &syntax.BracketBlock{Spanned: spanned(open.span.Start, closing.span.End), Values: values}
}

// parseInterpolableIdent merges adjacent identifier fragments and
// interpolations into one identifier.
//
//nolint:cyclop // Fragment merging.
func (p *parser) parseInterpolableIdent() syntax.InterpolableIdent {
	start := p.peek().span.Start
	var parts []syntax.ComponentValue

	addFragment := func(tok token) {
		if len(parts) > 0 {
			if last, ok := parts[len(parts)-1].(*syntax.IdentFragment); ok && last.Range.End == tok.span.Start {
				last.Raw += tok.raw
				last.Range.End = tok.span.End
				return
			}
		}
		parts = append(parts, &syntax.IdentFragment{Spanned: syntax.Spanned{Range: tok.span}, Raw: tok.raw})
	}

loop:
	for {
		tok := p.peek()
		if len(parts) > 0 && tok.spaceBefore {
			break
		}
		next := p.peekAt(1)
		afterInterp := len(parts) > 0 && isInterpolation(parts[len(parts)-1])

		switch {
		case tok.kind == tokIdent:
			addFragment(p.next())
		case tok.kind == tokInterpStart:
			parts = append(parts, p.parseSassInterpolation())
		case tok.kind == tokLessInterp:
			p.next()
			parts = append(parts, lessInterpolation(tok))
		case afterInterp && (tok.kind == tokNumber || tok.kind == tokDimension):
			addFragment(p.next())
		case tok.isDelim("-") && !next.spaceBefore &&
			(next.kind == tokInterpStart || next.kind == tokLessInterp || len(parts) > 0 &&
				(next.kind == tokIdent || next.kind == tokNumber || next.kind == tokDimension)):
			addFragment(p.next())
		default:
			break loop
		}
	}

	if len(parts) == 0 {
		p.failUnexpected("identifier")
	}
	if fragment, ok := parts[0].(*syntax.IdentFragment); ok && len(parts) == 1 {
		return &syntax.Ident{Spanned: fragment.Spanned, Raw: fragment.Raw}
	}
	return &syntax.InterpolatedIdent{Spanned: p.spanFrom(start), Parts: parts}
}

func isInterpolation(value syntax.ComponentValue) bool {
	_, ok := value.(*syntax.Interpolation)
	return ok
}

func lessInterpolation(tok token) *syntax.Interpolation {
	return &syntax.Interpolation{
		Spanned: syntax.Spanned{Range: tok.span},
		Less:    true,
		Name:    tok.raw[2 : len(tok.raw)-1],
	}
}

func (p *parser) parseSassInterpolation() *syntax.Interpolation {
	p.enter()
	defer p.leave()

	open := p.expect(tokInterpStart)
	values := p.parseValues(valueMode{expr: true, math: true}, false)
	closing := p.expect(tokRBrace)
	return &syntax.Interpolation{Spanned: spanned(open.span.Start, closing.span.End), Value: values}
}

// parseStr converts a string token, splitting out interpolation.
func (p *parser) parseStr(tok token) syntax.InterpolableStr {
	hasInterp := p.syntax.IsSassLike() && strings.Contains(tok.raw, "#{") ||
		p.syntax == syntax.Less && strings.Contains(tok.raw, "@{")
	if !hasInterp {
		return &syntax.Str{Spanned: syntax.Spanned{Range: tok.span}, Raw: tok.raw}
	}

	str := &syntax.InterpolatedStr{Spanned: syntax.Spanned{Range: tok.span}, Quote: tok.raw[0]}
	contentStart := tok.span.Start + 1
	content := tok.raw[1 : len(tok.raw)-1]

	literal := 0
	flush := func(end int) {
		if end > literal {
			str.Parts = append(str.Parts, &syntax.IdentFragment{
				Spanned: spanned(contentStart+literal, contentStart+end),
				Raw:     content[literal:end],
			})
		}
	}

	for idx := 0; idx < len(content); idx++ {
		switch {
		case content[idx] == '\\':
			idx++
		case p.syntax.IsSassLike() && strings.HasPrefix(content[idx:], "#{"):
			end := interpolationEnd(content, idx)
			flush(idx)
			str.Parts = append(str.Parts, p.parseEmbeddedInterpolation(contentStart+idx, contentStart+end))
			literal = end
			idx = end - 1
		case p.syntax == syntax.Less && strings.HasPrefix(content[idx:], "@{"):
			closeIdx := strings.IndexByte(content[idx:], '}')
			if closeIdx < 0 {
				continue
			}
			end := idx + closeIdx + 1
			flush(idx)
			str.Parts = append(str.Parts, &syntax.Interpolation{
				Spanned: spanned(contentStart+idx, contentStart+end),
				Less:    true,
				Name:    content[idx+2 : end-1],
			})
			literal = end
			idx = end - 1
		}
	}
	flush(len(content))

	return str
}

// interpolationEnd returns the offset after the `}` closing the `#{` at
// start.
func interpolationEnd(content string, start int) int {
	depth := 0
	for idx := start + 1; idx < len(content); idx++ {
		switch content[idx] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return idx + 1
			}
		case '"', '\'':
			quote := content[idx]
			for idx++; idx < len(content) && content[idx] != quote; idx++ {
				if content[idx] == '\\' {
					idx++
				}
			}
		}
	}
	return len(content)
}

// parseEmbeddedInterpolation parses the `#{...}` between start and end of a
// string by scanning it separately.
func (p *parser) parseEmbeddedInterpolation(start, end int) *syntax.Interpolation {
	const delimLen = len("#{")
	innerStart, innerEnd := start+delimLen, end-1

	tokens, _, err := scan(p.source[innerStart:innerEnd], p.syntax)
	if err != nil {
		var perr *Error
		if errors.As(err, &perr) {
			p.failf(innerStart+perr.Pos, "%s", perr.Message)
		}
		p.failf(start, "%s", err.Error())
	}
	for idx := range tokens {
		tokens[idx].span.Start += innerStart
		tokens[idx].span.End += innerStart
		if tokens[idx].unitStart > 0 {
			tokens[idx].unitStart += innerStart
		}
	}

	sub := &parser{source: p.source, syntax: p.syntax, tokens: tokens, lines: p.lines, depth: p.depth}
	values := sub.parseValues(valueMode{expr: true, math: true}, false)
	if !sub.at(tokEOF) {
		sub.failUnexpected("'}'")
	}

	return &syntax.Interpolation{Spanned: spanned(start, end), Value: values}
}

// identText returns the literal text of an identifier, without
// interpolated parts.
func identText(ident syntax.InterpolableIdent) string {
	switch ident := ident.(type) {
	case *syntax.Ident:
		return ident.Raw
	case *syntax.InterpolatedIdent:
		var builder strings.Builder
		for _, part := range ident.Parts {
			if fragment, ok := part.(*syntax.IdentFragment); ok {
				builder.WriteString(fragment.Raw)
			}
		}
		return builder.String()
	default:
		panic("parser: unexpected identifier type")
	}
}
