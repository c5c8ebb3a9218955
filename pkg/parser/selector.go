package parser

import (
	"strings"

	"github.com/yaklabco/cssfmt/pkg/syntax"
)

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	selectorPseudos = map[string]bool{
		"not": true, "is": true, "where": true, "has": true, "matches": true, "any": true,
		"-webkit-any": true, "-moz-any": true, "host": true, "host-context": true, "slotted": true,
		"global": true, "local": true, "deep": true, "current": true, "past": true, "future": true,
	}
	nthPseudos = map[string]bool{
		"nth-child": true, "nth-last-child": true, "nth-of-type": true, "nth-last-of-type": true,
		"nth-col": true, "nth-last-col": true,
	}
)

func (p *parser) parseSelectorList() *syntax.SelectorList {
	p.enter()
	defer p.leave()

	start := p.peek().span.Start
	list := &syntax.SelectorList{}
	for {
		list.Selectors = append(list.Selectors, p.parseComplexSelector())
		if !p.at(tokComma) {
			break
		}
		list.Commas = append(list.Commas, p.next().span)
	}
	list.Spanned = p.spanFrom(start)
	return list
}

func (p *parser) atSelectorEnd() bool {
	tok := p.peek()
	switch tok.kind {
	case tokEOF, tokLBrace, tokComma, tokRParen, tokSemicolon, tokRBrace, tokBang:
		return true
	case tokIdent:
		return p.syntax == syntax.Less && tok.spaceBefore && strings.EqualFold(tok.raw, "when")
	default:
		return false
	}
}

func (p *parser) parseComplexSelector() *syntax.ComplexSelector {
	start := p.peek().span.Start
	selector := &syntax.ComplexSelector{}

	for !p.atSelectorEnd() {
		if len(selector.Children) > 0 {
			tok := p.peek()
			if combinator, ok := p.parseCombinator(); ok {
				selector.Children = append(selector.Children, combinator)
				if p.atSelectorEnd() {
					// A trailing combinator as in `a > { }` is allowed in
					// nested SCSS and Less.
					break
				}
			} else if tok.spaceBefore {
				selector.Children = append(selector.Children, &syntax.Combinator{
					Spanned: spanned(tok.span.Start, tok.span.Start),
					Kind:    syntax.CombinatorDescendant,
				})
			}
		} else if combinator, ok := p.parseCombinator(); ok {
			selector.Children = append(selector.Children, combinator)
			continue
		}

		selector.Children = append(selector.Children, p.parseCompoundSelector())
	}

	if len(selector.Children) == 0 {
		p.failUnexpected("selector")
	}
	selector.Spanned = p.spanFrom(start)
	return selector
}

func (p *parser) parseCombinator() (*syntax.Combinator, bool) {
	tok := p.peek()
	if tok.kind != tokDelim {
		return nil, false
	}

	var kind syntax.CombinatorKind
	switch tok.raw {
	case ">":
		kind = syntax.CombinatorChild
	case "+":
		kind = syntax.CombinatorNextSibling
	case "~":
		kind = syntax.CombinatorLaterSibling
	case "||":
		kind = syntax.CombinatorColumn
	default:
		return nil, false
	}

	p.next()
	return &syntax.Combinator{Spanned: syntax.Spanned{Range: tok.span}, Kind: kind}, true
}

//nolint:cyclop // Simple selector dispatch.
func (p *parser) parseCompoundSelector() *syntax.CompoundSelector {
	start := p.peek().span.Start
	compound := &syntax.CompoundSelector{}

	for {
		tok := p.peek()
		if len(compound.Children) > 0 && tok.spaceBefore {
			break
		}

		var simple syntax.SimpleSelector
		switch {
		case tok.kind == tokIdent || tok.kind == tokInterpStart || tok.kind == tokLessInterp:
			simple = p.parseTypeSelector(nil)
		case tok.isDelim("-") && (p.peekAt(1).kind == tokInterpStart || p.peekAt(1).kind == tokLessInterp):
			simple = p.parseTypeSelector(nil)
		case tok.isDelim("*") || tok.isDelim("|"):
			simple = p.parseTypeOrUniversal()
		case tok.isDelim("."):
			simple = p.parseClassSelector()
		case tok.kind == tokHash:
			simple = p.parseIDSelector()
		case tok.kind == tokLBracket:
			simple = p.parseAttributeSelector()
		case tok.kind == tokColon:
			simple = p.parsePseudoSelector()
		case tok.isDelim("&"):
			simple = p.parseNestingSelector()
		case tok.isDelim("%") && p.syntax.IsSassLike():
			p.next()
			name := p.parseInterpolableIdent()
			simple = &syntax.PlaceholderSelector{Spanned: p.spanFrom(tok.span.Start), Name: name}
		default:
			if len(compound.Children) == 0 {
				p.failUnexpected("selector")
			}
			compound.Spanned = p.spanFrom(start)
			return compound
		}
		compound.Children = append(compound.Children, simple)
	}

	compound.Spanned = p.spanFrom(start)
	return compound
}

// parseNsPrefix parses `ns|`, `*|` or `|` when followed by a name or `*`.
func (p *parser) parseNsPrefix() *syntax.NsPrefix {
	tok := p.peek()
	pipe := tok
	prefix := &syntax.NsPrefix{Kind: syntax.NsPrefixNone}
	offset := 0

	switch {
	case tok.isDelim("|"):
	case tok.isDelim("*") || tok.kind == tokIdent:
		pipe = p.peekAt(1)
		offset = 1
		if !pipe.isDelim("|") || pipe.spaceBefore {
			return nil
		}
	default:
		return nil
	}

	// Comments may sit between the pipe and the name; whitespace may not.
	after := p.peekAt(offset + 1)
	if after.whitespaceBefore || after.kind != tokIdent && !after.isDelim("*") {
		return nil
	}

	if offset == 1 {
		p.next()
		if tok.kind == tokIdent {
			prefix.Kind = syntax.NsPrefixIdent
			prefix.Name = identFromToken(tok)
		} else {
			prefix.Kind = syntax.NsPrefixUniversal
		}
	}
	p.next() // |
	prefix.Spanned = spanned(tok.span.Start, pipe.span.End)
	return prefix
}

func (p *parser) parseTypeOrUniversal() syntax.SimpleSelector {
	start := p.peek().span.Start
	prefix := p.parseNsPrefix()
	if p.atDelim("*") {
		p.next()
		return &syntax.UniversalSelector{Spanned: p.spanFrom(start), Prefix: prefix}
	}
	if prefix == nil {
		p.failUnexpected("selector")
	}
	return p.parseTypeSelector(prefix)
}

func (p *parser) parseTypeSelector(prefix *syntax.NsPrefix) syntax.SimpleSelector {
	start := p.peek().span.Start
	if prefix == nil {
		prefix = p.parseNsPrefix()
		if prefix != nil && p.atDelim("*") {
			p.next()
			return &syntax.UniversalSelector{Spanned: p.spanFrom(start), Prefix: prefix}
		}
	} else {
		start = prefix.Range.Start
	}
	name := p.parseInterpolableIdent()
	return &syntax.TypeSelector{Spanned: p.spanFrom(start), Prefix: prefix, Name: name}
}

func (p *parser) parseClassSelector() *syntax.ClassSelector {
	dot := p.next()
	if p.peek().spaceBefore {
		p.failUnexpected("class name")
	}
	name := p.parseInterpolableIdent()
	return &syntax.ClassSelector{Spanned: p.spanFrom(dot.span.Start), Name: name}
}

// parseIDSelector parses `#name`, merging a directly following
// interpolation as in `#item-#{$i}`.
func (p *parser) parseIDSelector() *syntax.IDSelector {
	hash := p.next()
	nameTok := token{kind: tokIdent, span: syntax.Span{Start: hash.span.Start + 1, End: hash.span.End}, raw: hash.raw[1:]}

	var name syntax.InterpolableIdent = identFromToken(nameTok)
	next := p.peek()
	if !next.spaceBefore && (next.kind == tokInterpStart || next.kind == tokLessInterp) {
		rest := p.parseInterpolableIdent()
		parts := []syntax.ComponentValue{&syntax.IdentFragment{Spanned: syntax.Spanned{Range: nameTok.span}, Raw: nameTok.raw}}
		switch rest := rest.(type) {
		case *syntax.Ident:
			parts = append(parts, &syntax.IdentFragment{Spanned: rest.Spanned, Raw: rest.Raw})
		case *syntax.InterpolatedIdent:
			parts = append(parts, rest.Parts...)
		}
		name = &syntax.InterpolatedIdent{Spanned: spanned(nameTok.span.Start, p.lastEnd()), Parts: parts}
	}

	return &syntax.IDSelector{Spanned: p.spanFrom(hash.span.Start), Name: name}
}

func (p *parser) parseAttributeSelector() *syntax.AttributeSelector {
	open := p.expect(tokLBracket)
	attr := &syntax.AttributeSelector{}

	attr.Prefix = p.parseNsPrefix()
	attr.Name = p.parseInterpolableIdent()

	if tok := p.peek(); tok.kind == tokDelim {
		switch tok.raw {
		case "=", "~=", "|=", "^=", "$=", "*=":
			p.next()
			attr.Matcher = tok.raw
			switch value := p.peek(); value.kind {
			case tokString:
				attr.Value = p.parseStr(p.next())
			case tokNumber, tokDimension, tokPercentage:
				p.next()
				attr.Value = identFromToken(value)
			default:
				attr.Value = p.parseInterpolableIdent()
			}
		}
	}

	if attr.Matcher != "" && p.at(tokIdent) {
		modifier := strings.ToLower(p.peek().raw)
		if modifier == "i" || modifier == "s" {
			attr.Modifier = identFromToken(p.next())
		}
	}

	closing := p.expect(tokRBracket)
	attr.Spanned = spanned(open.span.Start, closing.span.End)
	return attr
}

func (p *parser) parsePseudoSelector() syntax.SimpleSelector {
	colon := p.next()
	element := false
	if p.at(tokColon) && p.adjacent(0) {
		p.next()
		element = true
	}
	if p.peek().spaceBefore {
		p.failUnexpected("pseudo-class name")
	}

	name := p.parseInterpolableIdent()
	var arg syntax.PseudoArg
	if p.at(tokLParen) && p.adjacent(0) {
		arg = p.parsePseudoArg(strings.ToLower(identText(name)))
	}

	if element {
		return &syntax.PseudoElementSelector{Spanned: p.spanFrom(colon.span.Start), Name: name, Arg: arg}
	}
	return &syntax.PseudoClassSelector{Spanned: p.spanFrom(colon.span.Start), Name: name, Arg: arg}
}

func (p *parser) parsePseudoArg(name string) syntax.PseudoArg {
	p.enter()
	defer p.leave()

	p.expect(tokLParen)
	closeIdx := p.matchingParen(p.pos - 1)

	var arg syntax.PseudoArg
	switch {
	case selectorPseudos[name]:
		saved := p.pos
		list, ok := try(p, p.parseSelectorList)
		if ok && p.pos == closeIdx {
			arg = list
		} else {
			p.pos = saved
			arg = p.parseTokenList(closeIdx)
		}
	case nthPseudos[name]:
		arg = p.parseNthArg(closeIdx)
	default:
		arg = p.parseTokenList(closeIdx)
	}

	p.expect(tokRParen)
	return arg
}

// parseNthArg parses `An+B [of S]`. The An+B part is kept as written.
func (p *parser) parseNthArg(closeIdx int) syntax.PseudoArg {
	saved := p.pos
	start := p.peek().span.Start

	indexEnd := closeIdx
	for idx := p.pos; idx < closeIdx; idx++ {
		if isIdent(p.tokens[idx], "of") {
			indexEnd = idx
			break
		}
	}
	if indexEnd == p.pos {
		return p.parseTokenList(closeIdx)
	}

	nth := &syntax.NthArg{Index: p.source[start:p.tokens[indexEnd-1].span.End]}
	p.pos = indexEnd

	if indexEnd < closeIdx {
		p.next()
		list, ok := try(p, p.parseSelectorList)
		if !ok || p.pos != closeIdx {
			p.pos = saved
			return p.parseTokenList(closeIdx)
		}
		nth.Of = list
	}

	nth.Spanned = p.spanFrom(start)
	return nth
}

func (p *parser) parseNestingSelector() *syntax.NestingSelector {
	amp := p.next()
	nesting := &syntax.NestingSelector{}

	next := p.peek()
	if !next.spaceBefore && (next.kind == tokIdent || next.kind == tokInterpStart || next.kind == tokLessInterp ||
		next.isDelim("-") && (p.peekAt(1).kind == tokInterpStart || p.peekAt(1).kind == tokLessInterp)) {
		nesting.Suffix = p.parseInterpolableIdent()
	}

	nesting.Spanned = p.spanFrom(amp.span.Start)
	return nesting
}
