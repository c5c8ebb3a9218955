package parser

import (
	"github.com/yaklabco/cssfmt/pkg/source"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// indentTokens converts the line structure of the indented syntax into the
// brace and semicolon tokens of SCSS. A line more indented than the previous
// statement opens a block; a line at the same or a lower level ends the
// previous statement and closes every deeper block. Lines ending with a comma
// and lines inside open parentheses continue the previous line.
func indentTokens(src string, tokens []token) ([]token, error) {
	lines := source.New(src)
	out := make([]token, 0, len(tokens)+len(tokens)/2)

	var (
		levels  []int
		depth   int
		prev    token
		hasPrev bool
	)

	synth := func(kind tokenKind, at int) token {
		return token{kind: kind, span: syntax.Span{Start: at, End: at}, synthetic: true}
	}

	for _, tok := range tokens {
		if tok.kind == tokEOF {
			break
		}

		newLine := !hasPrev || lines.LineDistance(prev.span.End, tok.span.Start) > 0
		if newLine {
			indent := leadingSpace(src, tok.span.Start)
			switch {
			case !hasPrev:
				levels = append(levels, indent)
			case depth > 0 || prev.kind == tokComma:
				// Continuation line.
			case indent > levels[len(levels)-1]:
				out = append(out, synth(tokLBrace, prev.span.End))
				levels = append(levels, indent)
			default:
				out = append(out, synth(tokSemicolon, prev.span.End))
				for len(levels) > 1 && indent < levels[len(levels)-1] {
					levels = levels[:len(levels)-1]
					out = append(out, synth(tokRBrace, prev.span.End))
				}
				if indent != levels[len(levels)-1] {
					return nil, newError(lines, tok.span.Start, "inconsistent indentation")
				}
			}
		}

		switch tok.kind {
		case tokLParen, tokLBracket, tokInterpStart:
			depth++
		case tokRParen, tokRBracket, tokRBrace:
			if depth > 0 {
				depth--
			}
		}

		out = append(out, tok)
		prev = tok
		hasPrev = true
	}

	eof := tokens[len(tokens)-1]
	if hasPrev {
		out = append(out, synth(tokSemicolon, prev.span.End))
		for len(levels) > 1 {
			levels = levels[:len(levels)-1]
			out = append(out, synth(tokRBrace, prev.span.End))
		}
	}
	out = append(out, eof)

	return out, nil
}

// leadingSpace returns the number of whitespace bytes at the start of the
// line containing offset. Tabs and spaces both count as one.
func leadingSpace(src string, offset int) int {
	start := offset
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	end := start
	for end < offset && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return end - start
}
