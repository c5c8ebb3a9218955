package parser

import "github.com/yaklabco/cssfmt/pkg/syntax"

// tokenKind identifies a lexical token.
type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	// tokAtKeyword is `@name`, or `@@name` in Less.
	tokAtKeyword
	// tokHash is `#name`.
	tokHash
	// tokVariable is `$name`.
	tokVariable
	tokString
	tokNumber
	tokPercentage
	tokDimension
	// tokURL is an unquoted `url(...)`.
	tokURL
	tokUnicodeRange
	// tokInterpStart is `#{`.
	tokInterpStart
	// tokLessInterp is a complete `@{name}`.
	tokLessInterp
	// tokBang is `!` followed by a name, such as `!important`.
	tokBang
	tokDelim
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokLBrace
	tokRBrace
	tokColon
	tokSemicolon
	tokComma
)

// String returns a description used in error messages.
func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokAtKeyword:
		return "at-keyword"
	case tokHash:
		return "hash"
	case tokVariable:
		return "variable"
	case tokString:
		return "string"
	case tokNumber, tokPercentage, tokDimension:
		return "number"
	case tokURL:
		return "url"
	case tokUnicodeRange:
		return "unicode range"
	case tokInterpStart:
		return "'#{'"
	case tokLessInterp:
		return "interpolation"
	case tokBang:
		return "'!'"
	case tokDelim:
		return "delimiter"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokColon:
		return "':'"
	case tokSemicolon:
		return "';'"
	case tokComma:
		return "','"
	default:
		return "token"
	}
}

// token is one lexical token. Raw is the source text of the token, except
// for synthetic tokens inserted by the indented syntax pass.
type token struct {
	kind tokenKind
	span syntax.Span
	raw  string
	// unitStart is the offset where the unit of a dimension begins.
	unitStart int
	// spaceBefore reports whitespace or a comment immediately before the
	// token.
	spaceBefore bool
	// whitespaceBefore is spaceBefore without comments.
	whitespaceBefore bool
	// synthetic marks braces and semicolons implied by indentation.
	synthetic bool
}

func (t token) isDelim(raw string) bool {
	return t.kind == tokDelim && t.raw == raw
}

// isValueEnd reports whether a sign directly after t belongs to an operator
// rather than a number, as in `10-2` or `$a+1`.
func (t token) isValueEnd() bool {
	switch t.kind {
	case tokIdent, tokNumber, tokPercentage, tokDimension, tokVariable, tokString,
		tokRParen, tokRBracket, tokURL, tokHash, tokAtKeyword, tokLessInterp:
		return true
	case tokRBrace:
		return !t.synthetic
	default:
		return false
	}
}
