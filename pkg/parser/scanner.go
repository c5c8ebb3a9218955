package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/cssfmt/pkg/source"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// scanner performs a single pass over the source, producing tokens and
// collecting comments separately.
type scanner struct {
	source   string
	syntax   syntax.Syntax
	pos      int
	tokens   []token
	comments []syntax.Comment
	// space is set when whitespace or a comment precedes the next token,
	// whitespace only for whitespace.
	space      bool
	whitespace bool
}

// scan tokenizes source. The token slice always ends with a tokEOF token.
func scan(source string, syn syntax.Syntax) ([]token, []syntax.Comment, error) {
	const initialCapacityDivisor = 3
	s := &scanner{
		source: source,
		syntax: syn,
		tokens: make([]token, 0, len(source)/initialCapacityDivisor+1),
	}

	if err := s.run(); err != nil {
		return nil, nil, err
	}
	return s.tokens, s.comments, nil
}

func (s *scanner) run() error {
	for {
		s.skipWhitespace()
		if s.pos >= len(s.source) {
			s.emit(tokEOF, s.pos, s.pos)
			return nil
		}

		handled, err := s.scanComment()
		if err != nil {
			return err
		}
		if handled {
			continue
		}

		if err := s.scanToken(); err != nil {
			return err
		}
	}
}

func (s *scanner) emit(kind tokenKind, start, end int) {
	s.tokens = append(s.tokens, token{
		kind:             kind,
		span:             syntax.Span{Start: start, End: end},
		raw:              s.source[start:end],
		spaceBefore:      s.space,
		whitespaceBefore: s.whitespace,
	})
	s.space = false
	s.whitespace = false
}

func (s *scanner) errorf(pos int, format string, args ...any) error {
	return newError(source.New(s.source), pos, format, args...)
}

func (s *scanner) peekByte(offset int) byte {
	if s.pos+offset < len(s.source) {
		return s.source[s.pos+offset]
	}
	return 0
}

func (s *scanner) skipWhitespace() {
	start := s.pos
	for s.pos < len(s.source) && isWhitespace(s.source[s.pos]) {
		s.pos++
	}
	if s.pos > start {
		s.space = true
		s.whitespace = true
	}
}

// scanComment consumes a comment at the current position, if any.
func (s *scanner) scanComment() (bool, error) {
	if s.peekByte(0) != '/' {
		return false, nil
	}

	switch s.peekByte(1) {
	case '*':
		start := s.pos
		end := strings.Index(s.source[s.pos+2:], "*/")
		if end < 0 {
			return false, s.errorf(start, "unterminated comment")
		}
		s.pos += 2 + end + 2
		s.addComment(syntax.BlockComment, start)
		return true, nil
	case '/':
		if !s.syntax.AllowsLineComments() {
			return false, nil
		}
		start := s.pos
		for s.pos < len(s.source) && s.source[s.pos] != '\n' {
			s.pos++
		}
		end := s.pos
		if end > start && s.source[end-1] == '\r' {
			end--
		}
		s.comments = append(s.comments, syntax.Comment{
			Kind:    syntax.LineComment,
			Span:    syntax.Span{Start: start, End: end},
			Content: s.source[start:end],
		})
		s.space = true
		return true, nil
	default:
		return false, nil
	}
}

func (s *scanner) addComment(kind syntax.CommentKind, start int) {
	s.comments = append(s.comments, syntax.Comment{
		Kind:    kind,
		Span:    syntax.Span{Start: start, End: s.pos},
		Content: s.source[start:s.pos],
	})
	s.space = true
}

//nolint:gocyclo,cyclop,funlen // Tokenizer dispatch is inherently branchy.
func (s *scanner) scanToken() error {
	start := s.pos
	char := s.source[s.pos]

	switch {
	case char == '"' || char == '\'':
		return s.scanString()
	case isDigit(char) || char == '.' && isDigit(s.peekByte(1)):
		s.scanNumeric()
		return nil
	case (char == '+' || char == '-') && s.startsNumber() && s.signAllowed():
		s.scanNumeric()
		return nil
	case (char == 'u' || char == 'U') && s.startsUnicodeRange():
		s.scanUnicodeRange()
		return nil
	case s.startsIdent(s.pos):
		return s.scanIdentLike()
	}

	switch char {
	case '(':
		s.pos++
		s.emit(tokLParen, start, s.pos)
	case ')':
		s.pos++
		s.emit(tokRParen, start, s.pos)
	case '[':
		s.pos++
		s.emit(tokLBracket, start, s.pos)
	case ']':
		s.pos++
		s.emit(tokRBracket, start, s.pos)
	case '{':
		s.pos++
		s.emit(tokLBrace, start, s.pos)
	case '}':
		s.pos++
		s.emit(tokRBrace, start, s.pos)
	case ':':
		s.pos++
		s.emit(tokColon, start, s.pos)
	case ';':
		s.pos++
		s.emit(tokSemicolon, start, s.pos)
	case ',':
		s.pos++
		s.emit(tokComma, start, s.pos)
	case '#':
		switch {
		case s.peekByte(1) == '{' && s.syntax.IsSassLike():
			s.pos += 2
			s.emit(tokInterpStart, start, s.pos)
		case isNameChar(s.peekByte(1)) || s.peekByte(1) == '\\':
			s.pos++
			s.consumeName()
			s.emit(tokHash, start, s.pos)
		default:
			s.pos++
			s.emit(tokDelim, start, s.pos)
		}
	case '@':
		return s.scanAt()
	case '$':
		if s.startsIdent(s.pos + 1) {
			s.pos++
			s.consumeName()
			s.emit(tokVariable, start, s.pos)
			return nil
		}
		s.scanDelim()
	case '!':
		if s.peekByte(1) == '=' {
			s.scanDelim()
			return nil
		}
		s.pos++
		for s.pos < len(s.source) && isWhitespace(s.source[s.pos]) {
			s.pos++
		}
		if s.startsIdent(s.pos) {
			s.consumeName()
			s.emit(tokBang, start, s.pos)
			return nil
		}
		s.pos = start + 1
		s.emit(tokDelim, start, s.pos)
	default:
		s.scanDelim()
	}
	return nil
}

//nolint:gochecknoglobals // Read-only lookup table.
var multiDelims = []string{"...", ">=", "<=", "==", "!=", "~=", "|=", "^=", "$=", "*=", "||"}

func (s *scanner) scanDelim() {
	start := s.pos
	rest := s.source[s.pos:]
	for _, delim := range multiDelims {
		if strings.HasPrefix(rest, delim) {
			s.pos += len(delim)
			s.emit(tokDelim, start, s.pos)
			return
		}
	}

	// Multi-byte characters form one delimiter.
	_, size := utf8.DecodeRuneInString(rest)
	s.pos += size
	s.emit(tokDelim, start, s.pos)
}

func (s *scanner) scanAt() error {
	start := s.pos
	switch {
	case s.peekByte(1) == '{' && s.syntax == syntax.Less:
		end := strings.IndexByte(s.source[s.pos:], '}')
		if end < 0 {
			return s.errorf(start, "unterminated interpolation")
		}
		s.pos += end + 1
		s.emit(tokLessInterp, start, s.pos)
	case s.peekByte(1) == '@' && s.syntax == syntax.Less && s.startsIdent(s.pos+2):
		s.pos += 2
		s.consumeName()
		s.emit(tokAtKeyword, start, s.pos)
	case s.startsIdent(s.pos + 1):
		s.pos++
		s.consumeName()
		s.emit(tokAtKeyword, start, s.pos)
	default:
		s.pos++
		s.emit(tokDelim, start, s.pos)
	}
	return nil
}

func (s *scanner) scanString() error {
	start := s.pos
	quote := s.source[s.pos]
	s.pos++

	for s.pos < len(s.source) {
		char := s.source[s.pos]
		switch {
		case char == quote:
			s.pos++
			s.emit(tokString, start, s.pos)
			return nil
		case char == '\\':
			s.pos += 2
		case char == '\n':
			return s.errorf(start, "unterminated string")
		case char == '#' && s.peekByte(1) == '{' && s.syntax.IsSassLike():
			if err := s.skipInterpolation(); err != nil {
				return err
			}
		default:
			s.pos++
		}
	}

	return s.errorf(start, "unterminated string")
}

// skipInterpolation consumes `#{...}` including nested strings and braces.
func (s *scanner) skipInterpolation() error {
	start := s.pos
	s.pos += 2
	depth := 1

	for s.pos < len(s.source) {
		switch s.source[s.pos] {
		case '{':
			depth++
			s.pos++
		case '}':
			depth--
			s.pos++
			if depth == 0 {
				return nil
			}
		case '"', '\'':
			quote := s.source[s.pos]
			s.pos++
			for s.pos < len(s.source) && s.source[s.pos] != quote {
				if s.source[s.pos] == '\\' {
					s.pos++
				}
				s.pos++
			}
			s.pos++
		default:
			s.pos++
		}
	}

	return s.errorf(start, "unterminated interpolation")
}

func (s *scanner) startsNumber() bool {
	next := s.peekByte(1)
	return isDigit(next) || next == '.' && isDigit(s.peekByte(2))
}

// signAllowed reports whether a leading sign belongs to the number that
// follows it.
func (s *scanner) signAllowed() bool {
	if s.space || len(s.tokens) == 0 {
		return true
	}
	return !s.tokens[len(s.tokens)-1].isValueEnd()
}

func (s *scanner) scanNumeric() {
	start := s.pos
	if s.source[s.pos] == '+' || s.source[s.pos] == '-' {
		s.pos++
	}
	s.consumeDigits()
	if s.peekByte(0) == '.' && isDigit(s.peekByte(1)) {
		s.pos++
		s.consumeDigits()
	}
	if char := s.peekByte(0); char == 'e' || char == 'E' {
		next := s.peekByte(1)
		if isDigit(next) || (next == '+' || next == '-') && isDigit(s.peekByte(2)) {
			s.pos += 2
			s.consumeDigits()
		}
	}

	switch {
	case s.peekByte(0) == '%':
		s.pos++
		s.emit(tokPercentage, start, s.pos)
	case s.startsIdent(s.pos):
		unitStart := s.pos
		s.consumeName()
		s.emit(tokDimension, start, s.pos)
		s.tokens[len(s.tokens)-1].unitStart = unitStart
	default:
		s.emit(tokNumber, start, s.pos)
	}
}

func (s *scanner) consumeDigits() {
	for s.pos < len(s.source) && isDigit(s.source[s.pos]) {
		s.pos++
	}
}

func (s *scanner) startsUnicodeRange() bool {
	if s.peekByte(1) != '+' {
		return false
	}
	next := s.peekByte(2)
	return isHexDigit(next) || next == '?'
}

func (s *scanner) scanUnicodeRange() {
	start := s.pos
	s.pos += 2
	for s.pos < len(s.source) && (isHexDigit(s.source[s.pos]) || s.source[s.pos] == '?') {
		s.pos++
	}
	if s.peekByte(0) == '-' && isHexDigit(s.peekByte(1)) {
		s.pos++
		for s.pos < len(s.source) && isHexDigit(s.source[s.pos]) {
			s.pos++
		}
	}
	s.emit(tokUnicodeRange, start, s.pos)
}

// scanIdentLike scans an identifier, or an unquoted url(...).
func (s *scanner) scanIdentLike() error {
	start := s.pos
	s.consumeName()

	if strings.EqualFold(s.source[start:s.pos], "url") && s.peekByte(0) == '(' {
		probe := s.pos + 1
		for probe < len(s.source) && isWhitespace(s.source[probe]) {
			probe++
		}
		if probe < len(s.source) && s.source[probe] != '"' && s.source[probe] != '\'' {
			return s.scanURL(start)
		}
	}

	s.emit(tokIdent, start, s.pos)
	return nil
}

func (s *scanner) scanURL(start int) error {
	s.pos++ // (
	for s.pos < len(s.source) {
		switch s.source[s.pos] {
		case ')':
			s.pos++
			s.emit(tokURL, start, s.pos)
			return nil
		case '\\':
			s.pos += 2
		case '#':
			if s.peekByte(1) == '{' && s.syntax.IsSassLike() {
				if err := s.skipInterpolation(); err != nil {
					return err
				}
				continue
			}
			s.pos++
		default:
			s.pos++
		}
	}
	return s.errorf(start, "unterminated url")
}

// startsIdent reports whether an identifier starts at offset.
func (s *scanner) startsIdent(offset int) bool {
	if offset >= len(s.source) {
		return false
	}
	char := s.source[offset]
	switch {
	case isNameStart(char):
		return true
	case char == '\\':
		return offset+1 < len(s.source) && s.source[offset+1] != '\n'
	case char == '-':
		if offset+1 >= len(s.source) {
			return false
		}
		next := s.source[offset+1]
		return isNameStart(next) || next == '-' || next == '\\'
	default:
		return false
	}
}

func (s *scanner) consumeName() {
	for s.pos < len(s.source) {
		char := s.source[s.pos]
		switch {
		case isNameChar(char):
			s.pos++
		case char == '\\' && s.pos+1 < len(s.source) && s.source[s.pos+1] != '\n':
			s.pos += 2
		default:
			return
		}
	}
}

func isWhitespace(char byte) bool {
	return char == ' ' || char == '\t' || char == '\n' || char == '\r' || char == '\f'
}

func isDigit(char byte) bool {
	return char >= '0' && char <= '9'
}

func isHexDigit(char byte) bool {
	return isDigit(char) || char >= 'a' && char <= 'f' || char >= 'A' && char <= 'F'
}

func isNameStart(char byte) bool {
	return char >= 'a' && char <= 'z' || char >= 'A' && char <= 'Z' || char == '_' || char >= 0x80
}

func isNameChar(char byte) bool {
	return isNameStart(char) || isDigit(char) || char == '-'
}
