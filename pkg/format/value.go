package format

import (
	"strings"

	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/doc"
	"github.com/yaklabco/cssfmt/pkg/parser"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// cssFunctions are function names that CSS matches case-insensitively and
// that are printed in lowercase.
var cssFunctions = map[string]bool{
	"attr": true, "color": true, "color-mix": true, "conic-gradient": true,
	"counter": true, "counters": true, "cubic-bezier": true, "element": true,
	"env": true, "fit-content": true, "format": true, "hsl": true,
	"hsla": true, "hwb": true, "image": true, "image-set": true, "lab": true,
	"lch": true, "linear-gradient": true, "local": true, "minmax": true,
	"oklab": true, "oklch": true, "radial-gradient": true, "repeat": true,
	"repeating-conic-gradient": true, "repeating-linear-gradient": true,
	"repeating-radial-gradient": true, "rgb": true, "rgba": true,
	"steps": true, "url": true, "var": true,
}

// formatValue dispatches on the component value kind.
//
//nolint:cyclop,funlen,gocyclo // One case per value kind.
func (c *ctx) formatValue(value syntax.ComponentValue, st state) doc.Doc {
	switch value := value.(type) {
	case *syntax.Ident:
		return doc.Text(value.Raw)
	case *syntax.InterpolatedIdent:
		parts := make([]doc.Doc, 0, len(value.Parts))
		for _, part := range value.Parts {
			parts = append(parts, c.formatValue(part, st))
		}
		return doc.List(parts)
	case *syntax.IdentFragment:
		return doc.Text(value.Raw)
	case *syntax.Interpolation:
		return c.formatInterpolation(value, st)
	case *syntax.Number:
		return doc.Text(c.formatNumber(value.Raw))
	case *syntax.Dimension:
		return doc.Text(c.formatNumber(value.Value.Raw) + strings.ToLower(value.Unit.Raw))
	case *syntax.Percentage:
		return doc.Text(c.formatNumber(value.Value.Raw) + "%")
	case *syntax.HexColor:
		return doc.Text("#" + formatHexColor(value.Raw, c.options.HexCase, c.options.HexColorLength))
	case *syntax.Str:
		return doc.Text(c.formatStr(value.Raw, st))
	case *syntax.InterpolatedStr:
		return c.formatInterpolatedStr(value, st)
	case *syntax.URL:
		return c.formatURL(value, st)
	case *syntax.Function:
		return c.formatFunction(value, st)
	case *syntax.Delimiter:
		return doc.Text(delimiterText(value.Kind))
	case *syntax.BinaryOperation:
		return doc.Group(c.formatBinaryChain(value, st))
	case *syntax.UnaryOperation:
		return c.formatUnaryOperation(value, st)
	case *syntax.Parenthesized:
		return c.formatParenthesized(value, st)
	case *syntax.BracketBlock:
		return doc.Concat(doc.Text("["), c.formatValueSequence(value.Values, st, doc.Space, doc.Space), doc.Text("]"))
	case *syntax.ValueList:
		return c.formatValueSequence(value.Values, st, doc.Space, doc.LineOrSpace)
	case *syntax.SassVariable:
		return doc.Text("$" + value.Name)
	case *syntax.SassQualifiedName:
		return doc.Concat(doc.Text(value.Module.Raw+"."), c.formatValue(value.Member, st))
	case *syntax.SassMap:
		return c.formatSassMap(value, st)
	case *syntax.SassArbitraryArgument:
		return doc.Concat(c.formatValue(value.Value, st), doc.Text("..."))
	case *syntax.SassKeywordArgument:
		return doc.Concat(
			doc.Text("$"+value.Name.Name+":"),
			c.gapComments(value.Name.Range.End, value.Value.Span().Start, doc.Space),
			c.formatValue(value.Value, st),
		)
	case *syntax.LessVariable:
		return doc.Text("@" + value.Name)
	case *syntax.LessVariableVariable:
		return doc.Text("@@" + value.Name)
	case *syntax.LessPropertyVariable:
		return doc.Text("$" + value.Name)
	case *syntax.LessEscapedStr:
		return doc.Text(c.text(value.Range))
	case *syntax.LessNamedArg:
		return doc.Concat(
			doc.Text("@"+value.Name.Name+":"),
			c.gapComments(value.Name.Range.End, value.Value.Range.Start, doc.Space),
			c.formatValue(value.Value, st),
		)
	case *syntax.UnicodeRange:
		return doc.Text(value.Raw)
	case *syntax.RawToken:
		return doc.Text(value.Raw)
	default:
		return unexpected("value", value)
	}
}

func delimiterText(kind syntax.DelimiterKind) string {
	switch kind {
	case syntax.DelimiterComma:
		return ","
	case syntax.DelimiterSolidus:
		return "/"
	default:
		return ";"
	}
}

func isDelimiter(value syntax.ComponentValue, kind syntax.DelimiterKind) bool {
	delim, ok := value.(*syntax.Delimiter)
	return ok && delim.Kind == kind
}

func isSeparator(value syntax.ComponentValue) bool {
	return isDelimiter(value, syntax.DelimiterComma) || isDelimiter(value, syntax.DelimiterSemicolon)
}

// formatValueSequence lays out a flat run of component values. space goes
// between space-separated values and comma after every comma or semicolon.
// Values written without whitespace between them stay adjacent.
func (c *ctx) formatValueSequence(values []syntax.ComponentValue, st state, space, comma doc.Doc) doc.Doc {
	parts := make([]doc.Doc, 0, len(values)*2)
	for idx, value := range values {
		if idx > 0 {
			parts = append(parts, c.valueGap(values, idx, space, comma))
		}
		parts = append(parts, c.formatValue(value, st))
	}
	return doc.List(parts)
}

func (c *ctx) valueGap(values []syntax.ComponentValue, idx int, space, comma doc.Doc) doc.Doc {
	prev, cur := values[idx-1], values[idx]
	prevEnd, curStart := prev.Span().End, cur.Span().Start

	var sep doc.Doc
	switch {
	case isSeparator(cur):
		sep = doc.Nil
	case isSeparator(prev):
		sep = comma
	case isDelimiter(cur, syntax.DelimiterSolidus):
		sep = c.solidusSpace(values, idx)
	case isDelimiter(prev, syntax.DelimiterSolidus):
		sep = c.solidusSpace(values, idx-1)
	case prevEnd == curStart:
		return doc.Nil
	default:
		sep = space
	}
	return c.gapComments(prevEnd, curStart, sep)
}

// solidusSpace returns a space when either side of the slash at idx was
// spaced in the source, so `a/b` stays tight and `a / b` stays spaced.
func (c *ctx) solidusSpace(values []syntax.ComponentValue, idx int) doc.Doc {
	slash := values[idx].Span()
	if idx > 0 && values[idx-1].Span().End < slash.Start {
		return doc.Space
	}
	if idx+1 < len(values) && slash.End < values[idx+1].Span().Start {
		return doc.Space
	}
	return doc.Nil
}

// formatNumber normalizes a numeric literal without changing its value.
func (c *ctx) formatNumber(raw string) string {
	var sign string
	if raw != "" && (raw[0] == '+' || raw[0] == '-') {
		sign, raw = raw[:1], raw[1:]
	}

	mantissa, exponent, hasExponent := raw, "", false
	if idx := strings.IndexAny(raw, "eE"); idx >= 0 {
		mantissa, exponent, hasExponent = raw[:idx], raw[idx+1:], true
	}

	intPart, frac, _ := strings.Cut(mantissa, ".")
	frac = strings.TrimRight(frac, "0")
	if intPart == "" {
		intPart = "0"
	}
	switch {
	case frac == "":
		mantissa = intPart
	case intPart == "0" && c.options.OmitNumberLeadingZero:
		mantissa = "." + frac
	default:
		mantissa = intPart + "." + frac
	}

	if hasExponent {
		var expSign string
		if exponent != "" && (exponent[0] == '+' || exponent[0] == '-') {
			if exponent[0] == '-' {
				expSign = "-"
			}
			exponent = exponent[1:]
		}
		exponent = strings.TrimLeft(exponent, "0")
		if exponent == "" {
			exponent = "0"
		}
		mantissa += "e" + expSign + exponent
	}

	return sign + mantissa
}

// formatHexColor applies the length and case policies to the digits of a
// hex color. Content that is not all hex digits is returned unchanged.
func formatHexColor(raw string, hexCase config.HexCase, length config.HexColorLength) string {
	if !isHexDigits(raw) {
		return raw
	}

	switch length {
	case config.HexColorLengthShort:
		if len(raw) == 6 || len(raw) == 8 {
			short := make([]byte, 0, len(raw)/2)
			for idx := 0; idx < len(raw); idx += 2 {
				if !strings.EqualFold(raw[idx:idx+1], raw[idx+1:idx+2]) {
					short = nil
					break
				}
				short = append(short, raw[idx])
			}
			if short != nil {
				raw = string(short)
			}
		}
	case config.HexColorLengthLong:
		if len(raw) == 3 || len(raw) == 4 {
			long := make([]byte, 0, len(raw)*2)
			for idx := range len(raw) {
				long = append(long, raw[idx], raw[idx])
			}
			raw = string(long)
		}
	case config.HexColorLengthKeep:
	}

	switch hexCase {
	case config.HexCaseLower:
		return strings.ToLower(raw)
	case config.HexCaseUpper:
		return strings.ToUpper(raw)
	default:
		return raw
	}
}

func isHexDigits(s string) bool {
	if s == "" {
		return false
	}
	for idx := range len(s) {
		ch := s[idx]
		if !('0' <= ch && ch <= '9' || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F') {
			return false
		}
	}
	return true
}

// chooseQuote picks the quote character for a string whose content
// contains the given quote characters.
func chooseQuote(policy config.Quotes, original byte, hasDouble, hasSingle bool) byte {
	switch policy {
	case config.QuotesAlwaysSingle:
		return '\''
	case config.QuotesPreferDouble:
		if hasDouble {
			return original
		}
		return '"'
	case config.QuotesPreferSingle:
		if hasSingle {
			return original
		}
		return '\''
	default:
		return '"'
	}
}

// requote rewrites string content written between from quotes so that it
// can be placed between to quotes.
func requote(content string, from, to byte) string {
	if from == to {
		return content
	}

	var sb strings.Builder
	sb.Grow(len(content))
	for idx := 0; idx < len(content); idx++ {
		ch := content[idx]
		switch {
		case ch == '\\' && idx+1 < len(content):
			idx++
			if content[idx] != from {
				sb.WriteByte('\\')
			}
			sb.WriteByte(content[idx])
		case ch == to:
			sb.WriteByte('\\')
			sb.WriteByte(to)
		default:
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}

// formatStr applies the quote policy to a quoted string literal.
func (c *ctx) formatStr(raw string, st state) string {
	if st.has(stateKeepQuotes) || len(raw) < 2 {
		return raw
	}
	from := raw[0]
	content := raw[1 : len(raw)-1]
	if raw[len(raw)-1] != from {
		// Unterminated at end of input.
		content = raw[1:]
	}
	to := chooseQuote(c.options.Quotes, from,
		strings.ContainsRune(content, '"'), strings.ContainsRune(content, '\''))
	return string(to) + requote(content, from, to) + string(to)
}

// formatInterpolatedStr decides the quote once over every static fragment
// and re-quotes each fragment on its own.
func (c *ctx) formatInterpolatedStr(str *syntax.InterpolatedStr, st state) doc.Doc {
	to := str.Quote
	if !st.has(stateKeepQuotes) {
		var hasDouble, hasSingle bool
		for _, part := range str.Parts {
			if fragment, ok := part.(*syntax.IdentFragment); ok {
				hasDouble = hasDouble || strings.ContainsRune(fragment.Raw, '"')
				hasSingle = hasSingle || strings.ContainsRune(fragment.Raw, '\'')
			}
		}
		to = chooseQuote(c.options.Quotes, str.Quote, hasDouble, hasSingle)
	}

	parts := make([]doc.Doc, 0, len(str.Parts)+2)
	parts = append(parts, doc.Text(string(to)))
	for _, part := range str.Parts {
		if fragment, ok := part.(*syntax.IdentFragment); ok {
			parts = append(parts, doc.Text(requote(fragment.Raw, str.Quote, to)))
			continue
		}
		parts = append(parts, c.formatValue(part, st))
	}
	parts = append(parts, doc.Text(string(to)))
	return doc.List(parts)
}

func (c *ctx) formatInterpolation(interp *syntax.Interpolation, st state) doc.Doc {
	if interp.Less {
		return doc.Text("@{" + interp.Name + "}")
	}
	return doc.Concat(
		doc.Text("#{"),
		c.formatValueSequence(interp.Value, st, doc.Space, doc.Space),
		doc.Text("}"),
	)
}

func (c *ctx) formatURL(url *syntax.URL, st state) doc.Doc {
	name := strings.ToLower(url.Name.Raw)
	if url.Value == nil {
		return doc.Text(name + "(" + url.Raw + ")")
	}
	return doc.Concat(doc.Text(name+"("), c.formatValue(url.Value, st), doc.Text(")"))
}

func (c *ctx) formatFunctionName(name syntax.InterpolableIdent, st state) doc.Doc {
	ident, ok := name.(*syntax.Ident)
	if !ok {
		return c.formatValue(name, st)
	}
	lower := strings.ToLower(ident.Raw)
	if cssFunctions[lower] || parser.IsMathFunction(lower) {
		return doc.Text(lower)
	}
	return doc.Text(ident.Raw)
}

func (c *ctx) formatFunction(fn *syntax.Function, st state) doc.Doc {
	name := c.formatFunctionName(fn.Name, st)
	openEnd := fn.Name.Span().End + 1
	closeStart := fn.Range.End - 1

	if len(fn.Args) == 0 {
		inner, lastLine := c.startSpacedCommentsWithoutLast(c.comments.between(openEnd, closeStart))
		if lastLine {
			inner = doc.Concat(inner, doc.HardLine)
		}
		return doc.Concat(name, doc.Text("("), inner, doc.Text(")"))
	}

	if _, raw := fn.Args[0].(*syntax.RawToken); raw {
		tokens := make([]*syntax.RawToken, 0, len(fn.Args))
		for _, arg := range fn.Args {
			if token, ok := arg.(*syntax.RawToken); ok {
				tokens = append(tokens, token)
			}
		}
		return doc.Concat(name, doc.Text("("), c.formatTokens(tokens, doc.Space), doc.Text(")"))
	}

	first, last := fn.Args[0].Span(), fn.Args[len(fn.Args)-1].Span()
	prefer := c.options.PreferSingleLineFor(c.options.FunctionArgsPreferSingleLine)
	body := c.formatValueSequence(fn.Args, st, doc.SoftLine, doc.LineOrSpace)
	return doc.Concat(name, c.formatParens("(", ")", body,
		c.smartLineBreak(openEnd, first.Start, prefer, doc.LineOrNil),
		parenBounds{openEnd: openEnd, first: first.Start, last: last.End, closeStart: closeStart}))
}

// parenBounds are the source offsets formatParens threads comments
// through.
type parenBounds struct {
	openEnd    int
	first      int
	last       int
	closeStart int
}

// formatParens wraps body in open and closing delimiters. The group breaks
// after open and before closing when it does not fit, and always breaks
// before closing when the last comment inside is a line comment.
func (c *ctx) formatParens(open, closing string, body, line doc.Doc, bounds parenBounds) doc.Doc {
	leading := c.startSpacedComments(c.comments.between(bounds.openEnd, bounds.first))
	trailing, lastLine := c.endSpacedComments(c.comments.between(bounds.last, bounds.closeStart))
	closeLine := doc.LineOrNil
	if lastLine {
		closeLine = doc.HardLine
	}
	return doc.Group(doc.Concat(
		doc.Text(open),
		c.indent(doc.Concat(line, leading, body, trailing)),
		closeLine,
		doc.Text(closing),
	))
}

func (c *ctx) formatParenthesized(paren *syntax.Parenthesized, st state) doc.Doc {
	openEnd, closeStart := paren.Range.Start+1, paren.Range.End-1
	if paren.Value == nil {
		return doc.Concat(doc.Text("("), c.unspacedComments(c.comments.between(openEnd, closeStart)), doc.Text(")"))
	}

	inner := paren.Value.Span()
	line := c.smartLineBreak(openEnd, inner.Start, c.options.PreferSingleLine, doc.LineOrNil)
	return c.formatParens("(", ")", c.formatValue(paren.Value, st), line,
		parenBounds{openEnd: openEnd, first: inner.Start, last: inner.End, closeStart: closeStart})
}

func (c *ctx) formatSassMap(sassMap *syntax.SassMap, st state) doc.Doc {
	openEnd, closeStart := sassMap.Range.Start+1, sassMap.Range.End-1
	if len(sassMap.Items) == 0 {
		return doc.Text("()")
	}

	items := make([]listItem, 0, len(sassMap.Items))
	for _, item := range sassMap.Items {
		key, value := item.Key.Span(), item.Value.Span()
		items = append(items, listItem{
			span: item.Range,
			doc: doc.Concat(
				c.formatValue(item.Key, st),
				c.unspacedComments(c.comments.between(key.End, item.Colon.Start)),
				doc.Text(":"),
				c.gapComments(item.Colon.End, value.Start, doc.Space),
				c.formatValue(item.Value, st),
			),
		})
	}

	first, last := sassMap.Items[0].Range, sassMap.Items[len(sassMap.Items)-1].Range
	if n := len(sassMap.Commas); n == len(sassMap.Items) {
		last.End = sassMap.Commas[n-1].End
	}
	prefer := c.options.PreferSingleLineFor(c.options.SassMapPreferSingleLine)
	return c.formatParens("(", ")",
		c.formatSeparatedList(items, sassMap.Commas, ",", doc.LineOrSpace, true),
		c.smartLineBreak(openEnd, first.Start, prefer, doc.LineOrNil),
		parenBounds{openEnd: openEnd, first: first.Start, last: last.End, closeStart: closeStart})
}

func (c *ctx) formatUnaryOperation(op *syntax.UnaryOperation, st state) doc.Doc {
	operand := c.formatValue(op.Value, st)
	if _, binary := op.Value.(*syntax.BinaryOperation); binary {
		operand = doc.Concat(doc.Text("("), operand, doc.Text(")"))
	}
	if op.Op.Kind == syntax.OperatorNot {
		return doc.Concat(doc.Text("not "), operand)
	}
	return doc.Concat(doc.Text(c.operatorText(op.Op)), operand)
}

// formatTokens prints raw tokens, putting gap only where the source had
// whitespace between two tokens.
func (c *ctx) formatTokens(tokens []*syntax.RawToken, gap doc.Doc) doc.Doc {
	parts := make([]doc.Doc, 0, len(tokens)*2)
	for idx, token := range tokens {
		if idx > 0 {
			prevEnd := tokens[idx-1].Range.End
			if prevEnd < token.Range.Start {
				parts = append(parts, c.gapComments(prevEnd, token.Range.Start, gap))
			}
		}
		parts = append(parts, doc.Text(token.Raw))
	}
	return doc.List(parts)
}
