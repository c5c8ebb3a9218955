package syntax

// ComponentValue is a value inside a declaration, function argument list or
// at-rule prelude.
type ComponentValue interface {
	Node
	componentValueNode()
}

// InterpolableIdent is an identifier that may contain interpolation.
type InterpolableIdent interface {
	ComponentValue
	interpolableIdentNode()
}

// InterpolableStr is a quoted string that may contain interpolation.
type InterpolableStr interface {
	ComponentValue
	interpolableStrNode()
}

// Ident is a plain identifier. Raw is the source text.
type Ident struct {
	Spanned
	Raw string
}

// InterpolatedIdent is an identifier built from literal fragments and
// interpolations, such as `icon-#{$name}` or `@{prefix}-title`.
type InterpolatedIdent struct {
	Spanned
	// Parts holds *IdentFragment and *Interpolation values.
	Parts []ComponentValue
}

// IdentFragment is a literal piece of an interpolated identifier or string.
type IdentFragment struct {
	Spanned
	Raw string
}

// Interpolation is `#{expr}` in SCSS and Sass or `@{name}` in Less.
type Interpolation struct {
	Spanned
	// Less reports the `@{name}` form.
	Less bool
	// Name is the variable name of a Less interpolation.
	Name string
	// Value is the expression of a Sass interpolation.
	Value []ComponentValue
}

// Number is a numeric literal without unit. Raw is the source text.
type Number struct {
	Spanned
	Raw string
}

// Dimension is a number followed by a unit.
type Dimension struct {
	Spanned
	Value *Number
	Unit  *Ident
}

// Percentage is a number followed by `%`.
type Percentage struct {
	Spanned
	Value *Number
}

// HexColor is `#` followed by Raw.
type HexColor struct {
	Spanned
	Raw string
}

// Str is a quoted string. Raw includes the quotes.
type Str struct {
	Spanned
	Raw string
}

// InterpolatedStr is a quoted string containing interpolation.
type InterpolatedStr struct {
	Spanned
	// Quote is the source quote character.
	Quote byte
	// Parts holds *IdentFragment (escaped source text without quotes) and
	// *Interpolation values.
	Parts []ComponentValue
}

// URL is `url(...)`. Exactly one of Raw and Value is set: Raw holds the
// unquoted source text between the parentheses.
type URL struct {
	Spanned
	Name  *Ident
	Raw   string
	Value InterpolableStr
}

// Function is a function call `name(args)`. Args hold values separated by
// *Delimiter nodes.
type Function struct {
	Spanned
	Name InterpolableIdent
	Args []ComponentValue
}

// DelimiterKind identifies a separator.
type DelimiterKind uint8

const (
	DelimiterComma DelimiterKind = iota
	DelimiterSolidus
	DelimiterSemicolon
)

// Delimiter separates component values.
type Delimiter struct {
	Spanned
	Kind DelimiterKind
}

// OperatorKind identifies a binary or unary operator.
type OperatorKind uint8

const (
	OperatorAdd OperatorKind = iota
	OperatorSub
	OperatorMul
	OperatorDiv
	OperatorMod
	OperatorEq
	OperatorStrictEq
	OperatorNotEq
	OperatorLess
	OperatorLessEq
	OperatorGreater
	OperatorGreaterEq
	OperatorAnd
	OperatorOr
	OperatorNot
)

// Operator is an operator token.
type Operator struct {
	Spanned
	Kind OperatorKind
}

// BinaryOperation is `left op right`.
type BinaryOperation struct {
	Spanned
	Left  ComponentValue
	Op    *Operator
	Right ComponentValue
}

// UnaryOperation is `op value`, such as `-$x` or `not $flag`.
type UnaryOperation struct {
	Spanned
	Op    *Operator
	Value ComponentValue
}

// Parenthesized is `( value )` in a Sass or Less expression.
type Parenthesized struct {
	Spanned
	Value ComponentValue
}

// BracketBlock is `[ values ]`, such as grid line names.
type BracketBlock struct {
	Spanned
	Values []ComponentValue
}

// ValueList is a sequence of space separated values and delimiters used
// where a single node is expected.
type ValueList struct {
	Spanned
	Values []ComponentValue
}

// SassVariable is `$name`. Name excludes the `$`.
type SassVariable struct {
	Spanned
	Name string
}

// SassQualifiedName is a module member reference: `math.div`, `map.$x`.
type SassQualifiedName struct {
	Spanned
	Module *Ident
	// Member is an *Ident, *SassVariable or *Function.
	Member ComponentValue
}

// SassMap is `(key: value, ...)`.
type SassMap struct {
	Spanned
	Items  []*SassMapItem
	Commas []Span
}

// SassMapItem is one `key: value` entry.
type SassMapItem struct {
	Spanned
	Key   ComponentValue
	Colon Span
	Value ComponentValue
}

// SassArbitraryArgument is `value...`.
type SassArbitraryArgument struct {
	Spanned
	Value ComponentValue
}

// SassKeywordArgument is `$name: value` in a call.
type SassKeywordArgument struct {
	Spanned
	Name  *SassVariable
	Colon Span
	Value ComponentValue
}

// LessVariable is `@name`. Name excludes the `@`.
type LessVariable struct {
	Spanned
	Name string
}

// LessVariableVariable is `@@name`.
type LessVariableVariable struct {
	Spanned
	Name string
}

// LessPropertyVariable is `$prop`.
type LessPropertyVariable struct {
	Spanned
	Name string
}

// LessEscapedStr is `~"..."`.
type LessEscapedStr struct {
	Spanned
	Value InterpolableStr
}

// Bang is `!important`, `!default`, `!global` or `!optional`. Name excludes
// the `!`.
type Bang struct {
	Spanned
	Name string
}

// UnicodeRange is `U+0025-00FF`.
type UnicodeRange struct {
	Spanned
	Raw string
}

// RawToken is a token preserved verbatim.
type RawToken struct {
	Spanned
	Raw string
}

// TokenList is a sequence of raw tokens. Adjacent tokens whose spans touch
// were written without whitespace between them.
type TokenList struct {
	Spanned
	Tokens []*RawToken
}

func (*Ident) componentValueNode()                 {}
func (*InterpolatedIdent) componentValueNode()     {}
func (*IdentFragment) componentValueNode()         {}
func (*Interpolation) componentValueNode()         {}
func (*Number) componentValueNode()                {}
func (*Dimension) componentValueNode()             {}
func (*Percentage) componentValueNode()            {}
func (*HexColor) componentValueNode()              {}
func (*Str) componentValueNode()                   {}
func (*InterpolatedStr) componentValueNode()       {}
func (*URL) componentValueNode()                   {}
func (*Function) componentValueNode()              {}
func (*Delimiter) componentValueNode()             {}
func (*BinaryOperation) componentValueNode()       {}
func (*UnaryOperation) componentValueNode()        {}
func (*Parenthesized) componentValueNode()         {}
func (*BracketBlock) componentValueNode()          {}
func (*ValueList) componentValueNode()             {}
func (*SassVariable) componentValueNode()          {}
func (*SassQualifiedName) componentValueNode()     {}
func (*SassMap) componentValueNode()               {}
func (*SassArbitraryArgument) componentValueNode() {}
func (*SassKeywordArgument) componentValueNode()   {}
func (*LessVariable) componentValueNode()          {}
func (*LessVariableVariable) componentValueNode()  {}
func (*LessPropertyVariable) componentValueNode()  {}
func (*LessEscapedStr) componentValueNode()        {}
func (*LessNamedArg) componentValueNode()          {}
func (*UnicodeRange) componentValueNode()          {}
func (*RawToken) componentValueNode()              {}

func (*Ident) interpolableIdentNode()             {}
func (*InterpolatedIdent) interpolableIdentNode() {}

func (*Str) interpolableStrNode()             {}
func (*InterpolatedStr) interpolableStrNode() {}
