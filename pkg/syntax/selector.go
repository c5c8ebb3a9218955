package syntax

// SelectorList is a comma separated list of complex selectors.
type SelectorList struct {
	Spanned
	Selectors []*ComplexSelector
	Commas    []Span
}

// ComplexSelector is a sequence of compound selectors joined by
// combinators. Nested rules may start with a combinator.
type ComplexSelector struct {
	Spanned
	Children []ComplexSelectorChild
}

// ComplexSelectorChild is a *CompoundSelector or *Combinator.
type ComplexSelectorChild interface {
	Node
	complexSelectorChildNode()
}

// CombinatorKind identifies a selector combinator.
type CombinatorKind uint8

const (
	CombinatorDescendant CombinatorKind = iota
	CombinatorChild
	CombinatorNextSibling
	CombinatorLaterSibling
	CombinatorColumn
)

// String returns the combinator token. Descendant is a single space.
func (k CombinatorKind) String() string {
	switch k {
	case CombinatorChild:
		return ">"
	case CombinatorNextSibling:
		return "+"
	case CombinatorLaterSibling:
		return "~"
	case CombinatorColumn:
		return "||"
	default:
		return " "
	}
}

// Combinator joins two compound selectors. A descendant combinator has an
// empty span positioned at the whitespace.
type Combinator struct {
	Spanned
	Kind CombinatorKind
}

// CompoundSelector is a sequence of simple selectors without whitespace.
type CompoundSelector struct {
	Spanned
	Children []SimpleSelector
}

// SimpleSelector is one component of a compound selector.
type SimpleSelector interface {
	Node
	simpleSelectorNode()
}

// NsPrefixKind identifies the form of a namespace prefix.
type NsPrefixKind uint8

const (
	// NsPrefixNone is `|name`.
	NsPrefixNone NsPrefixKind = iota
	// NsPrefixIdent is `ns|name`.
	NsPrefixIdent
	// NsPrefixUniversal is `*|name`.
	NsPrefixUniversal
)

// NsPrefix is a namespace prefix including the `|`.
type NsPrefix struct {
	Spanned
	Kind NsPrefixKind
	Name *Ident
}

// TypeSelector is an element name.
type TypeSelector struct {
	Spanned
	Prefix *NsPrefix
	Name   InterpolableIdent
}

// UniversalSelector is `*`.
type UniversalSelector struct {
	Spanned
	Prefix *NsPrefix
}

// ClassSelector is `.name`.
type ClassSelector struct {
	Spanned
	Name InterpolableIdent
}

// IDSelector is `#name`.
type IDSelector struct {
	Spanned
	Name InterpolableIdent
}

// AttributeSelector is `[ns|name op value modifier]`.
type AttributeSelector struct {
	Spanned
	Prefix *NsPrefix
	Name   InterpolableIdent
	// Matcher is "", "=", "~=", "|=", "^=", "$=" or "*=".
	Matcher string
	// Value is an InterpolableIdent or InterpolableStr.
	Value    ComponentValue
	Modifier *Ident
}

// PseudoClassSelector is `:name` or `:name(arg)`.
type PseudoClassSelector struct {
	Spanned
	Name InterpolableIdent
	Arg  PseudoArg
}

// PseudoElementSelector is `::name` or `::name(arg)`.
type PseudoElementSelector struct {
	Spanned
	Name InterpolableIdent
	Arg  PseudoArg
}

// PseudoArg is the argument of a functional pseudo selector: a
// *SelectorList, *NthArg or *TokenList.
type PseudoArg interface {
	Node
	pseudoArgNode()
}

// NthArg is the argument of `:nth-child()` and friends.
type NthArg struct {
	Spanned
	// Index is `odd`, `even` or an An+B expression as written.
	Index string
	Of    *SelectorList
}

// NestingSelector is `&`, optionally followed by a suffix as in `&-title`.
type NestingSelector struct {
	Spanned
	Suffix InterpolableIdent
}

// PlaceholderSelector is `%name`.
type PlaceholderSelector struct {
	Spanned
	Name InterpolableIdent
}

func (*CompoundSelector) complexSelectorChildNode() {}
func (*Combinator) complexSelectorChildNode()       {}

func (*TypeSelector) simpleSelectorNode()          {}
func (*UniversalSelector) simpleSelectorNode()     {}
func (*ClassSelector) simpleSelectorNode()         {}
func (*IDSelector) simpleSelectorNode()            {}
func (*AttributeSelector) simpleSelectorNode()     {}
func (*PseudoClassSelector) simpleSelectorNode()   {}
func (*PseudoElementSelector) simpleSelectorNode() {}
func (*NestingSelector) simpleSelectorNode()       {}
func (*PlaceholderSelector) simpleSelectorNode()   {}

func (*SelectorList) pseudoArgNode() {}
func (*NthArg) pseudoArgNode()       {}
func (*TokenList) pseudoArgNode()    {}
