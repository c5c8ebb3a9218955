package syntax

// Node is implemented by every syntax tree node.
type Node interface {
	Span() Span
}

// Spanned is embedded by every node to store its source range.
type Spanned struct {
	Range Span
}

// Span returns the source range of the node.
func (s Spanned) Span() Span { return s.Range }

// Stylesheet is the root of a parsed file.
type Stylesheet struct {
	Spanned
	Statements []Statement
}

// Statement is a member of a stylesheet or block.
type Statement interface {
	Node
	statementNode()
}

// Block is a `{ ... }` body. In the indented syntax the braces are implied
// by indentation and have empty spans.
type Block struct {
	Spanned
	Statements []Statement
}

// QualifiedRule is a style rule: a selector list followed by a block.
type QualifiedRule struct {
	Spanned
	Selector *SelectorList
	// Guard is a Less `when` guard, nil otherwise.
	Guard *LessGuard
	Block *Block
}

// Declaration is a `property: value` pair.
type Declaration struct {
	Spanned
	Name InterpolableIdent
	// Merge is the Less property merge suffix, `+` or `+_`.
	Merge string
	Value []ComponentValue
	// Raw reports that Value is a sequence of *RawToken preserved verbatim.
	Raw       bool
	Important *Bang
	// Block holds SCSS nested properties (`font: { family: x; }`).
	Block *Block
}

// AtRule is an `@name prelude;` or `@name prelude { ... }` statement.
type AtRule struct {
	Spanned
	// Name excludes the `@`; its span includes it.
	Name    *Ident
	Prelude AtRulePrelude
	Block   *Block
}

// KeyframeBlock is one step of an @keyframes rule.
type KeyframeBlock struct {
	Spanned
	Selectors []*KeyframeSelector
	Commas    []Span
	Block     *Block
}

// KeyframeSelector is `from`, `to` or a percentage.
type KeyframeSelector struct {
	Spanned
	// Value is an *Ident, *Percentage or an interpolation.
	Value ComponentValue
}

// SassVariableDecl is `$name: value !default;`.
type SassVariableDecl struct {
	Spanned
	// Module is the namespace of `module.$name: value`, nil otherwise.
	Module *Ident
	Name   *SassVariable
	Value  []ComponentValue
	Flags  []*Bang
}

// SassIfAtRule is an `@if` chain with its `@else if` and `@else` clauses.
type SassIfAtRule struct {
	Spanned
	Clauses []*SassConditionalClause
	// Else is the final `@else` clause, nil when absent.
	Else *SassElseClause
}

// SassConditionalClause is one `@if` or `@else if` clause.
type SassConditionalClause struct {
	Spanned
	// Keyword spans `@if` or `@else if`.
	Keyword   Span
	Condition ComponentValue
	Block     *Block
}

// SassElseClause is the final `@else` clause.
type SassElseClause struct {
	Spanned
	Block *Block
}

// LessVariableDecl is `@name: value;` or a detached ruleset `@name: { ... }`.
type LessVariableDecl struct {
	Spanned
	Name  *LessVariable
	Value []ComponentValue
	// Ruleset is set for detached rulesets.
	Ruleset   *Block
	Important *Bang
}

// LessDetachedRulesetCall is `@name();`.
type LessDetachedRulesetCall struct {
	Spanned
	Name *LessVariable
}

// LessMixinDefinition is `.name(@params) when (guard) { ... }`.
type LessMixinDefinition struct {
	Spanned
	// Name includes the leading `.` or `#`.
	Name   *Ident
	Params *LessMixinParams
	Guard  *LessGuard
	Block  *Block
}

// LessMixinParams is the parenthesized parameter list of a mixin definition.
type LessMixinParams struct {
	Spanned
	Params     []*LessMixinParam
	Separators []Span
	// Semicolons reports that parameters are separated by `;`.
	Semicolons bool
}

// LessMixinParam is one mixin parameter: a variable with an optional default,
// a pattern value, or a rest parameter.
type LessMixinParam struct {
	Spanned
	// Name is a *LessVariable or, for pattern matching, any value.
	Name    ComponentValue
	Colon   *Span
	Default []ComponentValue
	Rest    bool
}

// LessMixinCall invokes a mixin: `.name(args) !important;`.
type LessMixinCall struct {
	Spanned
	Callee    *LessMixinCallee
	Args      *LessMixinArgs
	Important *Bang
}

// LessMixinCallee is a possibly namespaced mixin name such as `#ns > .m`.
type LessMixinCallee struct {
	Spanned
	Parts []*LessMixinCalleePart
}

// LessMixinCalleePart is one name of a mixin path.
type LessMixinCalleePart struct {
	Spanned
	// Combinator is ">" or "" for `#ns.m`; empty for the first part.
	Combinator string
	Name       *Ident
}

// LessMixinArgs is the argument list of a mixin call.
type LessMixinArgs struct {
	Spanned
	// Args holds *ValueList and *LessNamedArg items.
	Args       []ComponentValue
	Separators []Span
	Semicolons bool
}

// LessNamedArg is `@name: value` inside mixin call arguments.
type LessNamedArg struct {
	Spanned
	Name  *LessVariable
	Value *ValueList
}

// LessExtendRule is a `&:extend(selector all);` statement.
type LessExtendRule struct {
	Spanned
	// Args is the text between the parentheses.
	Args *TokenList
}

// LessGuard is a Less `when` condition.
type LessGuard struct {
	Spanned
	// Keyword spans the `when` keyword.
	Keyword Span
	// Conditions are separated by commas (logical or).
	Conditions []ComponentValue
	Commas     []Span
}

func (*QualifiedRule) statementNode()           {}
func (*Declaration) statementNode()             {}
func (*AtRule) statementNode()                  {}
func (*KeyframeBlock) statementNode()           {}
func (*SassVariableDecl) statementNode()        {}
func (*SassIfAtRule) statementNode()            {}
func (*LessVariableDecl) statementNode()        {}
func (*LessDetachedRulesetCall) statementNode() {}
func (*LessMixinDefinition) statementNode()     {}
func (*LessMixinCall) statementNode()           {}
func (*LessExtendRule) statementNode()          {}
