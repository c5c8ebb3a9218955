package syntax

// AtRulePrelude is the part of an at-rule between its name and its block or
// semicolon.
type AtRulePrelude interface {
	Node
	atRulePreludeNode()
}

// MediaQueryList is the prelude of `@media` and the media list of imports.
type MediaQueryList struct {
	Spanned
	Queries []MediaQuery
	Commas  []Span
}

// MediaQuery is a *MediaQueryWithType or *MediaCondition.
type MediaQuery interface {
	Node
	mediaQueryNode()
}

// MediaQueryWithType is `[not|only] type [and condition]`.
type MediaQueryWithType struct {
	Spanned
	Modifier  *Ident
	MediaType InterpolableIdent
	// And is the `and` keyword, nil when Condition is nil.
	And       *Ident
	Condition *MediaCondition
}

// MediaCondition is a sequence of media condition parts. The first part is
// a *MediaInParens or *MediaNot; the rest are *MediaAnd or *MediaOr.
type MediaCondition struct {
	Spanned
	Conditions []MediaConditionKind
}

// MediaConditionKind is one part of a media condition.
type MediaConditionKind interface {
	Node
	mediaConditionKindNode()
}

// MediaNot is `not (...)`.
type MediaNot struct {
	Spanned
	Keyword   *Ident
	Condition *MediaInParens
}

// MediaAnd is `and (...)`.
type MediaAnd struct {
	Spanned
	Keyword   *Ident
	Condition *MediaInParens
}

// MediaOr is `or (...)`.
type MediaOr struct {
	Spanned
	Keyword   *Ident
	Condition *MediaInParens
}

// MediaInParens is a parenthesized condition or feature, or a bare function
// such as a container `style(...)` query. Exactly one field is set.
type MediaInParens struct {
	Spanned
	Condition *MediaCondition
	Feature   MediaFeature
	Function  *Function
}

// MediaFeature is the content of a parenthesized media feature.
type MediaFeature interface {
	Node
	mediaFeatureNode()
}

// MediaFeaturePlain is `name: value`.
type MediaFeaturePlain struct {
	Spanned
	Name  InterpolableIdent
	Colon Span
	Value ComponentValue
}

// MediaFeatureBoolean is a bare feature name such as `(color)`.
type MediaFeatureBoolean struct {
	Spanned
	Name InterpolableIdent
}

// MediaComparison is `<`, `<=`, `>`, `>=` or `=`.
type MediaComparison struct {
	Spanned
	Raw string
}

// MediaFeatureRange is `name op value` or `value op name`.
type MediaFeatureRange struct {
	Spanned
	Left       ComponentValue
	Comparison *MediaComparison
	Right      ComponentValue
}

// MediaFeatureRangeInterval is `value op name op value`.
type MediaFeatureRangeInterval struct {
	Spanned
	Left            ComponentValue
	LeftComparison  *MediaComparison
	Name            InterpolableIdent
	RightComparison *MediaComparison
	Right           ComponentValue
}

// SupportsCondition is the prelude of `@supports`. The first part is a
// *SupportsInParens or *SupportsNot; the rest are *SupportsAnd or
// *SupportsOr.
type SupportsCondition struct {
	Spanned
	Conditions []SupportsConditionKind
}

// SupportsConditionKind is one part of a supports condition.
type SupportsConditionKind interface {
	Node
	supportsConditionKindNode()
}

// SupportsNot is `not (...)`.
type SupportsNot struct {
	Spanned
	Keyword   *Ident
	Condition *SupportsInParens
}

// SupportsAnd is `and (...)`.
type SupportsAnd struct {
	Spanned
	Keyword   *Ident
	Condition *SupportsInParens
}

// SupportsOr is `or (...)`.
type SupportsOr struct {
	Spanned
	Keyword   *Ident
	Condition *SupportsInParens
}

// SupportsInParens is a parenthesized condition or declaration, or a bare
// function such as `selector(...)`. Exactly one field is set.
type SupportsInParens struct {
	Spanned
	Condition   *SupportsCondition
	Declaration *Declaration
	Function    *Function
}

// ImportPrelude is the prelude of a CSS `@import`.
type ImportPrelude struct {
	Spanned
	// Href is a string or *URL.
	Href ComponentValue
	// Layer is the `layer` keyword or a `layer(name)` function.
	Layer    ComponentValue
	Supports *ImportSupports
	Media    *MediaQueryList
}

// ImportSupports is `supports(...)` in an import prelude. Exactly one of
// Condition and Declaration is set.
type ImportSupports struct {
	Spanned
	Condition   *SupportsCondition
	Declaration *Declaration
}

// ContainerPrelude is `[name] condition`.
type ContainerPrelude struct {
	Spanned
	Name      *Ident
	Condition *MediaCondition
}

// LayerPrelude is a comma separated list of layer names. It is empty for an
// anonymous layer block.
type LayerPrelude struct {
	Spanned
	Names  []*LayerName
	Commas []Span
}

// LayerName is a dotted layer name.
type LayerName struct {
	Spanned
	Parts []*Ident
}

// NamespacePrelude is `[prefix] uri`.
type NamespacePrelude struct {
	Spanned
	Prefix *Ident
	URI    ComponentValue
}

// PagePrelude is a comma separated list of page selectors.
type PagePrelude struct {
	Spanned
	Selectors []*PageSelector
	Commas    []Span
}

// PageSelector is `[name][:pseudo]*`.
type PageSelector struct {
	Spanned
	Name    *Ident
	Pseudos []*Ident
}

// ScopePrelude is `[(start)] [to (end)]`.
type ScopePrelude struct {
	Spanned
	Start *SelectorList
	To    *Ident
	End   *SelectorList
}

// ValuePrelude is a prelude parsed as a value list, used by `@charset`,
// `@keyframes`, `@property`, `@return` and similar at-rules.
type ValuePrelude struct {
	Spanned
	Values []ComponentValue
}

// SelectorPrelude is a prelude holding a selector list.
type SelectorPrelude struct {
	Spanned
	Selector *SelectorList
}

// SassUse is the prelude of `@use`.
type SassUse struct {
	Spanned
	Path InterpolableStr
	// As is the `as` keyword; nil without a namespace.
	As *Span
	// Namespace is the name after `as`, possibly `*`.
	Namespace *Ident
	Config    *SassModuleConfig
}

// SassForward is the prelude of `@forward`.
type SassForward struct {
	Spanned
	Path InterpolableStr
	As   *Span
	// Prefix is the `as prefix-*` name including the `*`.
	Prefix *Ident
	// Visibility is `show` or `hide`.
	Visibility *Ident
	Members    []ComponentValue
	Commas     []Span
	Config     *SassModuleConfig
}

// SassModuleConfig is the `with (...)` clause of `@use` and `@forward`.
type SassModuleConfig struct {
	Spanned
	// With is the `with` keyword and Parens the parenthesized items.
	With   Span
	Parens Span
	Items  []*SassModuleConfigItem
	Commas []Span
}

// SassModuleConfigItem is `$name: value [!default]`.
type SassModuleConfigItem struct {
	Spanned
	Name  *SassVariable
	Colon Span
	Value ComponentValue
	Flags []*Bang
}

// SassImport is a Sass `@import` of one or more stylesheets.
type SassImport struct {
	Spanned
	Paths  []ComponentValue
	Commas []Span
}

// SassCallable is the prelude of `@mixin` and `@function`.
type SassCallable struct {
	Spanned
	Name   InterpolableIdent
	Params *SassParams
}

// SassParams is a parenthesized parameter list.
type SassParams struct {
	Spanned
	Params []*SassParam
	Commas []Span
}

// SassParam is `$name[: default]` or `$name...`.
type SassParam struct {
	Spanned
	Name    *SassVariable
	Colon   *Span
	Default ComponentValue
	Rest    bool
}

// SassArgs is a parenthesized argument list.
type SassArgs struct {
	Spanned
	Args   []ComponentValue
	Commas []Span
}

// SassInclude is the prelude of `@include`.
type SassInclude struct {
	Spanned
	// Target is an InterpolableIdent or *SassQualifiedName.
	Target ComponentValue
	Args   *SassArgs
	// Using is the `using ($params)` clause and UsingKeyword its keyword.
	Using        *SassParams
	UsingKeyword *Span
}

// SassContent is the prelude of `@content`.
type SassContent struct {
	Spanned
	Args *SassArgs
}

// SassEach is `$a, $b in expr`.
type SassEach struct {
	Spanned
	Bindings []*SassVariable
	Commas   []Span
	In       *Ident
	Expr     ComponentValue
}

// SassFor is `$i from a through b` or `$i from a to b`.
type SassFor struct {
	Spanned
	Variable *SassVariable
	From     *Ident
	Start    ComponentValue
	// Bound is the `through` or `to` keyword.
	Bound *Ident
	End   ComponentValue
}

// SassExtend is the prelude of `@extend`.
type SassExtend struct {
	Spanned
	Selector *SelectorList
	Optional *Bang
}

// LessImport is a Less `@import` with options.
type LessImport struct {
	Spanned
	Options *LessImportOptions
	Href    ComponentValue
	Media   *MediaQueryList
}

// LessImportOptions is `(reference, optional)`.
type LessImportOptions struct {
	Spanned
	Names  []*Ident
	Commas []Span
}

func (*MediaQueryList) atRulePreludeNode()    {}
func (*SupportsCondition) atRulePreludeNode() {}
func (*ImportPrelude) atRulePreludeNode()     {}
func (*ContainerPrelude) atRulePreludeNode()  {}
func (*LayerPrelude) atRulePreludeNode()      {}
func (*NamespacePrelude) atRulePreludeNode()  {}
func (*PagePrelude) atRulePreludeNode()       {}
func (*ScopePrelude) atRulePreludeNode()      {}
func (*ValuePrelude) atRulePreludeNode()      {}
func (*SelectorPrelude) atRulePreludeNode()   {}
func (*TokenList) atRulePreludeNode()         {}
func (*SassUse) atRulePreludeNode()           {}
func (*SassForward) atRulePreludeNode()       {}
func (*SassImport) atRulePreludeNode()        {}
func (*SassCallable) atRulePreludeNode()      {}
func (*SassInclude) atRulePreludeNode()       {}
func (*SassContent) atRulePreludeNode()       {}
func (*SassEach) atRulePreludeNode()          {}
func (*SassFor) atRulePreludeNode()           {}
func (*SassExtend) atRulePreludeNode()        {}
func (*LessImport) atRulePreludeNode()        {}

func (*MediaQueryWithType) mediaQueryNode() {}
func (*MediaCondition) mediaQueryNode()     {}

func (*MediaInParens) mediaConditionKindNode() {}
func (*MediaNot) mediaConditionKindNode()      {}
func (*MediaAnd) mediaConditionKindNode()      {}
func (*MediaOr) mediaConditionKindNode()       {}

func (*MediaFeaturePlain) mediaFeatureNode()         {}
func (*MediaFeatureBoolean) mediaFeatureNode()       {}
func (*MediaFeatureRange) mediaFeatureNode()         {}
func (*MediaFeatureRangeInterval) mediaFeatureNode() {}

func (*SupportsInParens) supportsConditionKindNode() {}
func (*SupportsNot) supportsConditionKindNode()      {}
func (*SupportsAnd) supportsConditionKindNode()      {}
func (*SupportsOr) supportsConditionKindNode()       {}
