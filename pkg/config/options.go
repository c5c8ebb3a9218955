package config

// LineBreak selects the line terminator written by the printer.
type LineBreak string

const (
	LineBreakLF   LineBreak = "lf"
	LineBreakCRLF LineBreak = "crlf"
)

// IsValid returns true if the line break is known.
func (l LineBreak) IsValid() bool {
	return l == LineBreakLF || l == LineBreakCRLF
}

// Sequence returns the literal terminator.
func (l LineBreak) Sequence() string {
	if l == LineBreakCRLF {
		return "\r\n"
	}
	return "\n"
}

// HexCase controls the letter case of hex colors.
type HexCase string

const (
	HexCaseIgnore HexCase = "ignore"
	HexCaseLower  HexCase = "lower"
	HexCaseUpper  HexCase = "upper"
)

// IsValid returns true if the hex case is known.
func (h HexCase) IsValid() bool {
	switch h {
	case HexCaseIgnore, HexCaseLower, HexCaseUpper:
		return true
	default:
		return false
	}
}

// HexColorLength controls whether hex colors are expanded or collapsed.
// The empty value keeps the source length.
type HexColorLength string

const (
	HexColorLengthKeep  HexColorLength = ""
	HexColorLengthShort HexColorLength = "short"
	HexColorLengthLong  HexColorLength = "long"
)

// IsValid returns true if the hex color length is known.
func (h HexColorLength) IsValid() bool {
	switch h {
	case HexColorLengthKeep, HexColorLengthShort, HexColorLengthLong:
		return true
	default:
		return false
	}
}

// Quotes selects the quote character policy for strings.
type Quotes string

const (
	QuotesAlwaysDouble Quotes = "always-double"
	QuotesAlwaysSingle Quotes = "always-single"
	QuotesPreferDouble Quotes = "prefer-double"
	QuotesPreferSingle Quotes = "prefer-single"
)

// IsValid returns true if the quote policy is known.
func (q Quotes) IsValid() bool {
	switch q {
	case QuotesAlwaysDouble, QuotesAlwaysSingle, QuotesPreferDouble, QuotesPreferSingle:
		return true
	default:
		return false
	}
}

// OperatorLineBreak places the break opportunity of a binary operator.
type OperatorLineBreak string

const (
	OperatorLineBreakBefore OperatorLineBreak = "before"
	OperatorLineBreakAfter  OperatorLineBreak = "after"
)

// IsValid returns true if the operator line break is known.
func (o OperatorLineBreak) IsValid() bool {
	return o == OperatorLineBreakBefore || o == OperatorLineBreakAfter
}

// BlockSelectorLineBreak controls line breaks between the selectors of a
// rule's selector list.
type BlockSelectorLineBreak string

const (
	// BlockSelectorLineBreakAlways puts every selector on its own line.
	BlockSelectorLineBreakAlways BlockSelectorLineBreak = "always"
	// BlockSelectorLineBreakConsistent keeps the list on one line if it fits,
	// otherwise breaks after every comma.
	BlockSelectorLineBreakConsistent BlockSelectorLineBreak = "consistent"
	// BlockSelectorLineBreakWrap breaks only where the line would overflow.
	BlockSelectorLineBreakWrap BlockSelectorLineBreak = "wrap"
)

// IsValid returns true if the selector line break is known.
func (b BlockSelectorLineBreak) IsValid() bool {
	switch b {
	case BlockSelectorLineBreakAlways, BlockSelectorLineBreakConsistent, BlockSelectorLineBreakWrap:
		return true
	default:
		return false
	}
}

// DeclarationOrder selects how plain declarations inside a block are sorted.
// The empty value keeps the source order.
type DeclarationOrder string

const (
	DeclarationOrderNone         DeclarationOrder = ""
	DeclarationOrderAlphabetical DeclarationOrder = "alphabetical"
	DeclarationOrderSmacss       DeclarationOrder = "smacss"
	DeclarationOrderConcentric   DeclarationOrder = "concentric"
)

// IsValid returns true if the declaration order is known.
func (d DeclarationOrder) IsValid() bool {
	switch d {
	case DeclarationOrderNone, DeclarationOrderAlphabetical, DeclarationOrderSmacss, DeclarationOrderConcentric:
		return true
	default:
		return false
	}
}

// DeclarationOrderGroupBy selects what separates groups of sortable
// declarations.
type DeclarationOrderGroupBy string

const (
	DeclarationOrderGroupByNonDeclaration             DeclarationOrderGroupBy = "non-declaration"
	DeclarationOrderGroupByNonDeclarationAndEmptyLine DeclarationOrderGroupBy = "non-declaration-and-empty-line"
)

// IsValid returns true if the grouping is known.
func (d DeclarationOrderGroupBy) IsValid() bool {
	return d == DeclarationOrderGroupByNonDeclaration || d == DeclarationOrderGroupByNonDeclarationAndEmptyLine
}

// KeyframeSelectorNotation normalizes `from`/`to` and `0%`/`100%`.
// The empty value keeps the source notation.
type KeyframeSelectorNotation string

const (
	KeyframeSelectorNotationKeep       KeyframeSelectorNotation = ""
	KeyframeSelectorNotationKeyword    KeyframeSelectorNotation = "keyword"
	KeyframeSelectorNotationPercentage KeyframeSelectorNotation = "percentage"
)

// IsValid returns true if the notation is known.
func (k KeyframeSelectorNotation) IsValid() bool {
	switch k {
	case KeyframeSelectorNotationKeep, KeyframeSelectorNotationKeyword, KeyframeSelectorNotationPercentage:
		return true
	default:
		return false
	}
}

// AttrValueQuotes controls quoting of attribute selector values.
type AttrValueQuotes string

const (
	AttrValueQuotesAlways AttrValueQuotes = "always"
	AttrValueQuotesIgnore AttrValueQuotes = "ignore"
)

// IsValid returns true if the attribute quoting policy is known.
func (a AttrValueQuotes) IsValid() bool {
	return a == AttrValueQuotesAlways || a == AttrValueQuotesIgnore
}

// LayoutOptions controls the printer.
type LayoutOptions struct {
	PrintWidth  int       `json:"print_width" toml:"print_width" yaml:"print_width"`
	UseTabs     bool      `json:"use_tabs" toml:"use_tabs" yaml:"use_tabs"`
	IndentWidth int       `json:"indent_width" toml:"indent_width" yaml:"indent_width"`
	LineBreak   LineBreak `json:"line_break" toml:"line_break" yaml:"line_break"`
}

// LanguageOptions controls stylesheet-specific formatting decisions.
type LanguageOptions struct {
	HexCase                  HexCase                  `json:"hex_case" toml:"hex_case" yaml:"hex_case"`
	HexColorLength           HexColorLength           `json:"hex_color_length,omitempty" toml:"hex_color_length,omitempty" yaml:"hex_color_length,omitempty"`
	Quotes                   Quotes                   `json:"quotes" toml:"quotes" yaml:"quotes"`
	OperatorLineBreak        OperatorLineBreak        `json:"operator_linebreak" toml:"operator_linebreak" yaml:"operator_linebreak"`
	BlockSelectorLineBreak   BlockSelectorLineBreak   `json:"block_selector_linebreak" toml:"block_selector_linebreak" yaml:"block_selector_linebreak"`
	OmitNumberLeadingZero    bool                     `json:"omit_number_leading_zero" toml:"omit_number_leading_zero" yaml:"omit_number_leading_zero"`
	TrailingComma            bool                     `json:"trailing_comma" toml:"trailing_comma" yaml:"trailing_comma"`
	FormatComments           bool                     `json:"format_comments" toml:"format_comments" yaml:"format_comments"`
	LineBreakInPseudoParens  bool                     `json:"linebreak_in_pseudo_parens" toml:"linebreak_in_pseudo_parens" yaml:"linebreak_in_pseudo_parens"`
	DeclarationOrder         DeclarationOrder         `json:"declaration_order,omitempty" toml:"declaration_order,omitempty" yaml:"declaration_order,omitempty"`
	DeclarationOrderGroupBy  DeclarationOrderGroupBy  `json:"declaration_order_group_by" toml:"declaration_order_group_by" yaml:"declaration_order_group_by"`
	SingleLineBlockThreshold int                      `json:"single_line_block_threshold,omitempty" toml:"single_line_block_threshold,omitempty" yaml:"single_line_block_threshold,omitempty"`
	KeyframeSelectorNotation KeyframeSelectorNotation `json:"keyframe_selector_notation,omitempty" toml:"keyframe_selector_notation,omitempty" yaml:"keyframe_selector_notation,omitempty"`
	AttrValueQuotes          AttrValueQuotes          `json:"attr_value_quotes" toml:"attr_value_quotes" yaml:"attr_value_quotes"`

	PreferSingleLine                     bool  `json:"prefer_single_line" toml:"prefer_single_line" yaml:"prefer_single_line"`
	SelectorsPreferSingleLine            *bool `json:"selectors_prefer_single_line,omitempty" toml:"selectors_prefer_single_line,omitempty" yaml:"selectors_prefer_single_line,omitempty"`
	FunctionArgsPreferSingleLine         *bool `json:"function_args_prefer_single_line,omitempty" toml:"function_args_prefer_single_line,omitempty" yaml:"function_args_prefer_single_line,omitempty"`
	SassContentAtRulePreferSingleLine    *bool `json:"sass_content_at_rule_prefer_single_line,omitempty" toml:"sass_content_at_rule_prefer_single_line,omitempty" yaml:"sass_content_at_rule_prefer_single_line,omitempty"`
	SassIncludeAtRulePreferSingleLine    *bool `json:"sass_include_at_rule_prefer_single_line,omitempty" toml:"sass_include_at_rule_prefer_single_line,omitempty" yaml:"sass_include_at_rule_prefer_single_line,omitempty"`
	SassMapPreferSingleLine              *bool `json:"sass_map_prefer_single_line,omitempty" toml:"sass_map_prefer_single_line,omitempty" yaml:"sass_map_prefer_single_line,omitempty"`
	SassModuleConfigPreferSingleLine     *bool `json:"sass_module_config_prefer_single_line,omitempty" toml:"sass_module_config_prefer_single_line,omitempty" yaml:"sass_module_config_prefer_single_line,omitempty"`
	SassParamsPreferSingleLine           *bool `json:"sass_params_prefer_single_line,omitempty" toml:"sass_params_prefer_single_line,omitempty" yaml:"sass_params_prefer_single_line,omitempty"`
	LessImportOptionsPreferSingleLine    *bool `json:"less_import_options_prefer_single_line,omitempty" toml:"less_import_options_prefer_single_line,omitempty" yaml:"less_import_options_prefer_single_line,omitempty"`
	LessMixinArgsPreferSingleLine        *bool `json:"less_mixin_args_prefer_single_line,omitempty" toml:"less_mixin_args_prefer_single_line,omitempty" yaml:"less_mixin_args_prefer_single_line,omitempty"`
	LessMixinParamsPreferSingleLine      *bool `json:"less_mixin_params_prefer_single_line,omitempty" toml:"less_mixin_params_prefer_single_line,omitempty" yaml:"less_mixin_params_prefer_single_line,omitempty"`
	TopLevelDeclarationsPreferSingleLine *bool `json:"top_level_declarations_prefer_single_line,omitempty" toml:"top_level_declarations_prefer_single_line,omitempty" yaml:"top_level_declarations_prefer_single_line,omitempty"`

	SelectorOverrideCommentDirective string `json:"selector_override_comment_directive" toml:"selector_override_comment_directive" yaml:"selector_override_comment_directive"`
	IgnoreCommentDirective           string `json:"ignore_comment_directive" toml:"ignore_comment_directive" yaml:"ignore_comment_directive"`
	IgnoreFileCommentDirective       string `json:"ignore_file_comment_directive" toml:"ignore_file_comment_directive" yaml:"ignore_file_comment_directive"`
}

// FormatOptions is the complete option set of one format call.
type FormatOptions struct {
	Layout   LayoutOptions
	Language LanguageOptions
}

// DefaultLayoutOptions returns the default printer options.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		PrintWidth:  80,
		UseTabs:     false,
		IndentWidth: 2,
		LineBreak:   LineBreakLF,
	}
}

// DefaultLanguageOptions returns the default language options.
func DefaultLanguageOptions() LanguageOptions {
	return LanguageOptions{
		HexCase:                          HexCaseLower,
		Quotes:                           QuotesAlwaysDouble,
		OperatorLineBreak:                OperatorLineBreakAfter,
		BlockSelectorLineBreak:           BlockSelectorLineBreakConsistent,
		DeclarationOrderGroupBy:          DeclarationOrderGroupByNonDeclaration,
		AttrValueQuotes:                  AttrValueQuotesAlways,
		SelectorOverrideCommentDirective: "cssfmt-selector-override",
		IgnoreCommentDirective:           "cssfmt-ignore",
		IgnoreFileCommentDirective:       "cssfmt-ignore-file",
	}
}

// DefaultFormatOptions returns the default option set.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		Layout:   DefaultLayoutOptions(),
		Language: DefaultLanguageOptions(),
	}
}

// PreferSingleLineFor resolves a per-construct override against the global
// preferSingleLine option.
func (o LanguageOptions) PreferSingleLineFor(override *bool) bool {
	if override != nil {
		return *override
	}
	return o.PreferSingleLine
}
