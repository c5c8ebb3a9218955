package config

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
)

// OptionKind describes the value type of an option.
type OptionKind int

const (
	KindBool OptionKind = iota
	KindInt
	KindString
	KindEnum
	KindStringList
)

// Option describes one configuration key.
type Option struct {
	// Key is the canonical snake_case name used in configuration files.
	Key string
	// Description is a one-line summary for templates and help.
	Description string
	// Kind is the value type.
	Kind OptionKind
	// Values lists the accepted values of an enum option.
	Values []string
	// Default is the default rendered for documentation.
	Default string

	apply func(cfg *Config, value any) error
}

// Apply coerces value to the option's type and stores it in cfg.
func (o Option) Apply(cfg *Config, value any) error {
	return o.apply(cfg, value)
}

// ErrInvalidValue is wrapped by every coercion failure.
var ErrInvalidValue = errors.New("invalid value")

func boolOption(key, description string, def bool, field func(*Config) *bool) Option {
	return Option{
		Key:         key,
		Description: description,
		Kind:        KindBool,
		Default:     strconv.FormatBool(def),
		apply: func(cfg *Config, value any) error {
			parsed, err := toBool(value)
			if err != nil {
				return err
			}
			*field(cfg) = parsed
			return nil
		},
	}
}

func optionalBoolOption(key, description string, field func(*Config) **bool) Option {
	return Option{
		Key:         key,
		Description: description,
		Kind:        KindBool,
		Default:     "inherit prefer_single_line",
		apply: func(cfg *Config, value any) error {
			if value == nil {
				*field(cfg) = nil
				return nil
			}
			parsed, err := toBool(value)
			if err != nil {
				return err
			}
			*field(cfg) = &parsed
			return nil
		},
	}
}

func intOption(key, description string, def, minimum int, field func(*Config) *int) Option {
	return Option{
		Key:         key,
		Description: description,
		Kind:        KindInt,
		Default:     strconv.Itoa(def),
		apply: func(cfg *Config, value any) error {
			parsed, err := toInt(value)
			if err != nil {
				return err
			}
			if parsed < minimum {
				return fmt.Errorf("%w: %d is less than %d", ErrInvalidValue, parsed, minimum)
			}
			*field(cfg) = parsed
			return nil
		},
	}
}

func stringOption(key, description, def string, field func(*Config) *string) Option {
	return Option{
		Key:         key,
		Description: description,
		Kind:        KindString,
		Default:     def,
		apply: func(cfg *Config, value any) error {
			str, ok := value.(string)
			if !ok {
				return fmt.Errorf("%w: expected a string, got %T", ErrInvalidValue, value)
			}
			*field(cfg) = str
			return nil
		},
	}
}

func enumOption[T ~string](key, description string, def T, values []T, field func(*Config) *T) Option {
	names := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			names = append(names, "none")
			continue
		}
		names = append(names, string(value))
	}

	defName := string(def)
	if defName == "" {
		defName = "none"
	}

	return Option{
		Key:         key,
		Description: description,
		Kind:        KindEnum,
		Values:      names,
		Default:     defName,
		apply: func(cfg *Config, value any) error {
			if value == nil {
				if !slices.Contains(values, "") {
					return fmt.Errorf("%w: expected one of %s", ErrInvalidValue, strings.Join(names, ", "))
				}
				*field(cfg) = ""
				return nil
			}
			str, ok := value.(string)
			if !ok {
				return fmt.Errorf("%w: expected one of %s, got %T", ErrInvalidValue, strings.Join(names, ", "), value)
			}
			normalized := strcase.ToKebab(strings.TrimSpace(str))
			if normalized == "none" || normalized == "null" {
				normalized = ""
			}
			for _, candidate := range values {
				if string(candidate) == normalized {
					*field(cfg) = candidate
					return nil
				}
			}
			return fmt.Errorf("%w: %q is not one of %s", ErrInvalidValue, str, strings.Join(names, ", "))
		},
	}
}

func stringListOption(key, description string, field func(*Config) *[]string) Option {
	return Option{
		Key:         key,
		Description: description,
		Kind:        KindStringList,
		Default:     "[]",
		apply: func(cfg *Config, value any) error {
			switch typed := value.(type) {
			case []string:
				*field(cfg) = slices.Clone(typed)
			case []any:
				list := make([]string, 0, len(typed))
				for _, item := range typed {
					str, ok := item.(string)
					if !ok {
						return fmt.Errorf("%w: expected a list of strings, found %T", ErrInvalidValue, item)
					}
					list = append(list, str)
				}
				*field(cfg) = list
			case string:
				*field(cfg) = splitList(typed)
			default:
				return fmt.Errorf("%w: expected a list of strings, got %T", ErrInvalidValue, value)
			}
			return nil
		},
	}
}

// splitList parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func toBool(value any) (bool, error) {
	switch typed := value.(type) {
	case bool:
		return typed, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		if err != nil {
			return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, typed)
		}
		return parsed, nil
	default:
		return false, fmt.Errorf("%w: expected a boolean, got %T", ErrInvalidValue, value)
	}
}

func toInt(value any) (int, error) {
	switch typed := value.(type) {
	case int:
		return typed, nil
	case int64:
		return int(typed), nil
	case uint64:
		if typed > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %d is too large", ErrInvalidValue, typed)
		}
		return int(typed), nil
	case float64:
		if typed != math.Trunc(typed) {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrInvalidValue, typed)
		}
		return int(typed), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, typed)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("%w: expected an integer, got %T", ErrInvalidValue, value)
	}
}

// Options returns every configuration key in documentation order.
func Options() []Option {
	return slices.Clone(optionTable)
}

// LookupOption returns the option with the given canonical key.
func LookupOption(key string) (Option, bool) {
	for _, option := range optionTable {
		if option.Key == key {
			return option, true
		}
	}
	return Option{}, false
}

//nolint:gochecknoglobals // Read-only lookup table.
var optionTable = []Option{
	intOption("print_width", "Target line width", 80, 1,
		func(c *Config) *int { return &c.PrintWidth }),
	boolOption("use_tabs", "Indent with tabs instead of spaces", false,
		func(c *Config) *bool { return &c.UseTabs }),
	intOption("indent_width", "Columns per indentation level", 2, 0,
		func(c *Config) *int { return &c.IndentWidth }),
	enumOption("line_break", "Line terminator", LineBreakLF,
		[]LineBreak{LineBreakLF, LineBreakCRLF},
		func(c *Config) *LineBreak { return &c.LineBreak }),

	enumOption("hex_case", "Letter case of hex colors", HexCaseLower,
		[]HexCase{HexCaseIgnore, HexCaseLower, HexCaseUpper},
		func(c *Config) *HexCase { return &c.HexCase }),
	enumOption("hex_color_length", "Expand or collapse hex colors when lossless", HexColorLengthKeep,
		[]HexColorLength{HexColorLengthKeep, HexColorLengthShort, HexColorLengthLong},
		func(c *Config) *HexColorLength { return &c.HexColorLength }),
	enumOption("quotes", "Quote character policy for strings", QuotesAlwaysDouble,
		[]Quotes{QuotesAlwaysDouble, QuotesAlwaysSingle, QuotesPreferDouble, QuotesPreferSingle},
		func(c *Config) *Quotes { return &c.Quotes }),
	enumOption("operator_linebreak", "Break before or after binary operators", OperatorLineBreakAfter,
		[]OperatorLineBreak{OperatorLineBreakBefore, OperatorLineBreakAfter},
		func(c *Config) *OperatorLineBreak { return &c.OperatorLineBreak }),
	enumOption("block_selector_linebreak", "Line breaks between selectors of a rule", BlockSelectorLineBreakConsistent,
		[]BlockSelectorLineBreak{BlockSelectorLineBreakAlways, BlockSelectorLineBreakConsistent, BlockSelectorLineBreakWrap},
		func(c *Config) *BlockSelectorLineBreak { return &c.BlockSelectorLineBreak }),
	boolOption("omit_number_leading_zero", "Print .5 instead of 0.5", false,
		func(c *Config) *bool { return &c.OmitNumberLeadingZero }),
	boolOption("trailing_comma", "Add a trailing comma to broken Sass and Less lists", false,
		func(c *Config) *bool { return &c.TrailingComma }),
	boolOption("format_comments", "Pad comment text with a space after the delimiter", false,
		func(c *Config) *bool { return &c.FormatComments }),
	boolOption("linebreak_in_pseudo_parens", "Allow selector list breaks inside :is(), :where() and :not()", false,
		func(c *Config) *bool { return &c.LineBreakInPseudoParens }),
	enumOption("declaration_order", "Sort declarations inside a block", DeclarationOrderNone,
		[]DeclarationOrder{DeclarationOrderNone, DeclarationOrderAlphabetical, DeclarationOrderSmacss, DeclarationOrderConcentric},
		func(c *Config) *DeclarationOrder { return &c.DeclarationOrder }),
	enumOption("declaration_order_group_by", "What separates groups of sorted declarations", DeclarationOrderGroupByNonDeclaration,
		[]DeclarationOrderGroupBy{DeclarationOrderGroupByNonDeclaration, DeclarationOrderGroupByNonDeclarationAndEmptyLine},
		func(c *Config) *DeclarationOrderGroupBy { return &c.DeclarationOrderGroupBy }),
	intOption("single_line_block_threshold", "Keep blocks with at most this many declarations on one line (0 disables)", 0, 0,
		func(c *Config) *int { return &c.SingleLineBlockThreshold }),
	enumOption("keyframe_selector_notation", "Normalize from/to and 0%/100% in keyframes", KeyframeSelectorNotationKeep,
		[]KeyframeSelectorNotation{KeyframeSelectorNotationKeep, KeyframeSelectorNotationKeyword, KeyframeSelectorNotationPercentage},
		func(c *Config) *KeyframeSelectorNotation { return &c.KeyframeSelectorNotation }),
	enumOption("attr_value_quotes", "Quote attribute selector values", AttrValueQuotesAlways,
		[]AttrValueQuotes{AttrValueQuotesAlways, AttrValueQuotesIgnore},
		func(c *Config) *AttrValueQuotes { return &c.AttrValueQuotes }),

	boolOption("prefer_single_line", "Ignore source line breaks when choosing layouts", false,
		func(c *Config) *bool { return &c.PreferSingleLine }),
	optionalBoolOption("selectors_prefer_single_line", "prefer_single_line for selector lists",
		func(c *Config) **bool { return &c.SelectorsPreferSingleLine }),
	optionalBoolOption("function_args_prefer_single_line", "prefer_single_line for function arguments",
		func(c *Config) **bool { return &c.FunctionArgsPreferSingleLine }),
	optionalBoolOption("sass_content_at_rule_prefer_single_line", "prefer_single_line for @content arguments",
		func(c *Config) **bool { return &c.SassContentAtRulePreferSingleLine }),
	optionalBoolOption("sass_include_at_rule_prefer_single_line", "prefer_single_line for @include arguments",
		func(c *Config) **bool { return &c.SassIncludeAtRulePreferSingleLine }),
	optionalBoolOption("sass_map_prefer_single_line", "prefer_single_line for Sass maps",
		func(c *Config) **bool { return &c.SassMapPreferSingleLine }),
	optionalBoolOption("sass_module_config_prefer_single_line", "prefer_single_line for @use and @forward with()",
		func(c *Config) **bool { return &c.SassModuleConfigPreferSingleLine }),
	optionalBoolOption("sass_params_prefer_single_line", "prefer_single_line for @mixin and @function parameters",
		func(c *Config) **bool { return &c.SassParamsPreferSingleLine }),
	optionalBoolOption("less_import_options_prefer_single_line", "prefer_single_line for Less @import options",
		func(c *Config) **bool { return &c.LessImportOptionsPreferSingleLine }),
	optionalBoolOption("less_mixin_args_prefer_single_line", "prefer_single_line for Less mixin call arguments",
		func(c *Config) **bool { return &c.LessMixinArgsPreferSingleLine }),
	optionalBoolOption("less_mixin_params_prefer_single_line", "prefer_single_line for Less mixin parameters",
		func(c *Config) **bool { return &c.LessMixinParamsPreferSingleLine }),
	optionalBoolOption("top_level_declarations_prefer_single_line", "prefer_single_line for values of top-level declarations",
		func(c *Config) **bool { return &c.TopLevelDeclarationsPreferSingleLine }),

	stringOption("selector_override_comment_directive", "Comment directive that overrides block_selector_linebreak for the next rule",
		"cssfmt-selector-override", func(c *Config) *string { return &c.SelectorOverrideCommentDirective }),
	stringOption("ignore_comment_directive", "Comment directive that leaves the next statement untouched",
		"cssfmt-ignore", func(c *Config) *string { return &c.IgnoreCommentDirective }),
	stringOption("ignore_file_comment_directive", "Comment directive that leaves the whole file untouched",
		"cssfmt-ignore-file", func(c *Config) *string { return &c.IgnoreFileCommentDirective }),

	stringListOption("ignore", "Glob patterns of files to skip",
		func(c *Config) *[]string { return &c.Ignore }),
}
