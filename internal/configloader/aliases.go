package configloader

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// keyAliases maps alternative option names to their canonical keys. Aliases
// are matched after snake_case normalization.
//
//nolint:gochecknoglobals // Read-only lookup table.
var keyAliases = map[string]string{
	"line_width":                  "print_width",
	"indent_size":                 "indent_width",
	"new_line_kind":               "line_break",
	"newline_kind":                "line_break",
	"linebreak":                   "line_break",
	"operator_line_break":         "operator_linebreak",
	"block_selector_line_break":   "block_selector_linebreak",
	"line_break_in_pseudo_parens": "linebreak_in_pseudo_parens",
}

// CanonicalKey normalizes an option name written in camelCase, kebab-case or
// snake_case to the snake_case key used by the option table.
func CanonicalKey(key string) string {
	normalized := strcase.ToSnake(strings.TrimSpace(key))
	if canonical, ok := keyAliases[normalized]; ok {
		return canonical
	}
	return normalized
}
