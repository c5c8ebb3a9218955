package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/cssfmt/pkg/config"
)

// Diagnostic is a non-fatal configuration problem. The offending value is
// ignored and the previous value, usually the default, is kept.
type Diagnostic struct {
	// Key is the normalized option name.
	Key string

	// Message describes the problem.
	Message string

	// Source is the file, "environment" or "flags" the value came from.
	// Empty for values passed to Resolve.
	Source string
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	var parts []string
	if d.Source != "" {
		parts = append(parts, d.Source)
	}
	if d.Key != "" {
		parts = append(parts, d.Key)
	}
	parts = append(parts, d.Message)
	return strings.Join(parts, ": ")
}

// Resolve builds format options from a flat key/value map, as handed over by
// an editor or another host. Keys may be camelCase, kebab-case or snake_case.
// Unknown keys and invalid values are reported and leave the default in place.
func Resolve(values map[string]any) (config.FormatOptions, []Diagnostic) {
	cfg := config.NewConfig()
	diagnostics := apply(cfg, newSettings(values, ""))
	return cfg.FormatOptions(), diagnostics
}

// apply stores every setting in cfg in key order.
func apply(cfg *config.Config, values settings) []Diagnostic {
	var diagnostics []Diagnostic

	for _, key := range slices.Sorted(maps.Keys(values)) {
		entry := values[key]

		option, ok := config.LookupOption(key)
		if !ok {
			diagnostics = append(diagnostics, Diagnostic{
				Key:     key,
				Message: "unknown option; it will be ignored",
				Source:  entry.source,
			})
			continue
		}

		if err := option.Apply(cfg, entry.value); err != nil {
			diagnostics = append(diagnostics, Diagnostic{
				Key:     key,
				Message: err.Error(),
				Source:  entry.source,
			})
		}
	}

	return append(diagnostics, validateIgnorePatterns(cfg, values)...)
}

// validateIgnorePatterns drops malformed glob patterns from cfg.Ignore.
func validateIgnorePatterns(cfg *config.Config, values settings) []Diagnostic {
	var diagnostics []Diagnostic

	valid := cfg.Ignore[:0]
	for _, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			diagnostics = append(diagnostics, Diagnostic{
				Key:     "ignore",
				Message: fmt.Sprintf("invalid glob pattern %q", pattern),
				Source:  values["ignore"].source,
			})
			continue
		}
		valid = append(valid, pattern)
	}
	cfg.Ignore = valid

	return diagnostics
}
