// Package config defines core configuration types for cssfmt.
// These types are pure data structures with no dependency on how they are
// discovered or merged.
package config

// OutputFormat specifies the format of the run summary.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	return f == FormatText || f == FormatJSON
}

// Config is the root configuration structure of a cssfmt run. The layout and
// language options are flattened into the top level of configuration files.
type Config struct {
	LayoutOptions   `yaml:",inline"`
	LanguageOptions `yaml:",inline"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `json:"ignore,omitempty" toml:"ignore,omitempty" yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Write formats files in place.
	Write bool `json:"-" toml:"-" yaml:"-"`

	// Check reports files whose formatting would change.
	Check bool `json:"-" toml:"-" yaml:"-"`

	// Diff prints a unified diff for every changed file.
	Diff bool `json:"-" toml:"-" yaml:"-"`

	// Format specifies the summary format.
	Format OutputFormat `json:"-" toml:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `json:"-" toml:"-" yaml:"-"`

	// Syntax forces the dialect of every input.
	Syntax string `json:"-" toml:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		LayoutOptions:   DefaultLayoutOptions(),
		LanguageOptions: DefaultLanguageOptions(),
		Ignore:          nil,
		Format:          FormatText,
		Jobs:            0, // 0 means use GOMAXPROCS
	}
}

// FormatOptions returns the options passed to the formatter.
func (c *Config) FormatOptions() FormatOptions {
	if c == nil {
		return DefaultFormatOptions()
	}
	return FormatOptions{
		Layout:   c.LayoutOptions,
		Language: c.LanguageOptions,
	}
}
