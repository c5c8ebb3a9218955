package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileFormat is the serialization of a configuration file.
type FileFormat string

const (
	FileFormatYAML FileFormat = "yaml"
	FileFormatTOML FileFormat = "toml"
	FileFormatJSON FileFormat = "json"
)

// IsValid returns true if the file format is known.
func (f FileFormat) IsValid() bool {
	switch f {
	case FileFormatYAML, FileFormatTOML, FileFormatJSON:
		return true
	default:
		return false
	}
}

// ToYAML serializes the configuration to YAML format.
// It produces human-readable output with appropriate formatting.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToTOML serializes the configuration to TOML format.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// ToJSON serializes the configuration to indented JSON.
func (c *Config) ToJSON() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return append(data, '\n'), nil
}

// Marshal serializes the configuration in the given file format.
func (c *Config) Marshal(format FileFormat) ([]byte, error) {
	switch format {
	case FileFormatYAML:
		return c.ToYAML()
	case FileFormatTOML:
		return c.ToTOML()
	case FileFormatJSON:
		return c.ToJSON()
	default:
		return nil, fmt.Errorf("unknown config format %q", format)
	}
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes on top of the defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Ignore = slices.Clone(c.Ignore)

	lang := &clone.LanguageOptions
	for _, field := range []**bool{
		&lang.SelectorsPreferSingleLine,
		&lang.FunctionArgsPreferSingleLine,
		&lang.SassContentAtRulePreferSingleLine,
		&lang.SassIncludeAtRulePreferSingleLine,
		&lang.SassMapPreferSingleLine,
		&lang.SassModuleConfigPreferSingleLine,
		&lang.SassParamsPreferSingleLine,
		&lang.LessImportOptionsPreferSingleLine,
		&lang.LessMixinArgsPreferSingleLine,
		&lang.LessMixinParamsPreferSingleLine,
		&lang.TopLevelDeclarationsPreferSingleLine,
	} {
		if *field != nil {
			value := **field
			*field = &value
		}
	}

	return &clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
