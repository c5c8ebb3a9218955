package configloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/cssfmt/pkg/config"
)

// FileFormatOf returns the serialization of a config file judged by its
// extension. Unknown extensions are read as YAML, which also accepts JSON.
func FileFormatOf(path string) config.FileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return config.FileFormatTOML
	case ".json":
		return config.FileFormatJSON
	default:
		return config.FileFormatYAML
	}
}

// loadConfigFile reads a config file into a generic key/value map.
func loadConfigFile(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return decodeConfig(content, FileFormatOf(path))
}

func decodeConfig(content []byte, format config.FileFormat) (map[string]any, error) {
	values := map[string]any{}

	switch format {
	case config.FileFormatTOML:
		if _, err := toml.Decode(string(content), &values); err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
	case config.FileFormatJSON:
		if err := json.Unmarshal(content, &values); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(content, &values); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	}

	return values, nil
}
