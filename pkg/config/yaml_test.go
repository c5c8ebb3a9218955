package config_test

import (
	"encoding/json"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cssfmt/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		clone := c.Clone()
		assert.Nil(t, clone)
	})

	t.Run("deep copies Ignore slice", func(t *testing.T) {
		original := &config.Config{
			Ignore: []string{"*.min.css", "vendor/**"},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original.Ignore, clone.Ignore)

		clone.Ignore[0] = "changed"
		assert.Equal(t, "*.min.css", original.Ignore[0])
	})

	t.Run("deep copies optional booleans", func(t *testing.T) {
		enabled := true
		original := config.NewConfig()
		original.SassMapPreferSingleLine = &enabled

		clone := original.Clone()
		require.NotNil(t, clone.SassMapPreferSingleLine)
		assert.NotSame(t, original.SassMapPreferSingleLine, clone.SassMapPreferSingleLine)

		*clone.SassMapPreferSingleLine = false
		assert.True(t, *original.SassMapPreferSingleLine)
	})

	t.Run("preserves CLI fields", func(t *testing.T) {
		original := config.NewConfig()
		original.Write = true
		original.Check = true
		original.Jobs = 4
		original.Format = config.FormatJSON
		original.Syntax = "scss"

		clone := original.Clone()
		assert.Equal(t, original, clone)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("options are flattened", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.PrintWidth = 100
		cfg.Quotes = config.QuotesPreferSingle

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "print_width: 100")
		assert.Contains(t, string(data), "quotes: prefer-single")
		assert.NotContains(t, string(data), "layoutoptions")
		assert.NotContains(t, string(data), "jobs")
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte(`
print_width: 120
hex_case: upper
ignore:
  - "dist/**"
`))
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.PrintWidth)
	assert.Equal(t, config.HexCaseUpper, cfg.HexCase)
	assert.Equal(t, []string{"dist/**"}, cfg.Ignore)
	// Unset keys keep their defaults.
	assert.Equal(t, 2, cfg.IndentWidth)
	assert.Equal(t, config.QuotesAlwaysDouble, cfg.Quotes)
}

func TestMarshalFormats(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.IndentWidth = 4

	tomlData, err := cfg.Marshal(config.FileFormatTOML)
	require.NoError(t, err)
	decoded := map[string]any{}
	_, err = toml.Decode(string(tomlData), &decoded)
	require.NoError(t, err)
	assert.EqualValues(t, 4, decoded["indent_width"])

	jsonData, err := cfg.Marshal(config.FileFormatJSON)
	require.NoError(t, err)
	decoded = map[string]any{}
	require.NoError(t, json.Unmarshal(jsonData, &decoded))
	assert.EqualValues(t, 4, decoded["indent_width"])
	assert.Equal(t, "lf", decoded["line_break"])

	_, err = cfg.Marshal("ini")
	require.Error(t, err)
}
