package config_test

import (
	"errors"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/cssfmt/pkg/config"
)

func TestOptionApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key     string
		value   any
		check   func(t *testing.T, cfg *config.Config)
		wantErr bool
	}{
		{
			key:   "print_width",
			value: 100,
			check: func(t *testing.T, cfg *config.Config) { t.Helper(); assert.Equal(t, 100, cfg.PrintWidth) },
		},
		{
			key:   "print_width",
			value: float64(120),
			check: func(t *testing.T, cfg *config.Config) { t.Helper(); assert.Equal(t, 120, cfg.PrintWidth) },
		},
		{key: "print_width", value: 1.5, wantErr: true},
		{key: "print_width", value: 0, wantErr: true},
		{
			key:   "use_tabs",
			value: "true",
			check: func(t *testing.T, cfg *config.Config) { t.Helper(); assert.True(t, cfg.UseTabs) },
		},
		{key: "use_tabs", value: "maybe", wantErr: true},
		{
			key:   "quotes",
			value: "alwaysSingle",
			check: func(t *testing.T, cfg *config.Config) { t.Helper(); assert.Equal(t, config.QuotesAlwaysSingle, cfg.Quotes) },
		},
		{
			key:   "quotes",
			value: "prefer_double",
			check: func(t *testing.T, cfg *config.Config) { t.Helper(); assert.Equal(t, config.QuotesPreferDouble, cfg.Quotes) },
		},
		{key: "quotes", value: "backtick", wantErr: true},
		{
			key:   "declaration_order",
			value: nil,
			check: func(t *testing.T, cfg *config.Config) { t.Helper(); assert.Equal(t, config.DeclarationOrderNone, cfg.DeclarationOrder) },
		},
		{key: "hex_case", value: nil, wantErr: true},
		{
			key:   "sass_map_prefer_single_line",
			value: true,
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				require.NotNil(t, cfg.SassMapPreferSingleLine)
				assert.True(t, *cfg.SassMapPreferSingleLine)
			},
		},
		{
			key:   "ignore",
			value: []any{"a/**", "b.css"},
			check: func(t *testing.T, cfg *config.Config) { t.Helper(); assert.Equal(t, []string{"a/**", "b.css"}, cfg.Ignore) },
		},
		{
			key:   "ignore",
			value: "a/**, b.css",
			check: func(t *testing.T, cfg *config.Config) { t.Helper(); assert.Equal(t, []string{"a/**", "b.css"}, cfg.Ignore) },
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.key, func(t *testing.T) {
			t.Parallel()

			option, ok := config.LookupOption(testCase.key)
			require.True(t, ok)

			cfg := config.NewConfig()
			err := option.Apply(cfg, testCase.value)
			if testCase.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, config.ErrInvalidValue))
				return
			}
			require.NoError(t, err)
			testCase.check(t, cfg)
		})
	}
}

func TestOptionKeysMatchFileKeys(t *testing.T) {
	t.Parallel()

	enabled := true
	cfg := config.NewConfig()
	cfg.HexColorLength = config.HexColorLengthShort
	cfg.DeclarationOrder = config.DeclarationOrderSmacss
	cfg.SingleLineBlockThreshold = 1
	cfg.KeyframeSelectorNotation = config.KeyframeSelectorNotationKeyword
	cfg.Ignore = []string{"x"}
	lang := &cfg.LanguageOptions
	for _, field := range []**bool{
		&lang.SelectorsPreferSingleLine, &lang.FunctionArgsPreferSingleLine,
		&lang.SassContentAtRulePreferSingleLine, &lang.SassIncludeAtRulePreferSingleLine,
		&lang.SassMapPreferSingleLine, &lang.SassModuleConfigPreferSingleLine,
		&lang.SassParamsPreferSingleLine, &lang.LessImportOptionsPreferSingleLine,
		&lang.LessMixinArgsPreferSingleLine, &lang.LessMixinParamsPreferSingleLine,
		&lang.TopLevelDeclarationsPreferSingleLine,
	} {
		*field = &enabled
	}

	data, err := cfg.ToYAML()
	require.NoError(t, err)

	fileKeys := map[string]any{}
	require.NoError(t, yaml.Unmarshal(data, &fileKeys))

	options := config.Options()
	assert.Len(t, fileKeys, len(options))
	for _, option := range options {
		assert.Contains(t, fileKeys, option.Key)
	}
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal yaml parses", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)
		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.NewConfig().FormatOptions(), cfg.FormatOptions())
	})

	t.Run("full yaml documents every option", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)
		for _, option := range config.Options() {
			if option.Kind == config.KindStringList {
				continue
			}
			assert.Contains(t, string(data), option.Key+":")
		}
	})

	t.Run("toml decodes", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Format: config.FileFormatTOML})
		require.NoError(t, err)
		decoded := map[string]any{}
		_, err = toml.Decode(string(data), &decoded)
		require.NoError(t, err)
		assert.EqualValues(t, 80, decoded["print_width"])
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := config.GenerateTemplate(config.TemplateOptions{Format: "ini"})
		require.Error(t, err)
	})
}
