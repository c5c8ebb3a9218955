// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, layered merging of
// YAML, TOML and JSON files, environment variable support and validation.
package configloader

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/yaklabco/cssfmt/internal/logging"
	"github.com/yaklabco/cssfmt/pkg/config"
)

// flagsSource labels values passed through LoadOptions.Overrides.
const flagsSource = "flags"

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// It is loaded on top of the discovered files.
	ExplicitPath string

	// UserConfigDir replaces $XDG_CONFIG_HOME/cssfmt when not empty.
	UserConfigDir string

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Environ replaces the process environment when not nil.
	Environ []string

	// Overrides contains option values from CLI flags.
	// These take highest precedence.
	Overrides map[string]any
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Origins maps every explicitly set option to the source it came from.
	Origins map[string]string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []Diagnostic
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.Overrides)
//  2. Environment variables (CSSFMT_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.cssfmt.{yml,yaml,toml,json} upward search)
//  5. User config ($XDG_CONFIG_HOME/cssfmt/config.yaml)
//  6. Defaults
//
// Files that cannot be read or parsed are errors. Unknown keys and invalid
// values are warnings and keep the lower-precedence value.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir, opts.UserConfigDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}

	var layers []settings
	addFile := func(kind, path string) error {
		values, err := loadConfigFile(path)
		if err != nil {
			return fmt.Errorf("load %s config %s: %w", kind, path, err)
		}
		logger.Debug("loaded config", logging.FieldPath, path, logging.FieldSource, kind)
		layers = append(layers, newSettings(values, path))
		result.LoadedFrom = append(result.LoadedFrom, path)
		return nil
	}

	if !opts.IgnoreUserConfig && paths.User != "" {
		if err := addFile("user", paths.User); err != nil {
			return nil, err
		}
	}
	if !opts.IgnoreProjectConfig && paths.Project != "" {
		if err := addFile("project", paths.Project); err != nil {
			return nil, err
		}
	}
	if opts.ExplicitPath != "" {
		if err := addFile("explicit", opts.ExplicitPath); err != nil {
			return nil, err
		}
	}
	if !opts.IgnoreEnv {
		layers = append(layers, loadFromEnv(opts.Environ))
	}
	if opts.Overrides != nil {
		layers = append(layers, newSettings(opts.Overrides, flagsSource))
	}

	merged := mergeAll(layers...)

	cfg := config.NewConfig()
	result.Warnings = apply(cfg, merged)
	result.Config = cfg

	result.Origins = make(map[string]string, len(merged))
	for _, key := range slices.Sorted(maps.Keys(merged)) {
		if _, known := config.LookupOption(key); known {
			result.Origins[key] = merged[key].source
		}
	}

	return result, nil
}
