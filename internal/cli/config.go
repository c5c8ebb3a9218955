package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cssfmt/internal/configloader"
	"github.com/yaklabco/cssfmt/internal/logging"
	"github.com/yaklabco/cssfmt/pkg/config"
)

type configFlags struct {
	format  string
	origins bool
	env     bool
}

func newConfigCommand(global *globalFlags) *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long: `Print the configuration that applies in the working directory, after
merging the user config, the project config, --config and CSSFMT_*
environment variables.`,
		Example: `  cssfmt config                   Print the merged configuration as YAML
  cssfmt config --origins         Show where every explicit value came from
  cssfmt config --env             List the supported environment variables`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", string(config.FileFormatYAML), "output format: yaml, toml or json")
	cmd.Flags().BoolVar(&flags.origins, "origins", false, "print the source of every explicitly set option")
	cmd.Flags().BoolVar(&flags.env, "env", false, "list environment variables and the options they set")
	cmd.MarkFlagsMutuallyExclusive("origins", "env")

	return cmd
}

func runConfig(cmd *cobra.Command, global *globalFlags, flags *configFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	out := cmd.OutOrStdout()

	if flags.env {
		return writePairs(out, configloader.ListEnvVars())
	}

	format := config.FileFormat(flags.format)
	if !format.IsValid() {
		return usageError(fmt.Errorf("invalid format %q: must be yaml, toml or json", flags.format))
	}

	workDir, err := resolveWorkDir(global.cwd)
	if err != nil {
		return err
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: global.configPath,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConfig, err)
	}
	for _, warning := range result.Warnings {
		logger.Warn("ignoring configuration value",
			logging.FieldKey, warning.Key,
			logging.FieldSource, warning.Source,
			logging.FieldError, warning.Message,
		)
	}

	if flags.origins {
		return writePairs(out, result.Origins)
	}

	content, err := result.Config.Marshal(format)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if _, err := out.Write(content); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// writePairs prints "key: value" lines in key order.
func writePairs(out io.Writer, pairs map[string]string) error {
	for _, key := range slices.Sorted(maps.Keys(pairs)) {
		if _, err := fmt.Fprintf(out, "%s: %s\n", key, pairs[key]); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
