package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cssfmt/internal/logging"
	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand(global *globalFlags) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .cssfmt.yml configuration file",
		Long: `Create a new .cssfmt.yml configuration file in the current directory.
The minimal template lists the layout options; --full documents every option
with its default value.`,
		Example: `  cssfmt init                     Create a minimal .cssfmt.yml
  cssfmt init --full              Document every option
  cssfmt init --format toml       Create .cssfmt.toml instead
  cssfmt init -o styles/.cssfmt.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, global, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every option")
	cmd.Flags().StringVar(&flags.format, "format", string(config.FileFormatYAML), "file format: yaml, toml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .cssfmt.<format>)")

	return cmd
}

func runInit(cmd *cobra.Command, global *globalFlags, flags *initFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	format := config.FileFormat(flags.format)
	if !format.IsValid() {
		return usageError(fmt.Errorf("invalid format %q: must be yaml, toml or json", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		ext := string(format)
		if format == config.FileFormatYAML {
			ext = "yml"
		}
		outputPath = ".cssfmt." + ext
	}

	workDir, err := resolveWorkDir(global.cwd)
	if err != nil {
		return err
	}
	absPath := outputPath
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(workDir, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteNew(ctx, absPath, content, flags.force); err != nil {
		if errors.Is(err, os.ErrExist) {
			return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		return fmt.Errorf("write config: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	return nil
}
