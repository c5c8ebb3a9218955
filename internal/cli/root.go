// Package cli provides the Cobra command structure for cssfmt.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cssfmt/internal/logging"
	"github.com/yaklabco/cssfmt/pkg/reporter"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	cwd        string
}

// NewRootCommand creates the root cssfmt command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	global := &globalFlags{}
	flags := &formatFlags{}

	rootCmd := &cobra.Command{
		Use:   "cssfmt [paths...]",
		Short: "A source-preserving formatter for CSS, SCSS, Sass and Less",
		Long: `cssfmt pretty-prints CSS, SCSS, indented Sass and Less stylesheets.

It keeps comments, blank-line grouping and the syntactic choices of the
source while normalizing spacing, indentation, quotes, colors and numbers.
Files are discovered recursively; .cssfmt.yml (or .yaml, .toml, .json)
configures the layout.`,
		Example: `  cssfmt styles/main.scss         # Print formatted output
  cssfmt --write .                # Format every stylesheet in place
  cssfmt --check src/             # Exit 1 if a file would change
  cssfmt --diff theme.less        # Show what would change
  cat a.css | cssfmt --syntax css # Format standard input`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if global.debug {
				level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, global, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&global.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&global.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&global.color, "color", reporter.ColorAuto,
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&global.cwd, "cwd", "", "working directory for discovery and config lookup")

	addFormatFlags(rootCmd, flags)

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newInitCommand(global))
	rootCmd.AddCommand(newConfigCommand(global))
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(global.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
