package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/cssfmt/internal/configloader"
	"github.com/yaklabco/cssfmt/internal/logging"
	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/reporter"
	"github.com/yaklabco/cssfmt/pkg/runner"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// stdinName is the display name of standard input.
const stdinName = "<stdin>"

type formatFlags struct {
	write         bool
	check         bool
	diff          bool
	listUnchanged bool
	compact       bool
	ignore        []string
	syntax        string
	stdinFilename string
	jobs          int
	format        string
	printWidth    int
	indentWidth   int
	useTabs       bool
	set           []string
	ranges        []string
}

func addFormatFlags(cmd *cobra.Command, flags *formatFlags) {
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "format files in place")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit with status 1 if any file would be reformatted")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a unified diff for every file that would change")
	cmd.Flags().BoolVar(&flags.listUnchanged, "list-unchanged", false, "also list files that are already formatted")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "print JSON output on one line")
	cmd.Flags().StringArrayVar(&flags.ignore, "ignore", nil, "glob pattern of files to skip (repeatable)")
	cmd.Flags().StringVar(&flags.syntax, "syntax", "", "force the syntax: css, scss, sass, less")
	cmd.Flags().StringVar(&flags.stdinFilename, "stdin-filename", stdinName,
		"file name used to detect the syntax of standard input")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText), "report format: text, json")

	cmd.Flags().IntVar(&flags.printWidth, "print-width", 0, "target line width")
	cmd.Flags().IntVar(&flags.indentWidth, "indent-width", 0, "columns per indentation level")
	cmd.Flags().BoolVar(&flags.useTabs, "use-tabs", false, "indent with tabs")
	cmd.Flags().StringArrayVar(&flags.set, "set", nil, "set a configuration option, as key=value (repeatable)")
	cmd.Flags().StringArrayVar(&flags.ranges, "range", nil,
		"only format statements intersecting the byte range START:END (repeatable, single input)")

	cmd.MarkFlagsMutuallyExclusive("write", "check")
}

// overrides collects configuration values given on the command line.
func (f *formatFlags) overrides(cmd *cobra.Command) (map[string]any, error) {
	overrides := make(map[string]any)

	for _, assignment := range f.set {
		key, value, ok := strings.Cut(assignment, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("--set %q: expected key=value", assignment)
		}
		overrides[configloader.CanonicalKey(strings.TrimSpace(key))] = value
	}

	if cmd.Flags().Changed("print-width") {
		overrides["print_width"] = f.printWidth
	}
	if cmd.Flags().Changed("indent-width") {
		overrides["indent_width"] = f.indentWidth
	}
	if cmd.Flags().Changed("use-tabs") {
		overrides["use_tabs"] = f.useTabs
	}

	return overrides, nil
}

func runFormat(cmd *cobra.Command, args []string, global *globalFlags, flags *formatFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cfg, workDir, err := loadConfig(ctx, cmd, global, flags)
	if err != nil {
		return err
	}

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		ExcludeGlobs: cfg.Ignore,
		Jobs:         cfg.Jobs,
		Write:        cfg.Write,
		Format:       cfg.FormatOptions(),
	}
	if cfg.Syntax != "" {
		syn, err := syntax.ParseSyntax(cfg.Syntax)
		if err != nil {
			return usageError(err)
		}
		runOpts.Syntax = &syn
	}
	if len(flags.ranges) > 0 {
		if len(args) > 1 {
			return usageError(errors.New("--range needs a single input"))
		}
		runOpts.Ranges, err = parseRanges(flags.ranges)
		if err != nil {
			return usageError(err)
		}
	}

	logger.Debug("starting format run",
		"paths", runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
		logging.FieldMode, mode(cfg),
	)

	fmtRunner := runner.New()

	var result *runner.Result
	if readsStdin(cmd, args, cfg.Write) {
		if cfg.Write {
			logger.Warn("--write has no effect on standard input")
		}
		result, err = formatStdin(cmd, fmtRunner, runOpts, flags.stdinFilename)
	} else {
		result, err = fmtRunner.Run(ctx, runOpts)
	}
	if err != nil {
		return fmt.Errorf("format run failed: %w", err)
	}

	for _, file := range result.Files {
		if file.Err != nil {
			logger.Error("format failed", logging.FieldError, file.Err)
		}
	}
	logger.Debug("format run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesFormatted, result.Stats.FilesFormatted,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
		logging.FieldDuration, result.Stats.Duration,
	)

	if err := present(ctx, cmd, cfg, global, flags, result); err != nil {
		return err
	}

	var errs []error
	if result.HasErrors() {
		errs = append(errs, ErrFormatFailed)
	}
	if cfg.Check && result.HasChanges() {
		errs = append(errs, ErrFilesChanged)
	}
	return errors.Join(errs...)
}

// loadConfig merges configuration files, environment and flags.
func loadConfig(
	ctx context.Context, cmd *cobra.Command, global *globalFlags, flags *formatFlags,
) (*config.Config, string, error) {
	logger := logging.FromContext(ctx)

	switch global.color {
	case reporter.ColorAuto, reporter.ColorAlways, reporter.ColorNever:
	default:
		return nil, "", usageError(fmt.Errorf("unknown color mode %q", global.color))
	}
	if !config.OutputFormat(flags.format).IsValid() {
		return nil, "", usageError(fmt.Errorf("unknown report format %q", flags.format))
	}
	for _, pattern := range flags.ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, "", usageError(fmt.Errorf("invalid ignore pattern %q", pattern))
		}
	}

	workDir, err := resolveWorkDir(global.cwd)
	if err != nil {
		return nil, "", err
	}

	overrides, err := flags.overrides(cmd)
	if err != nil {
		return nil, "", usageError(err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: global.configPath,
		Overrides:    overrides,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn("ignoring configuration value",
			logging.FieldKey, warning.Key,
			logging.FieldSource, warning.Source,
			logging.FieldError, warning.Message,
		)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	cfg.Write = flags.write
	cfg.Check = flags.check
	cfg.Diff = flags.diff
	cfg.Format = config.OutputFormat(flags.format)
	cfg.Jobs = flags.jobs
	cfg.Syntax = flags.syntax
	cfg.Ignore = append(cfg.Ignore, flags.ignore...)

	return cfg, workDir, nil
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve --cwd: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", usageError(fmt.Errorf("--cwd: %w", err))
	}
	if !info.IsDir() {
		return "", usageError(fmt.Errorf("--cwd: %s is not a directory", dir))
	}
	return abs, nil
}

// parseRanges parses START:END byte ranges.
func parseRanges(values []string) ([]syntax.Span, error) {
	spans := make([]syntax.Span, 0, len(values))
	for _, value := range values {
		startText, endText, ok := strings.Cut(value, ":")
		if !ok {
			return nil, fmt.Errorf("--range %q: expected START:END", value)
		}
		start, err := strconv.Atoi(strings.TrimSpace(startText))
		if err != nil {
			return nil, fmt.Errorf("--range %q: invalid start: %w", value, err)
		}
		end, err := strconv.Atoi(strings.TrimSpace(endText))
		if err != nil {
			return nil, fmt.Errorf("--range %q: invalid end: %w", value, err)
		}
		if start < 0 || end < start {
			return nil, fmt.Errorf("--range %q: end must not precede start", value)
		}
		spans = append(spans, syntax.Span{Start: start, End: end})
	}
	return spans, nil
}

// readsStdin reports whether input comes from standard input: either "-" is
// the only path, or no path is given, files are not being written and stdin
// is not a terminal.
func readsStdin(cmd *cobra.Command, args []string, write bool) bool {
	if len(args) == 1 && args[0] == "-" {
		return true
	}
	if len(args) > 0 || write {
		return false
	}
	in, ok := cmd.InOrStdin().(*os.File)
	return !ok || !term.IsTerminal(int(in.Fd()))
}

func formatStdin(cmd *cobra.Command, fmtRunner *runner.Runner, opts runner.Options, name string) (*runner.Result, error) {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read standard input: %w", err)
	}
	return runner.NewResult(fmtRunner.FormatSource(name, content, opts)), nil
}

// present writes the formatted output or a report, depending on the mode.
func present(
	ctx context.Context, cmd *cobra.Command, cfg *config.Config, global *globalFlags, flags *formatFlags,
	result *runner.Result,
) error {
	if mode(cfg) == "print" && cfg.Format == config.FormatText {
		out := cmd.OutOrStdout()
		for _, file := range result.Files {
			if file.Err != nil {
				continue
			}
			if _, err := io.WriteString(out, file.Formatted); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		return nil
	}

	rep, err := reporter.New(reporter.Options{
		Writer:        cmd.OutOrStdout(),
		Format:        cfg.Format,
		Color:         global.color,
		Write:         cfg.Write,
		Diff:          cfg.Diff,
		ListUnchanged: flags.listUnchanged,
		ShowSummary:   true,
		Compact:       flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}

// mode names what the run does with formatted content.
func mode(cfg *config.Config) string {
	switch {
	case cfg.Write:
		return "write"
	case cfg.Check:
		return "check"
	case cfg.Diff:
		return "diff"
	default:
		return "print"
	}
}
