package cli

import (
	"errors"
	"fmt"
)

// Exit codes for cssfmt.
const (
	// ExitSuccess indicates every file was formatted (or already was).
	ExitSuccess = 0

	// ExitChanged indicates --check found files that would be reformatted.
	ExitChanged = 1

	// ExitFormatError indicates at least one file could not be formatted.
	ExitFormatError = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

var (
	// ErrFilesChanged is returned by --check when a file would change.
	ErrFilesChanged = errors.New("files would be reformatted")

	// ErrFormatFailed is returned when at least one file failed to format.
	ErrFormatFailed = errors.New("some files could not be formatted")

	// ErrInvalidUsage wraps flag and argument errors.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrConfig wraps configuration loading errors.
	ErrConfig = errors.New("configuration error")
)

// usageError marks err as a command-line usage error.
func usageError(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrFormatFailed):
		return ExitFormatError
	case errors.Is(err, ErrFilesChanged):
		return ExitChanged
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

// IsSilent reports whether err only signals an exit code and needs no log line.
func IsSilent(err error) bool {
	return errors.Is(err, ErrFilesChanged) || errors.Is(err, ErrFormatFailed)
}
