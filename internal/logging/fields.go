// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldSource     = "source"
	FieldWorkingDir = "working_dir"
	FieldKey        = "key"

	// Formatting fields.
	FieldSyntax   = "syntax"
	FieldJobs     = "jobs"
	FieldDuration = "duration"
	FieldMode     = "mode"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesFormatted  = "files_formatted"
	FieldFilesChanged    = "files_changed"
	FieldFilesFailed     = "files_failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
