package reporter

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains the styled renderers for report output.
type Styles struct {
	FilePath lipgloss.Style
	Changed  lipgloss.Style
	Written  lipgloss.Style
	Error    lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	Success lipgloss.Style
	Failure lipgloss.Style
	Dim     lipgloss.Style
	Bold    lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode. Styles render
// single lines and leave tabs alone.
func NewStyles(colorEnabled bool) *Styles {
	base := lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)

	if !colorEnabled {
		plain := base
		return &Styles{
			FilePath: plain, Changed: plain, Written: plain, Error: plain,
			DiffHeader: plain, DiffHunk: plain, DiffAdd: plain, DiffRemove: plain, DiffContext: plain,
			Success: plain, Failure: plain, Dim: plain, Bold: plain,
		}
	}

	return &Styles{
		FilePath: base.Bold(true),
		Changed:  base.Foreground(lipgloss.Color("11")),
		Written:  base.Foreground(lipgloss.Color("10")),
		Error:    base.Foreground(lipgloss.Color("9")).Bold(true),

		DiffHeader:  base.Bold(true),
		DiffHunk:    base.Foreground(lipgloss.Color("14")),
		DiffAdd:     base.Foreground(lipgloss.Color("10")),
		DiffRemove:  base.Foreground(lipgloss.Color("9")),
		DiffContext: base.Foreground(lipgloss.Color("8")),

		Success: base.Foreground(lipgloss.Color("10")).Bold(true),
		Failure: base.Foreground(lipgloss.Color("9")).Bold(true),
		Dim:     base.Foreground(lipgloss.Color("8")),
		Bold:    base.Bold(true),
	}
}

// Color modes accepted by IsColorEnabled.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// IsColorEnabled determines if color should be enabled based on mode and writer.
// In auto mode, color is enabled only if the writer is a terminal and NO_COLOR
// is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
