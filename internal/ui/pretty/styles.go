// Package pretty renders conversion problems and summaries for a terminal
// with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/flashforge/pkg/analysis"
)

// ANSI 256 palette indexes.
const (
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorBlue   = "12"
	colorGrey   = "8"
	colorSilver = "7"
)

// Styles holds every style the reporters use. Without color each one is
// the zero style and renders text unchanged.
type Styles struct {
	// Error marks invalid cards and unreadable files, Warning skipped
	// input, Info possible duplicates.
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath lipgloss.Style
	Location lipgloss.Style
	Kind     lipgloss.Style
	Message  lipgloss.Style
	Front    lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	// Row styles tint the first cell of a summary row by category.
	RowInvalid   lipgloss.Style
	RowSkipped   lipgloss.Style
	RowDuplicate lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	plain := lipgloss.NewStyle()
	if !colorEnabled {
		return &Styles{
			Error: plain, Warning: plain, Info: plain,
			FilePath: plain, Location: plain, Kind: plain, Message: plain, Front: plain,
			SummaryTitle: plain, SummaryValue: plain, Success: plain, Failure: plain,
			TableHeader: plain, TableLegend: plain, TableSeparator: plain,
			RowInvalid: plain, RowSkipped: plain, RowDuplicate: plain,
			Dim: plain, Bold: plain,
		}
	}

	fg := func(color string) lipgloss.Style {
		return plain.Foreground(lipgloss.Color(color))
	}

	return &Styles{
		Error:   fg(colorRed).Bold(true),
		Warning: fg(colorYellow).Bold(true),
		Info:    fg(colorBlue).Bold(true),

		FilePath: plain.Bold(true),
		Location: fg(colorGrey),
		Kind:     fg(colorGrey),
		Message:  plain,
		Front:    fg(colorSilver).Italic(true),

		SummaryTitle: plain.Bold(true),
		SummaryValue: plain,
		Success:      fg(colorGreen).Bold(true),
		Failure:      fg(colorRed).Bold(true),

		TableHeader:    fg(colorSilver).Bold(true),
		TableLegend:    fg(colorGrey).Italic(true),
		TableSeparator: fg(colorGrey),

		RowInvalid:   fg(colorRed),
		RowSkipped:   fg(colorYellow),
		RowDuplicate: fg(colorBlue),

		Dim:  fg(colorGrey),
		Bold: plain.Bold(true),
	}
}

// Row returns the row style for category; unknown categories are plain.
func (s *Styles) Row(category analysis.Category) lipgloss.Style {
	switch category {
	case analysis.CategoryInvalid:
		return s.RowInvalid
	case analysis.CategoryDiagnostic:
		return s.RowSkipped
	case analysis.CategoryDuplicate:
		return s.RowDuplicate
	default:
		return lipgloss.NewStyle()
	}
}

// IsColorEnabled resolves a --color mode against the writer. "always" and
// "never" are absolute; anything else is auto, which wants a terminal and
// no NO_COLOR in the environment.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
