package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/flashforge/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 cards (10 valid, 2 invalid) from 3 files, 1 line skipped, 9 exportable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	fileWord := plural(stats.FilesProcessed, wordFile, wordFiles)

	if stats.Invalid == 0 && stats.Diagnostics == 0 && stats.FilesErrored == 0 {
		msg := s.Success.Render(fmt.Sprintf("%d %s valid", stats.Candidates, plural(stats.Candidates, "card", "cards"))) +
			s.Dim.Render(fmt.Sprintf(" (%d %s converted)", stats.FilesProcessed, fileWord))
		if stats.Removed > 0 {
			msg += ", " + s.Info.Render(fmt.Sprintf("%d %s removed", stats.Removed, plural(stats.Removed, "duplicate", "duplicates")))
		}
		return msg + "\n"
	}

	var parts []string

	counts := []string{s.Success.Render(fmt.Sprintf("%d valid", stats.Valid))}
	if stats.Invalid > 0 {
		counts = append(counts, s.Error.Render(fmt.Sprintf("%d invalid", stats.Invalid)))
	}
	parts = append(parts, fmt.Sprintf("%d %s (%s) from %d %s",
		stats.Candidates, plural(stats.Candidates, "card", "cards"),
		strings.Join(counts, ", "), stats.FilesProcessed, fileWord))

	if stats.Diagnostics > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s skipped",
			stats.Diagnostics, plural(stats.Diagnostics, "line", "lines"))))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s unreadable",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles))))
	}

	if stats.Removed > 0 {
		parts = append(parts, s.Info.Render(fmt.Sprintf("%d %s removed",
			stats.Removed, plural(stats.Removed, "duplicate", "duplicates"))))
	}

	parts = append(parts, fmt.Sprintf("%d exportable", stats.Exportable))

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", value))
	}

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files converted", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesErrored > 0 {
		row("Files unreadable", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}
	if stats.FilesWithProblems > 0 {
		row("Files with problems", s.Warning.Render(strconv.Itoa(stats.FilesWithProblems)))
	}

	builder.WriteString("\n")

	row("Cards", s.SummaryValue.Render(strconv.Itoa(stats.Candidates)))
	row("  Valid", s.Success.Render(strconv.Itoa(stats.Valid)))
	if stats.Invalid > 0 {
		row("  Invalid", s.Error.Render(strconv.Itoa(stats.Invalid)))
	}
	if stats.Diagnostics > 0 {
		row("Lines skipped", s.Warning.Render(strconv.Itoa(stats.Diagnostics)))
	}
	if stats.DuplicateGroups > 0 {
		row("Duplicate groups", s.Info.Render(strconv.Itoa(stats.DuplicateGroups)))
		row("Duplicates removed", s.Info.Render(strconv.Itoa(stats.Removed)))
	}
	row("Exportable", s.SummaryValue.Render(strconv.Itoa(stats.Exportable)))

	builder.WriteString("\n")

	switch {
	case stats.Invalid > 0 || stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Conversion found invalid cards"))
	case stats.Diagnostics > 0:
		builder.WriteString(s.Warning.Render("Conversion skipped some input"))
	default:
		builder.WriteString(s.Success.Render("Conversion passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
