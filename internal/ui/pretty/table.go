package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/yaklabco/flashforge/pkg/analysis"
	"github.com/yaklabco/flashforge/pkg/runner"
)

// Table layout constants.
const (
	defaultTermWidth = 100
	minMessageWidth  = 30
	maxFileWidth     = 40
)

// Align is the horizontal alignment of a table column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// RenderTable renders headers and rows as a bordered table no wider than
// width. Missing cells render empty.
func RenderTable(headers []string, rows [][]string, aligns []Align, width int) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	if width > 0 {
		tw.SetAllowedRowLength(width)
	}

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// TableFormatter formats problems as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatProblems renders every problem of the report in one table.
func (t *TableFormatter) FormatProblems(report *analysis.Report) string {
	if report == nil || len(report.Problems) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetAllowedRowLength(t.termWidth)
	if t.colorEnabled {
		tw.Style().Color.Header = text.Colors{text.Bold}
	}
	tw.AppendHeader(table.Row{"FILE", "LINE", "CATEGORY", "KIND", "MESSAGE"})

	for _, p := range report.Problems {
		line := ""
		if p.Line > 0 {
			line = strconv.Itoa(p.Line)
		}
		tw.AppendRow(table.Row{
			truncateFilePath(p.FilePath, maxFileWidth),
			line,
			t.styles.FormatCategory(p.Category),
			p.Kind,
			p.Message,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 5, WidthMin: minMessageWidth, WidthMax: t.messageWidth()},
	})

	return tw.Render() + "\n" + t.formatLegend() + "\n"
}

// messageWidth leaves the message column whatever the other columns and
// borders do not need.
func (t *TableFormatter) messageWidth() int {
	const otherColumns = maxFileWidth + 6 + 10 + 26 + 16
	return max(minMessageWidth, t.termWidth-otherColumns)
}

// formatLegend explains the category labels.
func (t *TableFormatter) formatLegend() string {
	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = not exported  %s = input not turned into a card  %s = possible copy",
		t.styles.FormatCategory(analysis.CategoryInvalid),
		t.styles.FormatCategory(analysis.CategoryDiagnostic),
		t.styles.FormatCategory(analysis.CategoryDuplicate),
	))
}

// FormatTableSummary formats a summary line for table output.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{
		fmt.Sprintf("%d files converted", stats.FilesProcessed),
		t.styles.Success.Render(fmt.Sprintf("%d valid", stats.Valid)),
	}

	if stats.Invalid > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d invalid", stats.Invalid)))
	}
	if stats.Diagnostics > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d skipped", stats.Diagnostics)))
	}
	if stats.DuplicateGroups > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d duplicate groups", stats.DuplicateGroups)))
	}
	parts = append(parts, fmt.Sprintf("%d exportable", stats.Exportable))

	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateFilePath truncates a file path, preserving the end (filename) rather than beginning.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
