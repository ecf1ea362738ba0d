package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/flashforge/internal/ui/pretty"
	"github.com/yaklabco/flashforge/pkg/analysis"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 90 // Width of table separators (same for both tables).
	kindColWidth      = 32 // Width of the problem kind column.
	categoryColWidth  = 11 // Width of the category column.
	fileColWidth      = 50 // Width of the file path column.
	numColWidth       = 9  // Width of numeric columns.
	maxKindNameLength = 30 // Maximum characters for a kind before truncation.
	maxFilePathLength = 48 // Maximum characters for a file path before truncation.
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if !report.Totals.HasProblems() && report.Totals.FilesErrored == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No problems found"))
		fmt.Fprintln(r.out)
		r.renderTotals(report.Totals)
		return nil
	}

	if r.opts.SummaryOrder == SummaryOrderFiles {
		r.renderFileTable(report.ByFile)
		fmt.Fprintln(r.out)
		r.renderKindTable(report.ByKind)
	} else {
		r.renderKindTable(report.ByKind)
		fmt.Fprintln(r.out)
		r.renderFileTable(report.ByFile)
	}

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) separator() {
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryRenderer) renderKindTable(kinds []analysis.KindAnalysis) {
	if len(kinds) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Problems by Kind"))
	r.separator()

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Kind", kindColWidth)),
		r.styles.TableHeader.Render(padRight("Category", categoryColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Files", numColWidth)),
	)
	r.separator()

	for _, kind := range kinds {
		name := kind.Kind
		if len(name) > maxKindNameLength {
			name = name[:maxKindNameLength] + "…"
		}

		fmt.Fprintf(r.out, "%s %s %s %s\n",
			r.styles.Row(kind.Category).Render(padRight(name, kindColWidth)),
			padRight(string(kind.Category), categoryColWidth),
			padLeft(strconv.Itoa(kind.Count), numColWidth),
			padLeft(strconv.Itoa(len(kind.Files)), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Problems by File"))
	r.separator()

	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Invalid", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Skipped", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Dupes", numColWidth)),
	)
	r.separator()

	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		paddedPath := padRight(path, fileColWidth)
		if file.Error != "" {
			fmt.Fprintf(r.out, "%s %s\n",
				r.styles.RowInvalid.Render(paddedPath),
				r.styles.Error.Render("error: "+file.Error),
			)
			continue
		}

		styledPath := paddedPath
		switch {
		case file.Invalid > 0:
			styledPath = r.styles.RowInvalid.Render(paddedPath)
		case file.Diagnostics > 0:
			styledPath = r.styles.RowSkipped.Render(paddedPath)
		}

		fmt.Fprintf(r.out, "%s %s %s %s\n",
			styledPath,
			padLeft(strconv.Itoa(file.Invalid), numColWidth),
			padLeft(strconv.Itoa(file.Diagnostics), numColWidth),
			padLeft(strconv.Itoa(file.Duplicates), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	problemWord := "problems"
	if totals.Problems == 1 {
		problemWord = "problem"
	}

	var breakdown []string
	if totals.Invalid > 0 {
		breakdown = append(breakdown, r.styles.Error.Render(fmt.Sprintf("%d invalid cards", totals.Invalid)))
	}
	if totals.Diagnostics > 0 {
		breakdown = append(breakdown, r.styles.Warning.Render(fmt.Sprintf("%d skipped", totals.Diagnostics)))
	}
	if totals.Duplicates > 0 {
		breakdown = append(breakdown, r.styles.Info.Render(fmt.Sprintf("%d duplicate groups", totals.Duplicates)))
	}

	line := fmt.Sprintf("%d %s", totals.Problems, problemWord)
	if len(breakdown) > 0 {
		line += " (" + strings.Join(breakdown, ", ") + ")"
	}

	fileWord := "files"
	if totals.Files == 1 {
		fileWord = "file"
	}
	line += fmt.Sprintf(" in %d %s; %d of %d cards exportable", totals.Files, fileWord, totals.Exportable, totals.Candidates)

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)
}
