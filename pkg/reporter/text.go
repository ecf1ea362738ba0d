package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/flashforge/internal/ui/pretty"
	"github.com/yaklabco/flashforge/pkg/analysis"
	"github.com/yaklabco/flashforge/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to convert."))
		}
		return 0, nil
	}

	r.reportErrors(result)

	report := analysis.Analyze(result, r.opts.analysisOptions())
	if r.opts.GroupByFile {
		r.reportGrouped(report.Problems)
	} else {
		r.reportFlat(report.Problems)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return report.Totals.Problems, nil
}

// reportErrors writes one line per file that could not be converted.
func (r *TextReporter) reportErrors(result *runner.Result) {
	for _, file := range result.Files {
		if file.Error == nil {
			continue
		}
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(file.Path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
	}
}

// reportGrouped writes problems under a header per file. Problems of one
// file are contiguous in the report.
func (r *TextReporter) reportGrouped(problems []analysis.ProblemEntry) {
	for start := 0; start < len(problems); {
		end := start + 1
		for end < len(problems) && problems[end].FilePath == problems[start].FilePath {
			end++
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(problems[start].FilePath, end-start))
		r.reportFlat(problems[start:end])
		fmt.Fprintln(r.bw)

		start = end
	}
}

// reportFlat writes problems without grouping.
func (r *TextReporter) reportFlat(problems []analysis.ProblemEntry) {
	for i := range problems {
		fmt.Fprint(r.bw, r.styles.FormatProblem(&problems[i], r.opts.ShowFront))
	}
}
