// Package reporter writes conversion results in text, table, JSON and
// summary formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/flashforge/pkg/analysis"
	"github.com/yaklabco/flashforge/pkg/runner"
)

// Reporter writes one conversion run and returns how many problems it
// reported.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer presents an already analyzed run. It never touches the
// runner.Result directly.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// analyzed adapts a Renderer to Reporter by running analysis first.
type analyzed struct {
	renderer Renderer
	opts     analysis.Options
}

var _ Reporter = analyzed{}

func (a analyzed) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.opts)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render %s report: %w", FormatSummary, err)
	}
	return report.Totals.Problems, nil
}

// New returns the Reporter for opts.Format; empty selects text.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	switch opts.Format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSummary:
		return analyzed{renderer: NewSummaryRenderer(opts), opts: opts.analysisOptions()}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}
