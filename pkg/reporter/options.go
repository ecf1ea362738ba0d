package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/flashforge/pkg/analysis"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// SummaryOrder controls which table the summary format prints first.
type SummaryOrder string

const (
	SummaryOrderKinds SummaryOrder = "kinds"
	SummaryOrderFiles SummaryOrder = "files"
)

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowFront prints the front of the card involved under each problem.
	ShowFront bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// GroupByFile groups problems under a header per file (text format).
	GroupByFile bool

	// Compact uses compact/minified output where applicable.
	Compact bool

	// IncludeCards lists every card with its verdict in JSON output.
	IncludeCards bool

	// SummaryOrder controls the order of tables in summary output.
	SummaryOrder SummaryOrder

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       FormatText,
		Color:        "auto",
		ShowFront:    true,
		ShowSummary:  true,
		GroupByFile:  true,
		SummaryOrder: SummaryOrderKinds,
	}
}

// analysisOptions returns the analysis views every format needs.
func (o Options) analysisOptions() analysis.Options {
	opts := analysis.DefaultOptions()
	opts.WorkingDir = o.WorkingDir
	return opts
}
