package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/flashforge/pkg/analysis"
	"github.com/yaklabco/flashforge/pkg/card"
	"github.com/yaklabco/flashforge/pkg/dedupe"
	"github.com/yaklabco/flashforge/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string                 `json:"path"`
	Title       string                 `json:"title,omitempty"`
	Strategy    card.Strategy          `json:"strategy,omitempty"`
	Cards       []JSONCard             `json:"cards,omitempty"`
	Problems    []JSONProblem          `json:"problems"`
	Duplicates  []dedupe.Group         `json:"duplicates,omitempty"`
	Suggestions []dedupe.Suggestion    `json:"suggestions,omitempty"`
	Diagnostics []card.Diagnostic      `json:"diagnostics,omitempty"`
	IssueCounts map[card.IssueKind]int `json:"issueCounts,omitempty"`
	Exportable  int                    `json:"exportable"`
	Error       string                 `json:"error,omitempty"`
}

// JSONCard is one candidate with its verdict.
type JSONCard struct {
	Front      string           `json:"front"`
	Back       string           `json:"back"`
	SourceLine int              `json:"sourceLine,omitempty"`
	Valid      bool             `json:"valid"`
	Issues     []card.IssueKind `json:"issues,omitempty"`
}

// JSONProblem represents a single reported problem.
type JSONProblem struct {
	Line     int               `json:"line,omitempty"`
	Category analysis.Category `json:"category"`
	Kind     string            `json:"kind"`
	Message  string            `json:"message"`
	Front    string            `json:"front,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	runner.Stats

	TotalProblems int `json:"totalProblems"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalProblems, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: analysis.ReportVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}
	output.Summary.Stats = result.Stats

	report := analysis.Analyze(result, r.opts.analysisOptions())
	output.Summary.TotalProblems = report.Totals.Problems

	byPath := make(map[string][]JSONProblem)
	for _, p := range report.Problems {
		byPath[p.FilePath] = append(byPath[p.FilePath], JSONProblem{
			Line:     p.Line,
			Category: p.Category,
			Kind:     p.Kind,
			Message:  p.Message,
			Front:    p.Front,
		})
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		path := analysis.DisplayPath(file.Path, r.opts.WorkingDir)
		fileResult := JSONFileResult{
			Path:     path,
			Problems: make([]JSONProblem, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if conv := file.Conversion; conv != nil {
			if problems := byPath[path]; problems != nil {
				fileResult.Problems = problems
			}
			fileResult.Title = conv.Title
			fileResult.Strategy = conv.Strategy
			fileResult.Diagnostics = conv.Diagnostics
			fileResult.Suggestions = conv.Suggestions
			fileResult.Exportable = len(conv.Exportable)
			if conv.Duplicates != nil {
				fileResult.Duplicates = conv.Duplicates.Groups
			}
			if r.opts.IncludeCards {
				fileResult.Cards = jsonCards(conv.Verdicts)
			}
			fileResult.IssueCounts = issueCounts(conv.Verdicts)
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}

func jsonCards(verdicts []card.Verdict) []JSONCard {
	cards := make([]JSONCard, 0, len(verdicts))
	for _, v := range verdicts {
		cards = append(cards, JSONCard{
			Front:      v.Candidate.Front,
			Back:       v.Candidate.Back,
			SourceLine: v.Candidate.SourceLine,
			Valid:      v.Valid(),
			Issues:     v.Issues,
		})
	}
	return cards
}

func issueCounts(verdicts []card.Verdict) map[card.IssueKind]int {
	var counts map[card.IssueKind]int
	for _, v := range verdicts {
		for _, kind := range v.Issues {
			if counts == nil {
				counts = make(map[card.IssueKind]int)
			}
			counts[kind]++
		}
	}
	return counts
}
