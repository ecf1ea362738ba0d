package reporter_test

import (
	"errors"

	"github.com/yaklabco/flashforge/pkg/card"
	"github.com/yaklabco/flashforge/pkg/dedupe"
	"github.com/yaklabco/flashforge/pkg/runner"
)

// sampleConversion has one valid card, one card with an empty back, a
// skipped line and an exact duplicate of the valid card.
func sampleConversion(path string) *runner.Conversion {
	good := card.Candidate{Front: "cat", Back: "gato", SourceLine: 1}
	bad := card.Candidate{Front: "dog", Back: "", SourceLine: 2}
	copied := card.Candidate{Front: "cat", Back: "gato", SourceLine: 4}

	conv := &runner.Conversion{
		Path:     path,
		Strategy: card.StrategyDelimiter,
		Verdicts: []card.Verdict{
			{Candidate: good},
			{
				Candidate: bad,
				Issues:    []card.IssueKind{card.IssueEmptyBack},
				Findings: []card.Finding{
					{Kind: card.IssueEmptyBack, Field: card.FieldBack, Message: "back is empty"},
				},
			},
			{Candidate: copied},
		},
		Diagnostics: []card.Diagnostic{
			{Line: 3, Kind: card.DiagMissingDelimiter, Message: "line has no delimiter"},
		},
		Passing: []card.Candidate{good, copied},
		Duplicates: &dedupe.Report{
			Groups: []dedupe.Group{
				{Kind: dedupe.KindExact, Indices: []int{0, 1}, Reason: `identical front text "cat"`},
			},
			Stats: dedupe.Stats{Total: 2, Exact: 1},
		},
	}
	conv.Suggestions = dedupe.Suggest(conv.Duplicates)
	conv.Exportable = dedupe.Apply(conv.Passing, conv.Suggestions)
	return conv
}

func sampleResult() *runner.Result {
	return runner.Single("deck.txt", sampleConversion("deck.txt"), nil)
}

func cleanResult() *runner.Result {
	good := card.Candidate{Front: "cat", Back: "gato", SourceLine: 1}
	return runner.Single("clean.txt", &runner.Conversion{
		Path:       "clean.txt",
		Strategy:   card.StrategyDelimiter,
		Verdicts:   []card.Verdict{{Candidate: good}},
		Passing:    []card.Candidate{good},
		Exportable: []card.Candidate{good},
	}, nil)
}

func erroredResult() *runner.Result {
	return runner.Single("broken.txt", nil, errors.New("binary input"))
}
