// Package parse turns raw text into flashcard candidates.
//
// Each strategy implements Parser. Strategies never fail on malformed
// input: they emit fewer candidates and record diagnostics instead, so that
// the validator remains the single place where correctness is enforced.
// The only error Parse returns is a rejected configuration, wrapping
// ErrInvalidOptions.
package parse

import (
	"fmt"

	"github.com/yaklabco/flashforge/pkg/card"
)

// Parser is implemented by every strategy.
type Parser interface {
	// Strategy returns the strategy this parser implements.
	Strategy() card.Strategy

	// Parse converts text into candidates and diagnostics.
	Parse(text string) *Result
}

// Result is the output of one parse.
type Result struct {
	// Strategy is the strategy that produced the result.
	Strategy card.Strategy

	// Candidates are in input order.
	Candidates []card.Candidate

	// Diagnostics are in input order.
	Diagnostics []card.Diagnostic
}

func newResult(strategy card.Strategy) *Result {
	return &Result{
		Strategy:    strategy,
		Candidates:  []card.Candidate{},
		Diagnostics: []card.Diagnostic{},
	}
}

func (r *Result) emit(front, back string, line int) {
	r.Candidates = append(r.Candidates, card.Candidate{
		Front:      front,
		Back:       back,
		SourceLine: line,
	})
}

func (r *Result) note(line int, kind card.DiagnosticKind, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, card.Diagnostic{
		Line:    line,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	})
}

// New returns the parser for strategy, configured from opts.
// Only the options section of the selected strategy is checked. A rejected
// configuration returns a nil Parser.
func New(strategy card.Strategy, opts Options) (Parser, error) {
	var (
		parser Parser
		err    error
	)

	switch strategy {
	case card.StrategyLineByLine:
		parser = lineByLineParser{}
	case card.StrategyDelimiter:
		parser, err = newDelimiterParser(opts.Delimiter)
	case card.StrategyVerse:
		parser = verseParser{splitFirstLine: opts.Verse.SplitFirstLine}
	case card.StrategyCloze:
		parser, err = newClozeParser(opts.Cloze)
	case card.StrategyQA:
		parser, err = newQAParser(opts.QA)
	case card.StrategyNumbered:
		parser = numberedParser{}
	default:
		err = invalidf("unknown strategy %q", strategy)
	}

	if err != nil {
		return nil, err
	}
	return parser, nil
}

// Parse converts text into candidates using strategy.
func Parse(text string, strategy card.Strategy, opts Options) (*Result, error) {
	parser, err := New(strategy, opts)
	if err != nil {
		return nil, err
	}
	return parser.Parse(text), nil
}
