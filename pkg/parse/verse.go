package parse

import "github.com/yaklabco/flashforge/pkg/card"

// verseParser turns each blank-line separated block into one card.
type verseParser struct {
	splitFirstLine bool
}

func (verseParser) Strategy() card.Strategy {
	return card.StrategyVerse
}

func (p verseParser) Parse(text string) *Result {
	result := newResult(p.Strategy())

	for _, block := range Blocks(SplitLines(text)) {
		start := block[0].Number
		if p.splitFirstLine {
			// A one-line block leaves the back empty; validation rejects it.
			result.emit(block[0].Text, joinText(block[1:]), start)
			continue
		}
		passage := joinText(block)
		result.emit(passage, passage, start)
	}

	return result
}
