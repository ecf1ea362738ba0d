package parse

import "github.com/yaklabco/flashforge/pkg/card"

// lineByLineParser pairs each line with the line after it. Blank lines
// break the chain, so lines on either side of a blank are never paired.
type lineByLineParser struct{}

func (lineByLineParser) Strategy() card.Strategy {
	return card.StrategyLineByLine
}

func (p lineByLineParser) Parse(text string) *Result {
	result := newResult(p.Strategy())

	for _, chain := range Blocks(SplitLines(text)) {
		if len(chain) == 1 {
			result.note(chain[0].Number, card.DiagUnpairedLine,
				"line %q has no following line to pair with", excerpt(chain[0].Text))
			continue
		}
		for i := 0; i < len(chain)-1; i++ {
			result.emit(chain[i].Text, chain[i+1].Text, chain[i].Number)
		}
	}

	return result
}
