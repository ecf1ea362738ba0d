// Package card defines the value types shared by the parser and validator:
// card candidates, parse diagnostics, strategies and validation verdicts.
package card

// Candidate is a front/back pair proposed by a parsing strategy.
// Candidates are values; nothing downstream mutates them.
type Candidate struct {
	// Front is the prompt side of the card.
	Front string `json:"front"`

	// Back is the answer side of the card.
	Back string `json:"back"`

	// SourceLine is the 1-based input line the candidate originated from.
	// Zero means unknown.
	SourceLine int `json:"sourceLine,omitempty"`
}

// Strategy names a parsing mode.
type Strategy string

const (
	StrategyLineByLine Strategy = "line_by_line"
	StrategyDelimiter  Strategy = "delimiter"
	StrategyVerse      Strategy = "verse"
	StrategyCloze      Strategy = "cloze"
	StrategyQA         Strategy = "qa"
	StrategyNumbered   Strategy = "numbered"
)

// Strategies returns every known strategy in display order.
func Strategies() []Strategy {
	return []Strategy{
		StrategyLineByLine,
		StrategyDelimiter,
		StrategyVerse,
		StrategyCloze,
		StrategyQA,
		StrategyNumbered,
	}
}

// IsValid reports whether s is a known strategy.
func (s Strategy) IsValid() bool {
	switch s {
	case StrategyLineByLine, StrategyDelimiter, StrategyVerse,
		StrategyCloze, StrategyQA, StrategyNumbered:
		return true
	default:
		return false
	}
}

// String returns the strategy name.
func (s Strategy) String() string {
	return string(s)
}

// Description returns a one-line summary of what the strategy does.
func (s Strategy) Description() string {
	switch s {
	case StrategyLineByLine:
		return "each line prompts the next; blank lines break the chain"
	case StrategyDelimiter:
		return "front and back on one line, split at the first delimiter"
	case StrategyVerse:
		return "blank-line separated blocks become whole-passage cards"
	case StrategyCloze:
		return "one card per {bracketed} span, hiding that span"
	case StrategyQA:
		return "Q:/A: marked questions with multi-line answers"
	case StrategyNumbered:
		return "numbered list items: number on front, text on back"
	default:
		return ""
	}
}
