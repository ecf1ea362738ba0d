package parse

import (
	"strconv"
	"strings"

	"github.com/yaklabco/flashforge/pkg/card"
)

// delimiterParser splits each line at the first occurrence of a token.
// Anything after the first token, further tokens included, is the back.
type delimiterParser struct {
	token string
}

func newDelimiterParser(opts DelimiterOptions) (delimiterParser, error) {
	if opts.Token == "" {
		return delimiterParser{}, invalidf("delimiter token must not be empty")
	}
	return delimiterParser{token: opts.Token}, nil
}

func (delimiterParser) Strategy() card.Strategy {
	return card.StrategyDelimiter
}

func (p delimiterParser) Parse(text string) *Result {
	result := newResult(p.Strategy())

	for _, line := range SplitLines(text) {
		if line.Blank() {
			continue
		}
		front, back, found := strings.Cut(line.Text, p.token)
		if !found {
			result.note(line.Number, card.DiagMissingDelimiter,
				"line %q does not contain delimiter %s", excerpt(line.Text), strconv.Quote(p.token))
			continue
		}
		result.emit(front, back, line.Number)
	}

	return result
}
