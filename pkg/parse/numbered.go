package parse

import (
	"regexp"

	"github.com/yaklabco/flashforge/pkg/card"
)

// numberedItem matches "12. text", "12 text" and "12.text".
//
//nolint:gochecknoglobals // Compiled once, read-only.
var numberedItem = regexp.MustCompile(`^\s*(\d+)\.?\s*(.*)$`)

// numberedParser puts a list item's number on the front and its text on
// the back.
type numberedParser struct{}

func (numberedParser) Strategy() card.Strategy {
	return card.StrategyNumbered
}

func (p numberedParser) Parse(text string) *Result {
	result := newResult(p.Strategy())

	for _, line := range SplitLines(text) {
		if line.Blank() {
			continue
		}
		match := numberedItem.FindStringSubmatch(line.Text)
		if match == nil {
			result.note(line.Number, card.DiagNotNumbered,
				"line %q is not a numbered item", excerpt(line.Text))
			continue
		}
		if match[2] == "" {
			result.note(line.Number, card.DiagIncompleteCard,
				"item %s has no text", match[1])
			continue
		}
		result.emit(match[1], match[2], line.Number)
	}

	return result
}
