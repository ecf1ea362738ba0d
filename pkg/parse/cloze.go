package parse

import (
	"fmt"
	"strings"

	"github.com/yaklabco/flashforge/pkg/card"
)

// clozeParser emits one card per marked span, hiding that span on the
// front and revealing the whole line on the back.
type clozeParser struct {
	open        string
	close       string
	placeholder string
}

func newClozeParser(opts ClozeOptions) (clozeParser, error) {
	if opts.Open == "" || opts.Close == "" {
		return clozeParser{}, invalidf("cloze markers must not be empty")
	}
	return clozeParser{
		open:        opts.Open,
		close:       opts.Close,
		placeholder: opts.Placeholder,
	}, nil
}

func (clozeParser) Strategy() card.Strategy {
	return card.StrategyCloze
}

func (p clozeParser) Parse(text string) *Result {
	result := newResult(p.Strategy())

	for _, line := range SplitLines(text) {
		if line.Blank() {
			continue
		}

		segments, err := p.scan(line.Text)
		if err != nil {
			result.note(line.Number, card.DiagMalformedCloze, "%v", err)
			continue
		}

		spans := countSpans(segments)
		if spans == 0 {
			result.note(line.Number, card.DiagNoClozeSpans,
				"line %q has no %s...%s spans", excerpt(line.Text), p.open, p.close)
			continue
		}

		back := render(segments, -1, "")
		for target := range spans {
			result.emit(render(segments, target, p.placeholder), back, line.Number)
		}
	}

	return result
}

// clozeSegment is either literal text or the contents of a marked span.
type clozeSegment struct {
	text string
	span bool
}

// scan splits a line into literal and span segments. It fails on a
// stray closing marker, a nested opening marker, or an unterminated span,
// so a malformed line never yields partial cards.
func (p clozeParser) scan(line string) ([]clozeSegment, error) {
	var segments []clozeSegment
	distinct := p.open != p.close
	inSpan := false
	literalStart, contentStart, openedAt := 0, 0, 0

	for idx := 0; idx < len(line); {
		rest := line[idx:]

		if !inSpan {
			switch {
			case strings.HasPrefix(rest, p.open):
				segments = append(segments, clozeSegment{text: line[literalStart:idx]})
				inSpan = true
				openedAt = idx
				idx += len(p.open)
				contentStart = idx
			case distinct && strings.HasPrefix(rest, p.close):
				return nil, fmt.Errorf("unexpected %q at column %d", p.close, idx+1)
			default:
				idx++
			}
			continue
		}

		switch {
		case strings.HasPrefix(rest, p.close):
			segments = append(segments, clozeSegment{text: line[contentStart:idx], span: true})
			inSpan = false
			idx += len(p.close)
			literalStart = idx
		case distinct && strings.HasPrefix(rest, p.open):
			return nil, fmt.Errorf("nested %q at column %d", p.open, idx+1)
		default:
			idx++
		}
	}

	if inSpan {
		return nil, fmt.Errorf("unterminated %q opened at column %d", p.open, openedAt+1)
	}

	segments = append(segments, clozeSegment{text: line[literalStart:]})
	return segments, nil
}

func countSpans(segments []clozeSegment) int {
	n := 0
	for _, seg := range segments {
		if seg.span {
			n++
		}
	}
	return n
}

// render rebuilds the line without markers. The span at index target is
// replaced by placeholder; a negative target reveals every span.
func render(segments []clozeSegment, target int, placeholder string) string {
	var builder strings.Builder
	spanIdx := 0
	for _, seg := range segments {
		if !seg.span {
			builder.WriteString(seg.text)
			continue
		}
		if spanIdx == target {
			builder.WriteString(placeholder)
		} else {
			builder.WriteString(seg.text)
		}
		spanIdx++
	}
	return builder.String()
}
