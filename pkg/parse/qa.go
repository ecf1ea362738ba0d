package parse

import (
	"strings"
	"unicode"

	"github.com/yaklabco/flashforge/pkg/card"
)

// qaState is the accumulation state of the qa strategy.
type qaState int

const (
	stateAwaitingQuestion qaState = iota
	stateAccumulatingAnswer
)

func (s qaState) String() string {
	switch s {
	case stateAwaitingQuestion:
		return "AwaitingQuestion"
	case stateAccumulatingAnswer:
		return "AccumulatingAnswer"
	default:
		return "unknown"
	}
}

// qaEvent classifies one input line (or the end of input).
type qaEvent int

const (
	eventQuestion qaEvent = iota
	eventAnswer
	eventText
	eventBlank
	eventEnd
	qaEventCount
)

// qaAction is the side effect of a transition.
type qaAction int

const (
	actionNone qaAction = iota
	actionStart
	actionAnswer
	actionAppend
	actionFlush
	actionDangling
	actionStray
)

type qaTransition struct {
	next   qaState
	action qaAction
}

// qaTransitions is the complete transition table. actionStart flushes any
// pending card before starting the next one.
//
//nolint:gochecknoglobals // Read-only transition table.
var qaTransitions = [2][qaEventCount]qaTransition{
	stateAwaitingQuestion: {
		eventQuestion: {stateAccumulatingAnswer, actionStart},
		eventAnswer:   {stateAwaitingQuestion, actionDangling},
		eventText:     {stateAwaitingQuestion, actionStray},
		eventBlank:    {stateAwaitingQuestion, actionNone},
		eventEnd:      {stateAwaitingQuestion, actionNone},
	},
	stateAccumulatingAnswer: {
		eventQuestion: {stateAccumulatingAnswer, actionStart},
		eventAnswer:   {stateAccumulatingAnswer, actionAnswer},
		eventText:     {stateAccumulatingAnswer, actionAppend},
		eventBlank:    {stateAwaitingQuestion, actionFlush},
		eventEnd:      {stateAwaitingQuestion, actionFlush},
	},
}

// qaParser reads Q:/A: marked question and answer pairs.
type qaParser struct {
	question []string
	answer   []string
}

func newQAParser(opts QAOptions) (qaParser, error) {
	question := normalizeMarkers(opts.Question)
	answer := normalizeMarkers(opts.Answer)
	if len(question) == 0 || len(answer) == 0 {
		return qaParser{}, invalidf("qa needs at least one question and one answer marker")
	}
	return qaParser{question: question, answer: answer}, nil
}

func (qaParser) Strategy() card.Strategy {
	return card.StrategyQA
}

func (p qaParser) Parse(text string) *Result {
	machine := &qaMachine{result: newResult(p.Strategy())}

	lines := SplitLines(text)
	for _, line := range lines {
		event, content := p.classify(line)
		machine.step(event, line, content)
	}

	endLine := Line{Number: len(lines) + 1}
	machine.step(eventEnd, endLine, "")

	return machine.result
}

// classify maps a line to an event and, for marker lines, the text after
// the marker.
func (p qaParser) classify(line Line) (qaEvent, string) {
	if line.Blank() {
		return eventBlank, ""
	}
	if content, ok := matchMarker(line.Text, p.question); ok {
		return eventQuestion, content
	}
	if content, ok := matchMarker(line.Text, p.answer); ok {
		return eventAnswer, content
	}
	return eventText, line.Text
}

// matchMarker reports whether text, after leading whitespace, starts with
// one of markers (case-insensitive), returning the remainder.
func matchMarker(text string, markers []string) (string, bool) {
	trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)
	for _, marker := range markers {
		if len(trimmed) < len(marker) {
			continue
		}
		if strings.EqualFold(trimmed[:len(marker)], marker) {
			return strings.TrimLeftFunc(trimmed[len(marker):], unicode.IsSpace), true
		}
	}
	return "", false
}

// qaMachine holds the in-progress card for one parse.
type qaMachine struct {
	state     qaState
	front     string
	frontLine int
	back      []string
	result    *Result
}

func (m *qaMachine) step(event qaEvent, line Line, content string) {
	transition := qaTransitions[m.state][event]

	switch transition.action {
	case actionNone:
	case actionStart:
		if m.state == stateAccumulatingAnswer {
			m.flush()
		}
		m.front = content
		m.frontLine = line.Number
		m.back = nil
	case actionAnswer:
		if content != "" {
			m.back = append(m.back, content)
		}
	case actionAppend:
		m.back = append(m.back, content)
	case actionFlush:
		m.flush()
	case actionDangling:
		m.result.note(line.Number, card.DiagDanglingAnswer,
			"answer %q has no preceding question", excerpt(content))
	case actionStray:
		m.result.note(line.Number, card.DiagStrayText,
			"text %q is outside any question", excerpt(content))
	}

	m.state = transition.next
}

// flush emits the pending card if both fields are present and resets the
// accumulation.
func (m *qaMachine) flush() {
	back := strings.Join(m.back, "\n")
	switch {
	case m.front != "" && back != "":
		m.result.emit(m.front, back, m.frontLine)
	case m.front == "":
		m.result.note(m.frontLine, card.DiagIncompleteCard, "question marker has no question text")
	default:
		m.result.note(m.frontLine, card.DiagIncompleteCard,
			"question %q has no answer", excerpt(m.front))
	}
	m.front = ""
	m.frontLine = 0
	m.back = nil
}
