package parse

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidOptions is returned when the caller-supplied configuration
// cannot drive the selected strategy. It is distinct from diagnostics,
// which describe the input rather than the configuration.
var ErrInvalidOptions = errors.New("invalid parse options")

// Default option values.
const (
	DefaultDelimiter        = "    "
	DefaultClozeOpen        = "{"
	DefaultClozeClose       = "}"
	DefaultClozePlaceholder = "[...]"
)

// Options configures the strategies. Each strategy reads only its own
// section; the others are ignored.
type Options struct {
	Delimiter DelimiterOptions
	Cloze     ClozeOptions
	Verse     VerseOptions
	QA        QAOptions
}

// DelimiterOptions configures the delimiter strategy.
type DelimiterOptions struct {
	// Token is the literal substring separating front from back.
	Token string
}

// ClozeOptions configures the cloze strategy.
type ClozeOptions struct {
	// Open and Close are the literal span markers.
	Open  string
	Close string

	// Placeholder replaces the hidden span on the front.
	Placeholder string
}

// VerseOptions configures the verse strategy.
type VerseOptions struct {
	// SplitFirstLine puts a block's first line on the front and the
	// remaining lines on the back, instead of the whole block on both.
	SplitFirstLine bool
}

// QAOptions configures the qa strategy. Markers match case-insensitively.
type QAOptions struct {
	Question []string
	Answer   []string
}

// DefaultOptions returns Options with the documented defaults.
func DefaultOptions() Options {
	return Options{
		Delimiter: DelimiterOptions{Token: DefaultDelimiter},
		Cloze: ClozeOptions{
			Open:        DefaultClozeOpen,
			Close:       DefaultClozeClose,
			Placeholder: DefaultClozePlaceholder,
		},
		QA: QAOptions{
			Question: DefaultQuestionMarkers(),
			Answer:   DefaultAnswerMarkers(),
		},
	}
}

// DefaultQuestionMarkers returns the default question markers.
func DefaultQuestionMarkers() []string {
	return []string{"Q:", "Question:"}
}

// DefaultAnswerMarkers returns the default answer markers.
func DefaultAnswerMarkers() []string {
	return []string{"A:", "Answer:"}
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidOptions, fmt.Sprintf(format, args...))
}

// normalizeMarkers drops empty markers and orders the rest longest first,
// so a marker that prefixes another never shadows it.
func normalizeMarkers(markers []string) []string {
	out := make([]string, 0, len(markers))
	for _, m := range markers {
		if m != "" {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b string) int {
		return len(b) - len(a)
	})
	return out
}
