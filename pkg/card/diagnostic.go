package card

import "fmt"

// DiagnosticKind classifies a non-fatal parse note.
type DiagnosticKind string

const (
	DiagUnpairedLine     DiagnosticKind = "unpaired-line"
	DiagMissingDelimiter DiagnosticKind = "missing-delimiter"
	DiagNoClozeSpans     DiagnosticKind = "no-cloze-spans"
	DiagMalformedCloze   DiagnosticKind = "malformed-cloze"
	DiagDanglingAnswer   DiagnosticKind = "dangling-answer"
	DiagIncompleteCard   DiagnosticKind = "incomplete-card"
	DiagStrayText        DiagnosticKind = "stray-text"
	DiagNotNumbered      DiagnosticKind = "not-numbered"
)

// Diagnostic records input a strategy skipped or could not pair.
// Diagnostics never abort parsing.
type Diagnostic struct {
	// Line is the 1-based input line the note refers to.
	Line int `json:"line"`

	// Kind classifies the note.
	Kind DiagnosticKind `json:"kind"`

	// Message is a human-readable explanation.
	Message string `json:"message"`
}

// String formats the diagnostic as "line N: message (kind)".
func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s (%s)", d.Line, d.Message, d.Kind)
}
