package card

// IssueKind is a closed set of reasons a candidate fails validation.
type IssueKind string

const (
	IssueEmptyFront              IssueKind = "empty-front"
	IssueEmptyBack               IssueKind = "empty-back"
	IssueFieldTooLarge           IssueKind = "field-too-large"
	IssueInvalidControlCharacter IssueKind = "invalid-control-character"
	IssueInvalidEncoding         IssueKind = "invalid-encoding"
)

// IssueKinds returns every issue kind in check order.
func IssueKinds() []IssueKind {
	return []IssueKind{
		IssueEmptyFront,
		IssueEmptyBack,
		IssueFieldTooLarge,
		IssueInvalidControlCharacter,
		IssueInvalidEncoding,
	}
}

// Field identifies one side of a card.
type Field string

const (
	FieldFront Field = "front"
	FieldBack  Field = "back"
)

// Finding is one issue located on a specific field.
type Finding struct {
	Kind    IssueKind `json:"kind"`
	Field   Field     `json:"field"`
	Message string    `json:"message"`
}

// Verdict is the validator's classification of a single candidate.
type Verdict struct {
	// Candidate is the card that was judged.
	Candidate Candidate `json:"candidate"`

	// Issues lists each failing check once, in check order.
	// Empty means the candidate is valid.
	Issues []IssueKind `json:"issues"`

	// Findings carries per-field detail for reporting.
	Findings []Finding `json:"findings,omitempty"`
}

// Valid reports whether the verdict carries no issues.
func (v Verdict) Valid() bool {
	return len(v.Issues) == 0
}

// HasIssue reports whether kind is among the verdict's issues.
func (v Verdict) HasIssue(kind IssueKind) bool {
	for _, k := range v.Issues {
		if k == kind {
			return true
		}
	}
	return false
}

// Passing returns the candidates of all valid verdicts, in order.
func Passing(verdicts []Verdict) []Candidate {
	out := make([]Candidate, 0, len(verdicts))
	for _, v := range verdicts {
		if v.Valid() {
			out = append(out, v.Candidate)
		}
	}
	return out
}
