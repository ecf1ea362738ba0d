package analysis

import "time"

// Category groups problem kinds by how they affect the export.
type Category string

const (
	// CategoryInvalid covers validation issues; the card is not exported.
	CategoryInvalid Category = "invalid"

	// CategoryDiagnostic covers input the parser skipped.
	CategoryDiagnostic Category = "diagnostic"

	// CategoryDuplicate covers duplicate groups among valid cards.
	CategoryDuplicate Category = "duplicate"
)

// rank orders categories from most to least severe.
func (c Category) rank() int {
	switch c {
	case CategoryInvalid:
		return 0
	case CategoryDiagnostic:
		return 1
	default:
		return 2
	}
}

// Report contains pre-computed views of conversion results.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Problems is the flat list for detailed output.
	Problems []ProblemEntry `json:"problems,omitempty"`

	// ByFile aggregates counts per source file.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByKind aggregates problems per kind.
	ByKind []KindAnalysis `json:"byKind,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// ProblemEntry is one invalid field, parser diagnostic or duplicate group.
type ProblemEntry struct {
	FilePath string   `json:"filePath"`
	Line     int      `json:"line"`
	Category Category `json:"category"`
	Kind     string   `json:"kind"`
	Message  string   `json:"message"`

	// Front is the front of the card involved, when there is one.
	Front string `json:"front,omitempty"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files             int `json:"filesConverted"`
	FilesWithProblems int `json:"filesWithProblems"`
	FilesErrored      int `json:"filesErrored"`
	Candidates        int `json:"candidates"`
	Valid             int `json:"valid"`
	Invalid           int `json:"invalid"`
	Diagnostics       int `json:"diagnostics"`
	Duplicates        int `json:"duplicates"`
	Removed           int `json:"removed"`
	Exportable        int `json:"exportable"`
	Problems          int `json:"totalProblems"`
}

// HasProblems returns true if there are any problems.
func (t Totals) HasProblems() bool {
	return t.Problems > 0
}

// HasInvalid returns true if any card failed validation.
func (t Totals) HasInvalid() bool {
	return t.Invalid > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path        string   `json:"path"`
	Candidates  int      `json:"candidates"`
	Valid       int      `json:"valid"`
	Invalid     int      `json:"invalid"`
	Diagnostics int      `json:"diagnostics"`
	Duplicates  int      `json:"duplicates"`
	Exportable  int      `json:"exportable"`
	Problems    int      `json:"problems"`
	Error       string   `json:"error,omitempty"`
	Kinds       []string `json:"kinds,omitempty"`
}

// KindAnalysis contains aggregated data for a single problem kind.
type KindAnalysis struct {
	Kind     string   `json:"kind"`
	Category Category `json:"category"`
	Count    int      `json:"count"`
	Files    []string `json:"files,omitempty"`
}
