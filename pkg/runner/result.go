package runner

import "github.com/yaklabco/flashforge/pkg/card"

// FileOutcome pairs a source path with its conversion.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Conversion is nil if the file could not be converted.
	Conversion *Conversion

	// Error is set if the file could not be converted.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int `json:"filesDiscovered"`

	// FilesProcessed is the number of files successfully converted.
	FilesProcessed int `json:"filesProcessed"`

	// FilesErrored is the number of files that could not be read or decoded.
	FilesErrored int `json:"filesErrored"`

	// FilesWithProblems counts files with invalid cards or diagnostics.
	FilesWithProblems int `json:"filesWithProblems"`

	Candidates  int `json:"candidates"`
	Valid       int `json:"valid"`
	Invalid     int `json:"invalid"`
	Diagnostics int `json:"diagnostics"`

	// IssuesByKind counts failing checks across all candidates.
	IssuesByKind map[card.IssueKind]int `json:"issuesByKind"`

	// DuplicateGroups is the number of duplicate groups found.
	DuplicateGroups int `json:"duplicateGroups"`

	// Removed is the number of valid cards dropped as duplicates.
	Removed int `json:"removed"`

	// Exportable is the number of cards that will be exported.
	Exportable int `json:"exportable"`
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasInvalid reports whether any candidate failed validation or any file
// could not be converted.
func (r *Result) HasInvalid() bool {
	if r == nil {
		return false
	}
	return r.Stats.Invalid > 0 || r.Stats.FilesErrored > 0
}

// HasDiagnostics reports whether the parser skipped any input.
func (r *Result) HasDiagnostics() bool {
	if r == nil {
		return false
	}
	return r.Stats.Diagnostics > 0
}

// Exportable returns the exportable cards of every file, in file order.
func (r *Result) Exportable() []card.Candidate {
	if r == nil {
		return nil
	}
	out := make([]card.Candidate, 0, r.Stats.Exportable)
	for _, file := range r.Files {
		if file.Conversion != nil {
			out = append(out, file.Conversion.Exportable...)
		}
	}
	return out
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		IssuesByKind: make(map[card.IssueKind]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	conv := outcome.Conversion
	if conv == nil {
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Candidates += conv.Candidates()
	r.Stats.Valid += len(conv.Passing)
	r.Stats.Invalid += conv.Invalid()
	r.Stats.Diagnostics += len(conv.Diagnostics)
	r.Stats.Removed += conv.Removed()
	r.Stats.Exportable += len(conv.Exportable)

	if conv.Duplicates != nil {
		r.Stats.DuplicateGroups += len(conv.Duplicates.Groups)
	}

	if conv.Invalid() > 0 || len(conv.Diagnostics) > 0 {
		r.Stats.FilesWithProblems++
	}

	for _, verdict := range conv.Verdicts {
		for _, kind := range verdict.Issues {
			r.Stats.IssuesByKind[kind]++
		}
	}
}

// Single wraps one conversion, such as stdin, as a Result.
func Single(path string, conv *Conversion, err error) *Result {
	result := &Result{Stats: newStats()}
	result.Stats.FilesDiscovered = 1
	result.accumulate(FileOutcome{Path: path, Conversion: conv, Error: err})
	return result
}
