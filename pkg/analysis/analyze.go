// Package analysis turns runner results into aggregated views for reporting.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/flashforge/pkg/card"
	"github.com/yaklabco/flashforge/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// DisplayPath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func DisplayPath(absPath, workDir string) string {
	if workDir == "" || !filepath.IsAbs(absPath) {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	kindMap   map[string]*KindAnalysis
	kindFiles map[string]map[string]bool
	fileKinds map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		kindMap:   make(map[string]*KindAnalysis),
		kindFiles: make(map[string]map[string]bool),
		fileKinds: make(map[string]map[string]bool),
	}
}

// record counts one problem against its file and kind.
func (ctx *analysisContext) record(report *Report, fa *FileAnalysis, entry ProblemEntry, opts Options) {
	report.Totals.Problems++
	fa.Problems++

	if _, ok := ctx.fileKinds[fa.Path]; !ok {
		ctx.fileKinds[fa.Path] = make(map[string]bool)
	}
	ctx.fileKinds[fa.Path][entry.Kind] = true

	ka, ok := ctx.kindMap[entry.Kind]
	if !ok {
		ka = &KindAnalysis{Kind: entry.Kind, Category: entry.Category}
		ctx.kindMap[entry.Kind] = ka
		ctx.kindFiles[entry.Kind] = make(map[string]bool)
	}
	ka.Count++
	ctx.kindFiles[entry.Kind][fa.Path] = true

	if opts.IncludeProblems {
		report.Problems = append(report.Problems, entry)
	}
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through every conversion to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()
	var files []FileAnalysis

	for _, file := range result.Files {
		displayPath := DisplayPath(file.Path, opts.WorkingDir)
		fa := FileAnalysis{Path: displayPath}

		if file.Error != nil {
			report.Totals.FilesErrored++
			fa.Error = file.Error.Error()
			files = append(files, fa)
			continue
		}
		conv := file.Conversion
		if conv == nil {
			continue
		}

		report.Totals.Files++
		analyzeConversion(ctx, report, &fa, conv, opts)

		if fa.Invalid > 0 || fa.Diagnostics > 0 {
			report.Totals.FilesWithProblems++
		}
		files = append(files, fa)
	}

	if opts.IncludeByKind {
		report.ByKind = ctx.buildByKind(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile(files, opts)
	}

	return report
}

func analyzeConversion(ctx *analysisContext, report *Report, fa *FileAnalysis, conv *runner.Conversion, opts Options) {
	fa.Candidates = conv.Candidates()
	fa.Valid = len(conv.Passing)
	fa.Invalid = conv.Invalid()
	fa.Diagnostics = len(conv.Diagnostics)
	fa.Exportable = len(conv.Exportable)

	report.Totals.Candidates += fa.Candidates
	report.Totals.Valid += fa.Valid
	report.Totals.Invalid += fa.Invalid
	report.Totals.Diagnostics += fa.Diagnostics
	report.Totals.Removed += conv.Removed()
	report.Totals.Exportable += fa.Exportable

	// Problems are recorded in line order within each category.
	for _, verdict := range conv.Verdicts {
		for _, finding := range verdict.Findings {
			ctx.record(report, fa, ProblemEntry{
				FilePath: fa.Path,
				Line:     verdict.Candidate.SourceLine,
				Category: CategoryInvalid,
				Kind:     string(finding.Kind),
				Message:  finding.Message,
				Front:    verdict.Candidate.Front,
			}, opts)
		}
	}

	for _, diag := range conv.Diagnostics {
		ctx.record(report, fa, ProblemEntry{
			FilePath: fa.Path,
			Line:     diag.Line,
			Category: CategoryDiagnostic,
			Kind:     string(diag.Kind),
			Message:  diag.Message,
		}, opts)
	}

	if conv.Duplicates == nil {
		return
	}
	for _, group := range conv.Duplicates.Groups {
		fa.Duplicates++
		report.Totals.Duplicates++

		var first card.Candidate
		if len(group.Indices) > 0 && group.Indices[0] < len(conv.Passing) {
			first = conv.Passing[group.Indices[0]]
		}
		ctx.record(report, fa, ProblemEntry{
			FilePath: fa.Path,
			Line:     first.SourceLine,
			Category: CategoryDuplicate,
			Kind:     "duplicate-" + string(group.Kind),
			Message:  group.Reason,
			Front:    first.Front,
		}, opts)
	}
}

// buildByKind constructs the ByKind slice from accumulated data.
func (ctx *analysisContext) buildByKind(opts Options) []KindAnalysis {
	result := make([]KindAnalysis, 0, len(ctx.kindMap))
	for kind, ka := range ctx.kindMap {
		for f := range ctx.kindFiles[kind] {
			ka.Files = append(ka.Files, f)
		}
		slices.Sort(ka.Files)
		result = append(result, *ka)
	}
	sortKindAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// buildByFile keeps files with problems or errors and attaches their kinds.
func (ctx *analysisContext) buildByFile(files []FileAnalysis, opts Options) []FileAnalysis {
	var result []FileAnalysis
	for _, fa := range files {
		if fa.Problems == 0 && fa.Error == "" {
			continue
		}
		for kind := range ctx.fileKinds[fa.Path] {
			fa.Kinds = append(fa.Kinds, kind)
		}
		slices.Sort(fa.Kinds)
		result = append(result, fa)
	}
	sortFileAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

func sortKindAnalysis(kinds []KindAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(kinds, func(left, right KindAnalysis) int {
		switch sortBy {
		case SortByAlpha:
			return cmp.Compare(left.Kind, right.Kind)
		case SortByCategory:
			return cmp.Or(
				cmp.Compare(left.Category.rank(), right.Category.rank()),
				cmp.Compare(right.Count, left.Count),
				cmp.Compare(left.Kind, right.Kind),
			)
		default: // SortByCount
			result := cmp.Compare(left.Count, right.Count)
			if desc {
				result = -result
			}
			return cmp.Or(result, cmp.Compare(left.Kind, right.Kind))
		}
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		switch sortBy {
		case SortByAlpha:
			return cmp.Compare(left.Path, right.Path)
		case SortByCategory:
			return cmp.Or(
				cmp.Compare(right.Invalid, left.Invalid),
				cmp.Compare(right.Diagnostics, left.Diagnostics),
				cmp.Compare(right.Problems, left.Problems),
				cmp.Compare(left.Path, right.Path),
			)
		default: // SortByCount
			result := cmp.Compare(left.Problems, right.Problems)
			if desc {
				result = -result
			}
			return cmp.Or(result, cmp.Compare(left.Path, right.Path))
		}
	})
}
