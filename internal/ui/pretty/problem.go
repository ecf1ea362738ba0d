package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/flashforge/pkg/analysis"
)

// maxFrontExcerpt is the longest card front shown next to a problem.
const maxFrontExcerpt = 60

// FormatProblem formats a single problem for terminal output.
func (s *Styles) FormatProblem(problem *analysis.ProblemEntry, showFront bool) string {
	var builder strings.Builder

	location := s.FilePath.Render(problem.FilePath)
	if problem.Line > 0 {
		location += s.Location.Render(fmt.Sprintf(":%d", problem.Line))
	}

	// Main line: location  category  message  (kind)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatCategory(problem.Category),
		s.Message.Render(problem.Message),
		s.Kind.Render("("+problem.Kind+")"),
	))

	if showFront && problem.Front != "" {
		builder.WriteString("    " + s.Dim.Render("front:") + " " +
			s.Front.Render(Excerpt(problem.Front, maxFrontExcerpt)) + "\n")
	}

	return builder.String()
}

// FormatCategory returns a styled category label.
func (s *Styles) FormatCategory(category analysis.Category) string {
	switch category {
	case analysis.CategoryInvalid:
		return s.Error.Render("invalid")
	case analysis.CategoryDiagnostic:
		return s.Warning.Render("skipped")
	case analysis.CategoryDuplicate:
		return s.Info.Render("duplicate")
	default:
		return string(category)
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, problemCount int) string {
	header := s.FilePath.Render(path)
	if problemCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d problems)", problemCount))
	}
	return header
}

// Excerpt shortens text to one line of at most limit runes.
func Excerpt(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}
