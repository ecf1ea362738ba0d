package parse

import (
	"strings"
	"unicode"
)

// Line is one normalized input line.
type Line struct {
	// Number is the 1-based line number in the input.
	Number int

	// Text is the line content with the line ending and trailing
	// whitespace removed. Leading whitespace is preserved.
	Text string
}

// Blank reports whether the line has no visible content.
func (l Line) Blank() bool {
	return l.Text == ""
}

// SplitLines normalizes text into lines.
// It handles both LF and CRLF line endings.
func SplitLines(text string) []Line {
	if text == "" {
		return []Line{}
	}

	lines := make([]Line, 0, strings.Count(text, "\n")+1)
	lineStart := 0
	number := 1

	for idx := 0; idx < len(text); idx++ {
		if text[idx] != '\n' {
			continue
		}
		lines = append(lines, newLine(number, text[lineStart:idx]))
		lineStart = idx + 1
		number++
	}

	// Last line (may not have a trailing newline).
	if lineStart < len(text) {
		lines = append(lines, newLine(number, text[lineStart:]))
	}

	return lines
}

func newLine(number int, raw string) Line {
	return Line{
		Number: number,
		Text:   strings.TrimRightFunc(raw, unicode.IsSpace),
	}
}

// Blocks groups consecutive non-blank lines. One or more blank lines
// separate blocks; blank lines themselves are not part of any block.
func Blocks(lines []Line) [][]Line {
	var blocks [][]Line
	var current []Line

	for _, line := range lines {
		if line.Blank() {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}

	if len(current) > 0 {
		blocks = append(blocks, current)
	}

	return blocks
}

// joinText joins the text of lines with line feeds.
func joinText(lines []Line) string {
	var builder strings.Builder
	for i, line := range lines {
		if i > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(line.Text)
	}
	return builder.String()
}

// excerptLength bounds the line excerpts quoted in diagnostic messages.
const excerptLength = 40

// excerpt shortens s for use inside a diagnostic message.
func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= excerptLength {
		return s
	}
	return string(runes[:excerptLength]) + "…"
}
