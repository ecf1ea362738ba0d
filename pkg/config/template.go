package config

import (
	"bytes"
	"fmt"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every strategy and section.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "toml".
	Format string
}

// StrategyInfo describes a strategy for template generation.
type StrategyInfo struct {
	Name        string
	Description string
}

// StrategyInfoProvider returns strategy descriptions. It decouples the
// template from the card package.
type StrategyInfoProvider func() []StrategyInfo

// DefaultStrategyInfoProvider is set by the CLI before templates are generated.
//
//nolint:gochecknoglobals // Intentional extension point for strategy info.
var DefaultStrategyInfoProvider StrategyInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", "yaml", "yml":
	case "toml":
		return generateTOMLTemplate()
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}

	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Parsing strategy: line_by_line, delimiter, verse, cloze, qa or numbered
strategy: line_by_line

# delimiter:
#   token: "    "

# export:
#   format: tab
#   deck: ""
#   tags: []

# File patterns to ignore (glob patterns)
# ignore:
#   - "drafts/**"
`)

	return buf.Bytes()
}

func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`
#
# This template lists every setting with its default value.

# Parsing strategy. Available strategies:
`)

	for _, info := range strategyInfos() {
		fmt.Fprintf(&buf, "#   %s: %s\n", info.Name, wrapComment(info.Description, commentWrapWidth))
	}

	fmt.Fprintf(&buf, `strategy: %s

# delimiter: front and back separated by a token on each line
delimiter:
  token: %q

# cloze: one card per marked span, the span hidden on the front
cloze:
  open: %q
  close: %q
  placeholder: %q

# verse: blank-line separated blocks
verse:
  split_first_line: false

# qa: marker-driven question/answer blocks (case-insensitive prefixes)
qa:
  question_markers: ["Q:", "Question:"]
  answer_markers: ["A:", "Answer:"]

# Destination field limits
validation:
  max_field_bytes: %d

# Export of passing cards
export:
  format: tab       # tab or csv
  html: false       # render Markdown fields to HTML
  deck: ""
  tags: []
  guid: false       # add a stable GUID column

# Duplicate detection
dedupe:
  enabled: false
  threshold: %.2f
  min_substring_length: %d

# Input charset, e.g. windows-1252 (empty means UTF-8)
input:
  encoding: ""

# File patterns to ignore (glob patterns)
ignore:
  - ".git/**"

# Backup configuration when overwriting an export
backups:
  enabled: true
  mode: sidecar
`,
		DefaultStrategy,
		DefaultDelimiter,
		DefaultClozeOpen, DefaultClozeClose, DefaultClozePlaceholder,
		DefaultMaxFieldBytes,
		DefaultDedupeThreshold, DefaultMinSubstringLength,
	)

	return buf.Bytes()
}

func generateTOMLTemplate() ([]byte, error) {
	body, err := NewConfig().ToTOML()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")
	buf.Write(body)

	return buf.Bytes(), nil
}

func strategyInfos() []StrategyInfo {
	if DefaultStrategyInfoProvider != nil {
		return DefaultStrategyInfoProvider()
	}
	return []StrategyInfo{{Name: DefaultStrategy, Description: "adjacent non-blank lines form front and back"}}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n#     ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# flashforge configuration
# See: https://github.com/yaklabco/flashforge`
}
