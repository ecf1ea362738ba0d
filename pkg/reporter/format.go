package reporter

import (
	"fmt"
	"slices"
	"strings"
)

// Format names a report layout.
type Format string

const (
	FormatText    Format = "text"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatSummary Format = "summary"
)

// Formats lists every report layout in the order help text shows them.
func Formats() []Format {
	return []Format{FormatText, FormatTable, FormatJSON, FormatSummary}
}

// FormatNames returns Formats as strings.
func FormatNames() []string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return names
}

// ParseFormat resolves a --format value, ignoring case. Empty means text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	format := Format(strings.ToLower(name))
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: %s", name, strings.Join(FormatNames(), ", "))
	}
	return format, nil
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is one of Formats.
func (f Format) IsValid() bool {
	return slices.Contains(Formats(), f)
}
