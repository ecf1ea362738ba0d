package configloader

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/flashforge/pkg/config"
)

// envVarPrefix is the prefix for all flashforge environment variables.
const envVarPrefix = "FLASHFORGE_"

// envVar binds one environment variable to a config field.
type envVar struct {
	field string // dotted config key, as in the YAML file
	help  string
	apply func(cfg *config.Config, raw string) error
}

// bind returns an apply func that parses raw and stores it through target.
func bind[T any](parse func(string) (T, error), target func(*config.Config) *T) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		value, err := parse(raw)
		if err != nil {
			return err
		}
		*target(cfg) = value
		return nil
	}
}

// Parsers for bind. Strings are taken verbatim so a delimiter of spaces
// survives.
func parseString(raw string) (string, error) { return raw, nil }

func parseBool(raw string) (bool, error) {
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q (expected true/false/1/0)", raw)
	}
	return b, nil
}

func parseInt(raw string) (int, error) {
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return i, nil
}

func parseFloat(raw string) (float64, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return f, nil
}

// parseList splits on commas and drops empty, trimmed elements.
func parseList(raw string) ([]string, error) {
	var list []string
	for part := range strings.SplitSeq(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list, nil
}

func parseAs[T ~string](raw string) (T, error) { return T(raw), nil }

// envVars maps variable names, without the prefix, to config fields.
//
//nolint:gochecknoglobals // read-only lookup table
var envVars = map[string]envVar{
	"STRATEGY": {"strategy", "Parsing strategy",
		bind(parseString, func(c *config.Config) *string { return &c.Strategy })},
	"DELIMITER": {"delimiter.token", "Delimiter token for the delimiter strategy",
		bind(parseString, func(c *config.Config) *string { return &c.Delimiter.Token })},
	"CLOZE_OPEN": {"cloze.open", "Cloze opening marker",
		bind(parseString, func(c *config.Config) *string { return &c.Cloze.Open })},
	"CLOZE_CLOSE": {"cloze.close", "Cloze closing marker",
		bind(parseString, func(c *config.Config) *string { return &c.Cloze.Close })},
	"CLOZE_PLACEHOLDER": {"cloze.placeholder", "Text that replaces a hidden cloze span",
		bind(parseString, func(c *config.Config) *string { return &c.Cloze.Placeholder })},
	"SPLIT_FIRST_LINE": {"verse.split_first_line", "Verse: first line on the front",
		bind(parseBool, func(c *config.Config) *bool { return &c.Verse.SplitFirstLine })},
	"QUESTION_MARKERS": {"qa.question_markers", "Comma-separated question markers",
		bind(parseList, func(c *config.Config) *[]string { return &c.QA.QuestionMarkers })},
	"ANSWER_MARKERS": {"qa.answer_markers", "Comma-separated answer markers",
		bind(parseList, func(c *config.Config) *[]string { return &c.QA.AnswerMarkers })},
	"MAX_FIELD_BYTES": {"validation.max_field_bytes", "Per-field byte limit",
		bind(parseInt, func(c *config.Config) *int { return &c.Validation.MaxFieldBytes })},
	"EXPORT_FORMAT": {"export.format", "Export layout: tab or csv",
		bind(parseAs[config.ExportFormat], func(c *config.Config) *config.ExportFormat { return &c.Export.Format })},
	"HTML": {"export.html", "Render fields to HTML: true or false",
		bind(parseBool, func(c *config.Config) *bool { return &c.Export.HTML })},
	"DECK": {"export.deck", "Deck name header",
		bind(parseString, func(c *config.Config) *string { return &c.Export.Deck })},
	"TAGS": {"export.tags", "Comma-separated tags header",
		bind(parseList, func(c *config.Config) *[]string { return &c.Export.Tags })},
	"GUID": {"export.guid", "Add a GUID column: true or false",
		bind(parseBool, func(c *config.Config) *bool { return &c.Export.GUID })},
	"DEDUPE": {"dedupe.enabled", "Drop duplicate cards: true or false",
		bind(parseBool, func(c *config.Config) *bool { return &c.Dedupe.Enabled })},
	"DEDUPE_THRESHOLD": {"dedupe.threshold", "Similarity threshold between 0 and 1",
		bind(parseFloat, func(c *config.Config) *float64 { return &c.Dedupe.Threshold })},
	"MIN_SUBSTRING_LENGTH": {"dedupe.min_substring_length", "Shortest front considered for substring matches",
		bind(parseInt, func(c *config.Config) *int { return &c.Dedupe.MinSubstringLength })},
	"ENCODING": {"input.encoding", "Input charset, e.g. windows-1252",
		bind(parseString, func(c *config.Config) *string { return &c.Input.Encoding })},
	"IGNORE": {"ignore", "Comma-separated list of ignore patterns",
		bind(parseList, func(c *config.Config) *[]string { return &c.Ignore })},
	"BACKUPS_ENABLED": {"backups.enabled", "Back up exports before overwriting: true or false",
		bind(parseBool, func(c *config.Config) *bool { return &c.Backups.Enabled })},
	"BACKUPS_MODE": {"backups.mode", "Backup mode: sidecar",
		bind(parseString, func(c *config.Config) *string { return &c.Backups.Mode })},
	"DRY_RUN": {"dry_run", "Dry-run mode: true or false",
		bind(parseBool, func(c *config.Config) *bool { return &c.DryRun })},
	"FORMAT": {"format", "Report format: text, table, json or summary",
		bind(parseAs[config.OutputFormat], func(c *config.Config) *config.OutputFormat { return &c.Format })},
	"STRICT": {"strict", "Fail on parser diagnostics: true or false",
		bind(parseBool, func(c *config.Config) *bool { return &c.Strict })},
	"JOBS": {"jobs", "Number of parallel workers (0 = auto)",
		bind(parseInt, func(c *config.Config) *int { return &c.Jobs })},
	"NO_BACKUPS": {"no_backups", "Disable backups: true or false",
		bind(parseBool, func(c *config.Config) *bool { return &c.NoBackups })},
}

// LoadFromEnv applies FLASHFORGE_* overrides to cfg, in name order so the
// first reported error is stable. Unset and empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range slices.Sorted(maps.Keys(envVars)) {
		name := envVarPrefix + suffix
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := envVars[suffix].apply(cfg, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// GetEnvVarName returns the variable that sets a dotted config field, or "".
func GetEnvVarName(field string) string {
	for suffix, v := range envVars {
		if v.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envVars))
	for suffix, v := range envVars {
		vars[envVarPrefix+suffix] = v.help
	}
	return vars
}
