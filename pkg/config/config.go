// Package config defines core configuration types for flashforge.
// These types are pure data structures with no dependency on how they are loaded.
package config

// OutputFormat specifies the output format for conversion reports.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// ExportFormat specifies the layout of exported card files.
type ExportFormat string

const (
	ExportTab ExportFormat = "tab"
	ExportCSV ExportFormat = "csv"
)

// IsValid returns true if the export format is known.
func (f ExportFormat) IsValid() bool {
	switch f {
	case ExportTab, ExportCSV:
		return true
	default:
		return false
	}
}

// Default option values shared by the config loader and the CLI.
const (
	DefaultStrategy           = "line_by_line"
	DefaultDelimiter          = "    "
	DefaultClozeOpen          = "{"
	DefaultClozeClose         = "}"
	DefaultClozePlaceholder   = "[...]"
	DefaultMaxFieldBytes      = 131072
	DefaultDedupeThreshold    = 0.85
	DefaultMinSubstringLength = 10
)

// DelimiterConfig configures the delimiter strategy.
type DelimiterConfig struct {
	Token string `yaml:"token" toml:"token"`
}

// ClozeConfig configures the cloze strategy.
type ClozeConfig struct {
	Open        string `yaml:"open" toml:"open"`
	Close       string `yaml:"close" toml:"close"`
	Placeholder string `yaml:"placeholder" toml:"placeholder"`
}

// VerseConfig configures the verse strategy.
type VerseConfig struct {
	// SplitFirstLine puts the first line of a block on the front and the
	// rest on the back.
	SplitFirstLine bool `yaml:"split_first_line" toml:"split_first_line"`
}

// QAConfig configures the qa strategy.
type QAConfig struct {
	QuestionMarkers []string `yaml:"question_markers" toml:"question_markers" validate:"omitempty,dive,required"`
	AnswerMarkers   []string `yaml:"answer_markers" toml:"answer_markers" validate:"omitempty,dive,required"`
}

// ValidationConfig holds destination field limits.
type ValidationConfig struct {
	MaxFieldBytes int `yaml:"max_field_bytes" toml:"max_field_bytes" validate:"gt=0"`
}

// ExportConfig controls how passing cards are written.
type ExportConfig struct {
	Format ExportFormat `yaml:"format" toml:"format" validate:"omitempty,oneof=tab csv"`

	// HTML renders fields from Markdown to HTML.
	HTML bool `yaml:"html" toml:"html"`

	// Deck is written as the #deck header when set.
	Deck string `yaml:"deck" toml:"deck"`

	// Tags are written as the #tags header.
	Tags []string `yaml:"tags" toml:"tags" validate:"omitempty,dive,required"`

	// GUID adds a stable identifier column.
	GUID bool `yaml:"guid" toml:"guid"`
}

// DedupeConfig controls duplicate detection.
type DedupeConfig struct {
	Enabled            bool    `yaml:"enabled" toml:"enabled"`
	Threshold          float64 `yaml:"threshold" toml:"threshold" validate:"gt=0,lte=1"`
	MinSubstringLength int     `yaml:"min_substring_length" toml:"min_substring_length" validate:"gte=0"`
}

// InputConfig controls how source files are read.
type InputConfig struct {
	// Encoding names the input charset, e.g. "windows-1252". Empty means UTF-8.
	Encoding string `yaml:"encoding" toml:"encoding"`
}

// BackupsConfig controls backup behavior when overwriting exports.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode" toml:"mode" validate:"omitempty,oneof=sidecar"`
}

// Config is the root configuration structure for flashforge.
type Config struct {
	// Strategy names the parsing strategy.
	Strategy string `yaml:"strategy" toml:"strategy" validate:"required,oneof=line_by_line delimiter verse cloze qa numbered"`

	Delimiter  DelimiterConfig  `yaml:"delimiter" toml:"delimiter"`
	Cloze      ClozeConfig      `yaml:"cloze" toml:"cloze"`
	Verse      VerseConfig      `yaml:"verse" toml:"verse"`
	QA         QAConfig         `yaml:"qa" toml:"qa"`
	Validation ValidationConfig `yaml:"validation" toml:"validation"`
	Export     ExportConfig     `yaml:"export" toml:"export"`
	Dedupe     DedupeConfig     `yaml:"dedupe" toml:"dedupe"`
	Input      InputConfig      `yaml:"input" toml:"input"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore" toml:"ignore"`

	// Backups configures backup behavior when overwriting exports.
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// CLI-level options (not persisted to config files).

	// DryRun reports what would be exported without writing.
	DryRun bool `yaml:"-" toml:"-"`

	// Format specifies the report format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// Output is the export destination. Empty means no export file.
	Output string `yaml:"-" toml:"-"`

	// Strict treats parser diagnostics as failures.
	Strict bool `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-" toml:"-"`

	// NoBackups disables backup creation when overwriting exports.
	NoBackups bool `yaml:"-" toml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Strategy:  DefaultStrategy,
		Delimiter: DelimiterConfig{Token: DefaultDelimiter},
		Cloze: ClozeConfig{
			Open:        DefaultClozeOpen,
			Close:       DefaultClozeClose,
			Placeholder: DefaultClozePlaceholder,
		},
		QA: QAConfig{
			QuestionMarkers: []string{"Q:", "Question:"},
			AnswerMarkers:   []string{"A:", "Answer:"},
		},
		Validation: ValidationConfig{MaxFieldBytes: DefaultMaxFieldBytes},
		Export:     ExportConfig{Format: ExportTab},
		Dedupe: DedupeConfig{
			Threshold:          DefaultDedupeThreshold,
			MinSubstringLength: DefaultMinSubstringLength,
		},
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0, // 0 means use NumCPU
	}
}
