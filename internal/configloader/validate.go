package configloader

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/yaklabco/flashforge/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "export.format").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// knownFormats lists valid report format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText:    true,
	config.FormatTable:   true,
	config.FormatJSON:    true,
	config.FormatSummary: true,
}

// structValidator checks the declarative constraints in config struct tags.
// Field names are reported by their yaml key.
//
//nolint:gochecknoglobals // validator.Validate caches struct metadata and is safe for concurrent use.
var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	validateStruct(cfg, result)

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.fail("format", cfg.Format,
			"invalid format %q; must be one of: text, table, json, summary", cfg.Format)
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	validateStrategyOptions(cfg, result)
	validateExport(cfg, result)
	validateEncoding(cfg, result)
	validateIgnorePatterns(cfg, result)

	if cfg.Dedupe.Enabled && cfg.Dedupe.Threshold > 0 && cfg.Dedupe.Threshold < 0.5 {
		result.warn("dedupe.threshold", cfg.Dedupe.Threshold,
			"threshold %.2f is low; unrelated cards may be reported as similar", cfg.Dedupe.Threshold)
	}

	return result
}

// validateStruct runs the struct tag constraints.
func validateStruct(cfg *config.Config, result *ValidationResult) {
	err := structValidator.Struct(cfg)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		result.fail("", nil, "%v", err)
		return
	}

	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		result.fail(field, fe.Value(), "%s", describeFieldError(fe))
	}
}

// describeFieldError turns a validator tag failure into a sentence.
func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "value is required"
	case "oneof":
		return fmt.Sprintf("invalid value %q; must be one of: %s",
			fmt.Sprint(fe.Value()), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}

// validateStrategyOptions checks the options of the selected strategy only.
func validateStrategyOptions(cfg *config.Config, result *ValidationResult) {
	switch cfg.Strategy {
	case "delimiter":
		if cfg.Delimiter.Token == "" {
			result.fail("delimiter.token", "", "delimiter token must not be empty")
		}
	case "cloze":
		if cfg.Cloze.Open == "" || cfg.Cloze.Close == "" {
			result.fail("cloze", nil, "cloze markers must not be empty")
			return
		}
		if cfg.Cloze.Open == cfg.Cloze.Close {
			result.warn("cloze", cfg.Cloze.Open,
				"identical open and close markers %q cannot express nesting", cfg.Cloze.Open)
		}
	case "qa":
		if len(cfg.QA.QuestionMarkers) == 0 {
			result.fail("qa.question_markers", nil, "at least one question marker is required")
		}
		if len(cfg.QA.AnswerMarkers) == 0 {
			result.fail("qa.answer_markers", nil, "at least one answer marker is required")
		}
	}
}

// validateExport checks values that become Anki file headers.
func validateExport(cfg *config.Config, result *ValidationResult) {
	for i, tag := range cfg.Export.Tags {
		if strings.ContainsAny(tag, " \t\n") {
			result.fail(fmt.Sprintf("export.tags[%d]", i), tag, "tag %q must not contain whitespace", tag)
		}
	}
	if strings.ContainsAny(cfg.Export.Deck, "\n\r") {
		result.fail("export.deck", cfg.Export.Deck, "deck name must be a single line")
	}
}

// validateEncoding checks the input charset is known.
func validateEncoding(cfg *config.Config, result *ValidationResult) {
	if cfg.Input.Encoding == "" {
		return
	}
	if _, err := htmlindex.Get(cfg.Input.Encoding); err != nil {
		result.fail("input.encoding", cfg.Input.Encoding, "unknown encoding %q", cfg.Input.Encoding)
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidFormat returns true if the format is valid.
func IsValidFormat(f config.OutputFormat) bool {
	return knownFormats[f]
}
