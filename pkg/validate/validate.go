// Package validate classifies card candidates against the destination's
// field constraints. Validation is pure: candidates are never modified and
// the same candidate always yields the same issues.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/flashforge/pkg/card"
)

// DefaultMaxFieldBytes is the largest field, in UTF-8 bytes, the
// destination accepts.
const DefaultMaxFieldBytes = 131072

// ErrInvalidConfig is returned by New for unusable configuration.
var ErrInvalidConfig = errors.New("invalid validator config")

// Config holds the limits the validator enforces.
type Config struct {
	// MaxFieldBytes is the inclusive per-field ceiling in encoded bytes.
	MaxFieldBytes int
}

// DefaultConfig returns the destination's default limits.
func DefaultConfig() Config {
	return Config{MaxFieldBytes: DefaultMaxFieldBytes}
}

// Validator checks candidates. It holds only its configuration and is
// safe for concurrent use.
type Validator struct {
	cfg Config
}

// New returns a Validator for cfg.
func New(cfg Config) (*Validator, error) {
	if cfg.MaxFieldBytes <= 0 {
		return nil, fmt.Errorf("%w: max field bytes must be positive, got %d", ErrInvalidConfig, cfg.MaxFieldBytes)
	}
	return &Validator{cfg: cfg}, nil
}

// Default returns a Validator using DefaultConfig.
func Default() *Validator {
	return &Validator{cfg: DefaultConfig()}
}

// Config returns the validator's configuration.
func (v *Validator) Config() Config {
	return v.cfg
}

// Validate returns the issues of c in check order. An empty result means
// the candidate is valid.
func (v *Validator) Validate(c card.Candidate) []card.IssueKind {
	return v.Check(c).Issues
}

// Check returns the full verdict for c, including per-field findings.
// Every check runs; a kind is listed once even when both fields fail it.
func (v *Validator) Check(c card.Candidate) card.Verdict {
	verdict := card.Verdict{
		Candidate: c,
		Issues:    []card.IssueKind{},
	}

	fields := []struct {
		name  card.Field
		value string
	}{
		{card.FieldFront, c.Front},
		{card.FieldBack, c.Back},
	}

	for _, check := range v.checks() {
		failed := false
		for _, field := range fields {
			if !check.applies(field.name) {
				continue
			}
			msg, bad := check.test(field.value)
			if !bad {
				continue
			}
			failed = true
			verdict.Findings = append(verdict.Findings, card.Finding{
				Kind:    check.kind,
				Field:   field.name,
				Message: msg,
			})
		}
		if failed {
			verdict.Issues = append(verdict.Issues, check.kind)
		}
	}

	return verdict
}

// ValidateAll checks every candidate, preserving order.
func (v *Validator) ValidateAll(candidates []card.Candidate) []card.Verdict {
	verdicts := make([]card.Verdict, 0, len(candidates))
	for _, c := range candidates {
		verdicts = append(verdicts, v.Check(c))
	}
	return verdicts
}

// check is one validation rule.
type check struct {
	kind card.IssueKind

	// field restricts the check to one side; empty means both.
	field card.Field

	// test returns a message and true when value fails.
	test func(value string) (string, bool)
}

func (c check) applies(field card.Field) bool {
	return c.field == "" || c.field == field
}

// checks returns the rules in their fixed order.
func (v *Validator) checks() []check {
	return []check{
		{kind: card.IssueEmptyFront, field: card.FieldFront, test: checkEmpty},
		{kind: card.IssueEmptyBack, field: card.FieldBack, test: checkEmpty},
		{kind: card.IssueFieldTooLarge, test: v.checkSize},
		{kind: card.IssueInvalidControlCharacter, test: checkControl},
		{kind: card.IssueInvalidEncoding, test: checkEncoding},
	}
}

func checkEmpty(value string) (string, bool) {
	if strings.TrimSpace(value) == "" {
		return "field is empty", true
	}
	return "", false
}

// checkSize measures encoded bytes, not characters. Go strings are the
// UTF-8 encoding the destination receives, so len is the byte count.
func (v *Validator) checkSize(value string) (string, bool) {
	if len(value) > v.cfg.MaxFieldBytes {
		return fmt.Sprintf("field is %d bytes, limit is %d", len(value), v.cfg.MaxFieldBytes), true
	}
	return "", false
}

// checkControl rejects C0 control characters other than line feed.
// C0 bytes never occur inside multi-byte UTF-8 sequences, so a byte scan
// is exact even for invalid input.
func checkControl(value string) (string, bool) {
	for idx := 0; idx < len(value); idx++ {
		b := value[idx]
		if b < 0x20 && b != '\n' {
			return fmt.Sprintf("control character U+%04X at byte %d", b, idx), true
		}
	}
	return "", false
}

// checkEncoding rejects invalid UTF-8 and the replacement character that
// lossy upstream decoding leaves behind.
func checkEncoding(value string) (string, bool) {
	if !utf8.ValidString(value) {
		return "field is not valid UTF-8", true
	}
	if idx := strings.IndexRune(value, utf8.RuneError); idx >= 0 {
		return fmt.Sprintf("replacement character at byte %d", idx), true
	}
	return "", false
}
