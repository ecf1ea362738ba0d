package cli

import (
	"errors"

	"github.com/yaklabco/flashforge/pkg/runner"
)

// Exit codes for flashforge.
const (
	// ExitSuccess indicates every candidate passed.
	ExitSuccess = 0

	// ExitInvalidCards indicates invalid cards or unreadable inputs.
	ExitInvalidCards = 1

	// ExitDiagnostics indicates skipped input in strict mode.
	ExitDiagnostics = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrInvalidCardsFound is returned when candidates fail validation.
	ErrInvalidCardsFound = errors.New("invalid cards found")

	// ErrDiagnosticsFound is returned in strict mode when input was skipped.
	ErrDiagnosticsFound = errors.New("input lines skipped")

	// ErrConfig marks configuration failures.
	ErrConfig = errors.New("configuration error")

	// ErrUsage marks invalid flag combinations.
	ErrUsage = errors.New("invalid usage")

	// ErrExport marks failures writing the export.
	ErrExport = errors.New("export failed")
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasInvalid() {
		return ExitInvalidCards
	}

	if strict && result.HasDiagnostics() {
		return ExitDiagnostics
	}

	return ExitSuccess
}

// errorForExitCode maps a result exit code to the error a command returns.
func errorForExitCode(code int) error {
	switch code {
	case ExitInvalidCards:
		return ErrInvalidCardsFound
	case ExitDiagnostics:
		return ErrDiagnosticsFound
	default:
		return nil
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrInvalidCardsFound):
		return ExitInvalidCards
	case errors.Is(err, ErrDiagnosticsFound):
		return ExitDiagnostics
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrExport):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// IsResultSignal reports whether err only signals the outcome of a run and
// has already been reported to the user.
func IsResultSignal(err error) bool {
	return errors.Is(err, ErrInvalidCardsFound) || errors.Is(err, ErrDiagnosticsFound)
}
