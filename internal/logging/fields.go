// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Conversion fields.
	FieldStrategy     = "strategy"
	FieldEncoding     = "encoding"
	FieldExportFormat = "export_format"
	FieldDryRun       = "dry_run"
	FieldJobs         = "jobs"
	FieldLine         = "line"
	FieldKind         = "kind"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldCandidates      = "candidates"
	FieldValid           = "valid"
	FieldInvalid         = "invalid"
	FieldDiagnostics     = "diagnostics"
	FieldDuplicates      = "duplicates"
	FieldExported        = "exported"

	// Version fields.
	FieldVersion  = "version"
	FieldCommit   = "commit"
	FieldBuilt    = "built"
	FieldGo       = "go"
	FieldPlatform = "platform"
)
