// Package export writes validated cards as Anki text import files and
// reads such files back.
//
// An export starts with Anki file headers (lines beginning with '#')
// followed by one record per card. Fields are quoted when they contain the
// separator, a double quote or a line break, so any field value survives a
// round trip through Read.
package export

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/yaklabco/flashforge/pkg/card"
	"github.com/yaklabco/flashforge/pkg/fsutil"
)

// Format is the record layout of an export.
type Format string

const (
	// FormatTab separates fields with a tab.
	FormatTab Format = "tab"

	// FormatCSV separates fields with a comma.
	FormatCSV Format = "csv"
)

// ErrUnknownFormat is returned for a Format other than tab or csv.
var ErrUnknownFormat = errors.New("unknown export format")

// Separator returns the field separator for the format.
func (f Format) Separator() rune {
	if f == FormatCSV {
		return ','
	}
	return '\t'
}

// Extension returns the conventional file extension for the format.
func (f Format) Extension() string {
	if f == FormatCSV {
		return ".csv"
	}
	return ".txt"
}

// headerName is the value of the #separator header.
func (f Format) headerName() string {
	if f == FormatCSV {
		return "Comma"
	}
	return "Tab"
}

// Options controls what an export contains.
type Options struct {
	// Format selects tab or comma separated records. Empty means tab.
	Format Format

	// HTML renders fields from Markdown to HTML and marks the file as HTML.
	HTML bool

	// Deck is the target deck name. Empty leaves the choice to the importer.
	Deck string

	// Tags are applied to every imported note.
	Tags []string

	// GUID appends a stable identifier column derived from each card.
	GUID bool
}

//nolint:gochecknoglobals // Fixed namespace; changing it changes every exported GUID.
var guidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/yaklabco/flashforge/guid"))

// GUID returns the stable identifier of c. It depends only on the front and
// back text, so re-importing an unchanged card updates the existing note.
func GUID(c card.Candidate) string {
	return uuid.NewSHA1(guidNamespace, []byte(c.Front+"\x1f"+c.Back)).String()
}

// Writer renders cards in one export layout. It is safe for concurrent use.
type Writer struct {
	opts     Options
	renderer *renderer
}

// New returns a Writer for opts.
func New(opts Options) (*Writer, error) {
	if opts.Format == "" {
		opts.Format = FormatTab
	}
	if opts.Format != FormatTab && opts.Format != FormatCSV {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
	for _, tag := range opts.Tags {
		if tag == "" || strings.ContainsAny(tag, " \t\r\n") {
			return nil, fmt.Errorf("invalid tag %q: tags must be non-empty and contain no whitespace", tag)
		}
	}
	if strings.ContainsAny(opts.Deck, "\r\n") {
		return nil, fmt.Errorf("invalid deck name %q: must be a single line", opts.Deck)
	}

	w := &Writer{opts: opts}
	if opts.HTML {
		w.renderer = newRenderer()
	}
	return w, nil
}

// Options returns the writer's options.
func (w *Writer) Options() Options {
	return w.opts
}

// Headers returns the Anki header lines, without line endings.
func (w *Writer) Headers() []string {
	headers := []string{
		"#separator:" + w.opts.Format.headerName(),
		"#html:" + strconv.FormatBool(w.opts.HTML),
	}
	if w.opts.Deck != "" {
		headers = append(headers, "#deck:"+w.opts.Deck)
	}
	if len(w.opts.Tags) > 0 {
		headers = append(headers, "#tags:"+strings.Join(w.opts.Tags, " "))
	}

	sep := string(w.opts.Format.Separator())
	columns := []string{"Front", "Back"}
	if w.opts.GUID {
		columns = append(columns, "GUID")
		headers = append(headers, "#guid column:"+strconv.Itoa(len(columns)))
	}
	headers = append(headers, "#columns:"+strings.Join(columns, sep))

	return headers
}

// Write writes the headers and one record per card to out, and returns the
// number of cards written.
func (w *Writer) Write(out io.Writer, cards []card.Candidate) (int, error) {
	bw := bufio.NewWriter(out)

	for _, header := range w.Headers() {
		if _, err := bw.WriteString(header + "\n"); err != nil {
			return 0, fmt.Errorf("write header: %w", err)
		}
	}

	sep := w.opts.Format.Separator()
	for i, c := range cards {
		fields, err := w.fields(c)
		if err != nil {
			return i, fmt.Errorf("card %d: %w", i+1, err)
		}
		if err := writeRecord(bw, sep, fields); err != nil {
			return i, fmt.Errorf("write card %d: %w", i+1, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("flush export: %w", err)
	}
	return len(cards), nil
}

func (w *Writer) fields(c card.Candidate) ([]string, error) {
	front, back := c.Front, c.Back
	if w.renderer != nil {
		var err error
		if front, err = w.renderer.render(front); err != nil {
			return nil, fmt.Errorf("render front: %w", err)
		}
		if back, err = w.renderer.render(back); err != nil {
			return nil, fmt.Errorf("render back: %w", err)
		}
	}

	fields := []string{front, back}
	if w.opts.GUID {
		fields = append(fields, GUID(c))
	}
	return fields, nil
}

// FileResult describes a completed WriteFile.
type FileResult struct {
	Path     string `json:"path"`
	Exported int    `json:"exported"`

	// BackupPath is set when an existing export was backed up first.
	BackupPath string `json:"backupPath,omitempty"`
}

// WriteFile writes cards to path atomically. An existing file is first
// copied to its sidecar backup when backups are enabled.
func (w *Writer) WriteFile(ctx context.Context, path string, cards []card.Candidate, backup fsutil.BackupConfig) (*FileResult, error) {
	result := &FileResult{Path: path}

	backedUp, err := fsutil.CreateBackup(ctx, path, backup)
	if err != nil {
		return nil, fmt.Errorf("back up %s: %w", path, err)
	}
	if backedUp {
		result.BackupPath = fsutil.BackupPath(path, backup.Mode)
	}

	err = fsutil.WriteAtomicFunc(ctx, path, fsutil.DefaultFileMode, func(out io.Writer) error {
		n, err := w.Write(out, cards)
		result.Exported = n
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", path, err)
	}

	return result, nil
}
