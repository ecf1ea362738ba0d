// Package source reads conversion input from files or stdin and turns it
// into the plain text the parsers consume.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// StdinPath is the path argument that selects standard input.
const StdinPath = "-"

// ErrBinaryInput is returned for content that is not text.
var ErrBinaryInput = errors.New("input is binary")

//nolint:gochecknoglobals // Read-only byte sequence.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Format is the markup of a source document.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// extensionFormats maps lowercase extensions to formats.
//
//nolint:gochecknoglobals // Read-only lookup table.
var extensionFormats = map[string]Format{
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".html":     FormatHTML,
	".htm":      FormatHTML,
}

// Extensions returns the file extensions recognized as input, sorted.
func Extensions() []string {
	return []string{".htm", ".html", ".markdown", ".md", ".text", ".txt"}
}

// FormatForPath returns the format implied by path's extension.
// Unknown extensions and stdin are treated as plain text.
func FormatForPath(path string) Format {
	if format, ok := extensionFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return format
	}
	return FormatText
}

// Document is a loaded source.
type Document struct {
	// Path is the file path, or "-" for stdin.
	Path string

	// Format is the markup the content was written in.
	Format Format

	// Text is the content handed to the parser.
	Text string

	// Title is the HTML <title>, when the source had one.
	Title string
}

// Options controls how sources are read.
type Options struct {
	// Encoding names the input charset as understood by the WHATWG encoding
	// index, e.g. "windows-1252" or "shift_jis". Empty means UTF-8.
	Encoding string

	// Format overrides the format implied by the path.
	Format Format
}

// Loader reads documents. It is safe for concurrent use.
type Loader struct {
	opts    Options
	decoder encoding.Encoding
	html    *htmlConverter
}

// NewLoader validates opts and returns a Loader.
func NewLoader(opts Options) (*Loader, error) {
	loader := &Loader{opts: opts, html: newHTMLConverter()}

	if opts.Encoding != "" {
		enc, err := htmlindex.Get(opts.Encoding)
		if err != nil {
			return nil, fmt.Errorf("unknown encoding %q: %w", opts.Encoding, err)
		}
		// UTF-8 is passed through untouched so invalid bytes stay visible
		// to validation instead of being replaced during decoding.
		if name, _ := htmlindex.Name(enc); name != "utf-8" {
			loader.decoder = enc
		}
	}

	return loader, nil
}

// Load reads path, or stdin when path is "-".
func (l *Loader) Load(path string) (*Document, error) {
	if path == StdinPath {
		return l.Read(StdinPath, os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer file.Close()

	return l.Read(path, file)
}

// Read loads a document from r, using path to pick the format.
func (l *Loader) Read(path string, r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return l.Decode(path, raw)
}

// Decode turns raw bytes into a document.
func (l *Loader) Decode(path string, raw []byte) (*Document, error) {
	if l.decoder != nil {
		decoded, err := l.decoder.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s as %s: %w", path, l.opts.Encoding, err)
		}
		raw = decoded
	}

	if enry.IsBinary(raw) {
		return nil, fmt.Errorf("%s: %w", path, ErrBinaryInput)
	}

	raw = bytes.TrimPrefix(raw, utf8BOM)

	doc := &Document{Path: path, Format: l.opts.Format}
	if doc.Format == "" {
		doc.Format = FormatForPath(path)
	}

	if doc.Format != FormatHTML {
		doc.Text = string(raw)
		return doc, nil
	}

	doc.Title = extractTitle(string(raw))
	text, err := l.html.convert(string(raw))
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}
	doc.Text = text

	return doc, nil
}
