package export

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/flashforge/pkg/card"
)

// Headers are the Anki file headers found at the top of an export.
type Headers struct {
	Format Format   `json:"format"`
	HTML   bool     `json:"html"`
	Deck   string   `json:"deck,omitempty"`
	Tags   []string `json:"tags,omitempty"`

	// GUIDColumn is the 1-based GUID column, or 0 when there is none.
	GUIDColumn int `json:"guidColumn,omitempty"`
}

// Document is an export read back into cards.
type Document struct {
	Headers Headers

	// Cards hold the front and back columns. SourceLine is the line each
	// record starts on.
	Cards []card.Candidate

	// GUIDs are parallel to Cards when the file has a GUID column.
	GUIDs []string
}

// Read parses an export. Without a #separator header the separator is
// taken from fallback.
func Read(r io.Reader, fallback Format) (*Document, error) {
	br := bufio.NewReader(r)

	doc := &Document{Headers: Headers{Format: fallback}}
	if doc.Headers.Format == "" {
		doc.Headers.Format = FormatTab
	}

	headerLines, err := readHeaders(br, &doc.Headers)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(br)
	cr.Comma = doc.Headers.Format.Separator()
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	guidIndex := doc.Headers.GUIDColumn - 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, fmt.Errorf("line %d: %w", headerLines+parseErr.Line, parseErr.Err)
			}
			return nil, fmt.Errorf("read export: %w", err)
		}

		line, _ := cr.FieldPos(0)

		var guid string
		fields := make([]string, 0, len(record))
		for i, field := range record {
			if i == guidIndex {
				guid = field
				continue
			}
			fields = append(fields, field)
		}

		c := card.Candidate{SourceLine: headerLines + line}
		if len(fields) > 0 {
			c.Front = fields[0]
		}
		if len(fields) > 1 {
			c.Back = fields[1]
		}
		doc.Cards = append(doc.Cards, c)
		if guidIndex >= 0 {
			doc.GUIDs = append(doc.GUIDs, guid)
		}
	}

	return doc, nil
}

// readHeaders consumes leading '#' lines and returns how many it read.
func readHeaders(br *bufio.Reader, headers *Headers) (int, error) {
	count := 0
	for {
		peek, err := br.Peek(1)
		if err != nil || peek[0] != '#' {
			return count, nil //nolint:nilerr // EOF or short input ends the header block.
		}

		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return count, fmt.Errorf("read header: %w", err)
		}
		count++

		if err := applyHeader(headers, strings.TrimRight(line, "\r\n")); err != nil {
			return count, fmt.Errorf("line %d: %w", count, err)
		}
	}
}

func applyHeader(headers *Headers, line string) error {
	key, value, ok := strings.Cut(strings.TrimPrefix(line, "#"), ":")
	if !ok {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(key)) {
	case "separator":
		switch strings.ToLower(value) {
		case "tab", "\t":
			headers.Format = FormatTab
		case "comma", ",":
			headers.Format = FormatCSV
		default:
			return fmt.Errorf("unsupported separator %q", value)
		}
	case "html":
		html, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid html header %q", value)
		}
		headers.HTML = html
	case "deck":
		headers.Deck = value
	case "tags":
		headers.Tags = strings.Fields(value)
	case "guid column":
		column, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || column < 1 {
			return fmt.Errorf("invalid guid column %q", value)
		}
		headers.GUIDColumn = column
	}
	return nil
}
