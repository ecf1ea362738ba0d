package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/flashforge/pkg/reporter"
	"github.com/yaklabco/flashforge/pkg/runner"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "unknown format", input: "xml", wantErr: true},
		{name: "case insensitive", input: "JSON", want: reporter.FormatJSON},
		{name: "sarif is not supported", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	tests := []struct {
		format reporter.Format
		want   bool
	}{
		{reporter.FormatText, true},
		{reporter.FormatTable, true},
		{reporter.FormatJSON, true},
		{reporter.FormatSummary, true},
		{reporter.Format("unknown"), false},
		{reporter.Format(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.format.IsValid())
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "table reporter", format: reporter.FormatTable},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "summary reporter", format: reporter.FormatSummary},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: tt.format, Color: "never"})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

// Every format reports the same problem count for the same result.
func TestReport_CountsAgreeAcrossFormats(t *testing.T) {
	for _, format := range []reporter.Format{
		reporter.FormatText, reporter.FormatTable, reporter.FormatJSON, reporter.FormatSummary,
	} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: format, Color: "never", ShowSummary: true})
			require.NoError(t, err)

			count, err := rep.Report(context.Background(), sampleResult())
			require.NoError(t, err)
			assert.Equal(t, 3, count, "one invalid field, one skipped line, one duplicate group")
			assert.NotEmpty(t, buf.String())
		})
	}
}

func TestTextReporter_Grouped(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		GroupByFile: true,
		ShowFront:   true,
		ShowSummary: true,
	})

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	out := buf.String()
	assert.Contains(t, out, "deck.txt")
	assert.Contains(t, out, "(3 problems)")
	assert.Contains(t, out, "deck.txt:2")
	assert.Contains(t, out, "back is empty")
	assert.Contains(t, out, "(empty-back)")
	assert.Contains(t, out, "line has no delimiter")
	assert.Contains(t, out, "(duplicate-exact)")
	assert.Contains(t, out, "front: dog")
	assert.Equal(t, 1, strings.Count(out, "(3 problems)"))
}

func TestTextReporter_FlatHidesFront(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never"})

	_, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "problems)")
	assert.NotContains(t, out, "front:")
	assert.Contains(t, out, "back is empty")
}

func TestTextReporter_FileErrors(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", GroupByFile: true})

	count, err := rep.Report(context.Background(), erroredResult())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "broken.txt: error: binary input")
}

func TestTextReporter_NoFiles(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "No files to convert.")
}

func TestTableReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTableReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	out := buf.String()
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "empty-back")
	assert.Contains(t, out, "Legend:")
	assert.Contains(t, out, "1 duplicate cards left out of the export")
}

func TestTableReporter_AllPassed(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTableReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), cleanResult())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "All cards passed!")
	assert.Contains(t, buf.String(), "1 cards exportable")
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, IncludeCards: true})

	count, err := rep.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	require.Len(t, output.Files, 1)
	file := output.Files[0]
	assert.Equal(t, "deck.txt", file.Path)
	assert.Len(t, file.Cards, 3)
	assert.False(t, file.Cards[1].Valid)
	assert.Len(t, file.Problems, 3)
	assert.Len(t, file.Duplicates, 1)
	assert.Equal(t, 1, file.Exportable)
	assert.Equal(t, 1, file.IssueCounts["empty-back"])

	assert.Equal(t, 3, output.Summary.TotalProblems)
	assert.Equal(t, 3, output.Summary.Candidates)
	assert.Equal(t, 1, output.Summary.Invalid)
}

func TestJSONReporter_CompactOmitsCards(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	_, err := rep.Report(context.Background(), cleanResult())
	require.NoError(t, err)

	out := strings.TrimSpace(buf.String())
	assert.NotContains(t, out, "\n")
	assert.NotContains(t, out, `"cards"`)
	assert.Contains(t, out, `"problems":[]`)
}

func TestJSONReporter_FileError(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	_, err := rep.Report(context.Background(), erroredResult())
	require.NoError(t, err)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	require.Len(t, output.Files, 1)
	assert.Equal(t, "binary input", output.Files[0].Error)
	assert.Equal(t, 1, output.Summary.FilesErrored)
}
