package export_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/flashforge/pkg/card"
	"github.com/yaklabco/flashforge/pkg/export"
	"github.com/yaklabco/flashforge/pkg/fsutil"
)

func render(t *testing.T, opts export.Options, cards []card.Candidate) string {
	t.Helper()

	w, err := export.New(opts)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := w.Write(&buf, cards)
	require.NoError(t, err)
	require.Equal(t, len(cards), n)
	return buf.String()
}

func TestNew_RejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts export.Options
	}{
		{"unknown format", export.Options{Format: "xlsx"}},
		{"tag with space", export.Options{Tags: []string{"two words"}}},
		{"empty tag", export.Options{Tags: []string{""}}},
		{"multi-line deck", export.Options{Deck: "a\nb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := export.New(tt.opts)
			require.Error(t, err)
		})
	}

	_, err := export.New(export.Options{Format: "xlsx"})
	require.ErrorIs(t, err, export.ErrUnknownFormat)
}

func TestWrite_Tab(t *testing.T) {
	out := render(t, export.Options{}, []card.Candidate{
		{Front: "cat", Back: "gato"},
		{Front: "dog", Back: "perro"},
	})

	assert.Equal(t, "#separator:Tab\n#html:false\n#columns:Front\tBack\ncat\tgato\ndog\tperro\n", out)
}

func TestWrite_Headers(t *testing.T) {
	out := render(t, export.Options{
		Format: export.FormatCSV,
		HTML:   true,
		Deck:   "Spanish::Animals",
		Tags:   []string{"spanish", "vocab"},
		GUID:   true,
	}, nil)

	assert.Equal(t, strings.Join([]string{
		"#separator:Comma",
		"#html:true",
		"#deck:Spanish::Animals",
		"#tags:spanish vocab",
		"#guid column:3",
		"#columns:Front,Back,GUID",
	}, "\n")+"\n", out)
}

func TestWrite_QuotesFields(t *testing.T) {
	tests := []struct {
		name   string
		format export.Format
		card   card.Candidate
		want   string
	}{
		{"tab in field", export.FormatTab, card.Candidate{Front: "a\tb", Back: "c"}, "\"a\tb\"\tc\n"},
		{"newline in field", export.FormatTab, card.Candidate{Front: "q", Back: "line 1\nline 2"}, "q\t\"line 1\nline 2\"\n"},
		{"quote in field", export.FormatTab, card.Candidate{Front: `say "hi"`, Back: "hola"}, "\"say \"\"hi\"\"\"\thola\n"},
		{"comma in csv", export.FormatCSV, card.Candidate{Front: "one, two", Back: "uno"}, "\"one, two\",uno\n"},
		{"comma in tab is literal", export.FormatTab, card.Candidate{Front: "one, two", Back: "uno"}, "one, two\tuno\n"},
		{"leading hash", export.FormatTab, card.Candidate{Front: "#1 rule", Back: "x"}, "\"#1 rule\"\tx\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, export.Options{Format: tt.format}, []card.Candidate{tt.card})
			assert.True(t, strings.HasSuffix(out, tt.want), "got %q", out)
		})
	}
}

func TestWrite_HTML(t *testing.T) {
	out := render(t, export.Options{HTML: true}, []card.Candidate{
		{Front: "**bold** word", Back: "line one\nline two"},
	})

	assert.Contains(t, out, "<strong>bold</strong> word\t")
	assert.NotContains(t, out, "<p>")
	assert.Contains(t, out, "line one<br>")
}

func TestGUID(t *testing.T) {
	a := export.GUID(card.Candidate{Front: "cat", Back: "gato"})
	b := export.GUID(card.Candidate{Front: "cat", Back: "gato", SourceLine: 9})
	c := export.GUID(card.Candidate{Front: "gato", Back: "cat"})

	assert.Equal(t, a, b, "GUID must not depend on source position")
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 36)
}

func TestRead_RoundTrip(t *testing.T) {
	cards := []card.Candidate{
		{Front: "cat", Back: "gato"},
		{Front: "multi", Back: "line 1\nline 2"},
		{Front: `quote "q"`, Back: "a\tb"},
		{Front: "#tag", Back: "hash"},
	}

	for _, format := range []export.Format{export.FormatTab, export.FormatCSV} {
		t.Run(string(format), func(t *testing.T) {
			out := render(t, export.Options{Format: format, Deck: "Deck", Tags: []string{"x"}, GUID: true}, cards)

			doc, err := export.Read(strings.NewReader(out), "")
			require.NoError(t, err)

			assert.Equal(t, format, doc.Headers.Format)
			assert.Equal(t, "Deck", doc.Headers.Deck)
			assert.Equal(t, []string{"x"}, doc.Headers.Tags)
			assert.Equal(t, 3, doc.Headers.GUIDColumn)
			require.Len(t, doc.Cards, len(cards))
			require.Len(t, doc.GUIDs, len(cards))

			for i, want := range cards {
				assert.Equal(t, want.Front, doc.Cards[i].Front)
				assert.Equal(t, want.Back, doc.Cards[i].Back)
				assert.Equal(t, export.GUID(want), doc.GUIDs[i])
			}
		})
	}
}

func TestRead_SourceLines(t *testing.T) {
	input := "#separator:Tab\n#html:false\ncat\tgato\n\"two\nlines\"\tback\ndog\tperro\n"

	doc, err := export.Read(strings.NewReader(input), "")
	require.NoError(t, err)
	require.Len(t, doc.Cards, 3)

	assert.Equal(t, 3, doc.Cards[0].SourceLine)
	assert.Equal(t, 4, doc.Cards[1].SourceLine)
	assert.Equal(t, 6, doc.Cards[2].SourceLine)
}

func TestRead_NoHeadersUsesFallback(t *testing.T) {
	doc, err := export.Read(strings.NewReader("cat,gato\nlonely\n"), export.FormatCSV)
	require.NoError(t, err)
	require.Len(t, doc.Cards, 2)

	assert.Equal(t, card.Candidate{Front: "cat", Back: "gato", SourceLine: 1}, doc.Cards[0])
	assert.Equal(t, "lonely", doc.Cards[1].Front)
	assert.Empty(t, doc.Cards[1].Back)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad separator", "#separator:Semicolon\na;b\n"},
		{"bad html", "#html:maybe\n"},
		{"bad guid column", "#guid column:zero\n"},
		{"bare quote", "#separator:Tab\nsay \"hi\tx\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := export.Read(strings.NewReader(tt.input), "")
			require.Error(t, err)
		})
	}
}

func TestWriteFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "deck.txt")
	backup := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	w, err := export.New(export.Options{})
	require.NoError(t, err)

	first, err := w.WriteFile(ctx, path, []card.Candidate{{Front: "cat", Back: "gato"}}, backup)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Exported)
	assert.Empty(t, first.BackupPath)

	second, err := w.WriteFile(ctx, path, []card.Candidate{{Front: "dog", Back: "perro"}}, backup)
	require.NoError(t, err)
	assert.Equal(t, path+fsutil.BackupSuffix, second.BackupPath)

	saved, err := os.ReadFile(second.BackupPath)
	require.NoError(t, err)
	assert.Contains(t, string(saved), "cat\tgato")

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(current), "dog\tperro")
}
