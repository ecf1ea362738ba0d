package source_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/flashforge/pkg/source"
)

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want source.Format
	}{
		{"notes.txt", source.FormatText},
		{"notes.TEXT", source.FormatText},
		{"notes.md", source.FormatMarkdown},
		{"notes.markdown", source.FormatMarkdown},
		{"page.html", source.FormatHTML},
		{"page.HTM", source.FormatHTML},
		{"-", source.FormatText},
		{"README", source.FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, source.FormatForPath(tt.path))
		})
	}
}

func TestLoader_PassesUTF8Through(t *testing.T) {
	loader, err := source.NewLoader(source.Options{})
	require.NoError(t, err)

	raw := []byte("cat\ngato\ncaf\xe9\n")
	doc, err := loader.Decode("notes.txt", raw)
	require.NoError(t, err)
	assert.Equal(t, string(raw), doc.Text)
	assert.Equal(t, source.FormatText, doc.Format)
}

func TestLoader_ExplicitUTF8IsNotReplaced(t *testing.T) {
	loader, err := source.NewLoader(source.Options{Encoding: "utf8"})
	require.NoError(t, err)

	doc, err := loader.Decode("notes.txt", []byte("caf\xe9"))
	require.NoError(t, err)
	assert.Equal(t, "caf\xe9", doc.Text)
}

func TestLoader_DecodesCharset(t *testing.T) {
	loader, err := source.NewLoader(source.Options{Encoding: "windows-1252"})
	require.NoError(t, err)

	doc, err := loader.Decode("notes.txt", []byte("caf\xe9\nna\xefve"))
	require.NoError(t, err)
	assert.Equal(t, "café\nnaïve", doc.Text)
}

func TestLoader_UnknownEncoding(t *testing.T) {
	_, err := source.NewLoader(source.Options{Encoding: "klingon"})
	require.Error(t, err)
}

func TestLoader_RejectsBinary(t *testing.T) {
	loader, err := source.NewLoader(source.Options{})
	require.NoError(t, err)

	_, err = loader.Decode("image.txt", []byte{0x89, 'P', 'N', 'G', 0x00, 0x00, 0x01})
	require.ErrorIs(t, err, source.ErrBinaryInput)
}

func TestLoader_StripsBOM(t *testing.T) {
	loader, err := source.NewLoader(source.Options{})
	require.NoError(t, err)

	doc, err := loader.Decode("notes.txt", []byte("\xef\xbb\xbfcat\ngato"))
	require.NoError(t, err)
	assert.Equal(t, "cat\ngato", doc.Text)
}

func TestLoader_ConvertsHTML(t *testing.T) {
	loader, err := source.NewLoader(source.Options{})
	require.NoError(t, err)

	page := `<html><head><title>Spanish Animals</title><script>var x = 1;</script></head>
<body><p>cat    gato</p><p>dog    perro</p></body></html>`

	doc, err := loader.Decode("animals.html", []byte(page))
	require.NoError(t, err)
	assert.Equal(t, source.FormatHTML, doc.Format)
	assert.Equal(t, "Spanish Animals", doc.Title)
	assert.Contains(t, doc.Text, "cat")
	assert.Contains(t, doc.Text, "dog")
	assert.NotContains(t, doc.Text, "<p>")
	assert.NotContains(t, doc.Text, "var x")
}

func TestLoader_FormatOverride(t *testing.T) {
	loader, err := source.NewLoader(source.Options{Format: source.FormatHTML})
	require.NoError(t, err)

	doc, err := loader.Read(source.StdinPath, strings.NewReader("<p>hello</p>"))
	require.NoError(t, err)
	assert.Equal(t, "hello", doc.Text)
}

func TestLoader_Load(t *testing.T) {
	loader, err := source.NewLoader(source.Options{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "deck.md")
	require.NoError(t, os.WriteFile(path, []byte("Q: one\nA: two\n"), 0o644))

	doc, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, source.FormatMarkdown, doc.Format)
	assert.Equal(t, "Q: one\nA: two\n", doc.Text)

	_, err = loader.Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}
