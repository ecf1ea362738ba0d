package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/flashforge/pkg/card"
	"github.com/yaklabco/flashforge/pkg/config"
	"github.com/yaklabco/flashforge/pkg/runner"
	"github.com/yaklabco/flashforge/pkg/source"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newConverter(t *testing.T, mutate func(*config.Config)) *runner.Converter {
	t.Helper()
	cfg := config.NewConfig()
	if mutate != nil {
		mutate(cfg)
	}
	conv, err := runner.NewConverter(runner.ConverterOptionsFromConfig(cfg))
	require.NoError(t, err)
	return conv
}

func TestConverterOptionsFromConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Strategy = "cloze"
	cfg.Cloze.Placeholder = "___"
	cfg.Input.Encoding = "latin1"
	cfg.Validation.MaxFieldBytes = 64

	opts := runner.ConverterOptionsFromConfig(cfg)
	assert.Equal(t, card.StrategyCloze, opts.Strategy)
	assert.Equal(t, "___", opts.Parse.Cloze.Placeholder)
	assert.Equal(t, "latin1", opts.Source.Encoding)
	assert.Equal(t, 64, opts.Validate.MaxFieldBytes)
	assert.Nil(t, opts.Dedupe)

	cfg.Dedupe.Enabled = true
	opts = runner.ConverterOptionsFromConfig(cfg)
	require.NotNil(t, opts.Dedupe)
	assert.InDelta(t, config.DefaultDedupeThreshold, opts.Dedupe.Threshold, 1e-9)
}

func TestNewConverter_RejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown strategy", func(c *config.Config) { c.Strategy = "haiku" }},
		{"empty delimiter", func(c *config.Config) { c.Strategy = "delimiter"; c.Delimiter.Token = "" }},
		{"zero field size", func(c *config.Config) { c.Validation.MaxFieldBytes = 0 }},
		{"unknown encoding", func(c *config.Config) { c.Input.Encoding = "klingon" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			tt.mutate(cfg)
			_, err := runner.NewConverter(runner.ConverterOptionsFromConfig(cfg))
			require.Error(t, err)
		})
	}
}

func TestConverter_ConvertReader(t *testing.T) {
	conv := newConverter(t, func(c *config.Config) { c.Strategy = "delimiter" })

	input := "cat    gato\nno delimiter here\n    perro\n"
	result, err := conv.ConvertReader(context.Background(), source.StdinPath, strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, card.StrategyDelimiter, result.Strategy)
	assert.Equal(t, 2, result.Candidates())
	assert.Equal(t, 1, result.Invalid())
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, card.DiagMissingDelimiter, result.Diagnostics[0].Kind)
	assert.Equal(t, []card.Candidate{{Front: "cat", Back: "gato", SourceLine: 1}}, result.Exportable)
	assert.Nil(t, result.Duplicates)
}

func TestConverter_Dedupe(t *testing.T) {
	conv := newConverter(t, func(c *config.Config) {
		c.Strategy = "delimiter"
		c.Delimiter.Token = " = "
		c.Dedupe.Enabled = true
	})

	input := "cat = gato\ncat = el gato\ngato = cat\ndog = perro\n"
	result, err := conv.ConvertReader(context.Background(), "deck.txt", strings.NewReader(input))
	require.NoError(t, err)

	require.NotNil(t, result.Duplicates)
	assert.Len(t, result.Passing, 4)
	assert.Equal(t, 2, result.Removed())
	require.Len(t, result.Exportable, 2)
	assert.Equal(t, "cat", result.Exportable[0].Front)
	assert.Equal(t, "dog", result.Exportable[1].Front)
}

func TestConverter_ConvertCandidates(t *testing.T) {
	conv := newConverter(t, func(c *config.Config) { c.Dedupe.Enabled = true })

	result := conv.ConvertCandidates("export.txt", []card.Candidate{
		{Front: "cat", Back: "gato", SourceLine: 1},
		{Front: "", Back: "perro", SourceLine: 2},
		{Front: "Cat.", Back: "gato", SourceLine: 3},
	})

	assert.Equal(t, "export.txt", result.Path)
	assert.Empty(t, result.Diagnostics)
	assert.Equal(t, 3, result.Candidates())
	assert.Equal(t, 1, result.Invalid())
	assert.Equal(t, []card.IssueKind{card.IssueEmptyFront}, result.Verdicts[1].Issues)
	assert.Equal(t, 1, result.Removed())
	assert.Equal(t, []card.Candidate{{Front: "cat", Back: "gato", SourceLine: 1}}, result.Exportable)
}

func TestConverter_ConvertFileErrors(t *testing.T) {
	conv := newConverter(t, nil)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"blob.txt": "\x00\x01\x02binary"})

	_, err := conv.ConvertFile(context.Background(), filepath.Join(dir, "blob.txt"))
	require.ErrorIs(t, err, source.ErrBinaryInput)

	_, err = conv.ConvertFile(context.Background(), filepath.Join(dir, "missing.txt"))
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = conv.ConvertFile(ctx, filepath.Join(dir, "blob.txt"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunner_Run(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.txt":         "dog\nperro\n",
		"a.md":          "cat\ngato\n",
		"notes.pdf":     "ignored",
		"sub/c.txt":     "sun\nsol\n\nlonely\n",
		"bad.txt":       "\x00\x00\x00",
		"drafts/d.txt":  "moon\nluna\n",
		".hidden/e.txt": "star\nestrella\n",
	})

	r := runner.New(newConverter(t, nil))
	result, err := r.Run(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"drafts/**"},
		Jobs:         3,
	})
	require.NoError(t, err)

	paths := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		paths = append(paths, filepath.Base(f.Path))
	}
	assert.Equal(t, []string{"a.md", "b.txt", "bad.txt", "c.txt"}, paths)

	stats := result.Stats
	assert.Equal(t, 4, stats.FilesDiscovered)
	assert.Equal(t, 3, stats.FilesProcessed)
	assert.Equal(t, 1, stats.FilesErrored)
	assert.Equal(t, 3, stats.Candidates)
	assert.Equal(t, 3, stats.Valid)
	assert.Equal(t, 1, stats.Diagnostics)
	assert.Equal(t, 1, stats.FilesWithProblems)
	assert.Equal(t, 3, stats.Exportable)
	assert.True(t, result.HasInvalid())
	assert.True(t, result.HasDiagnostics())

	exported := result.Exportable()
	require.Len(t, exported, 3)
	assert.Equal(t, "cat", exported[0].Front)
	assert.Equal(t, "dog", exported[1].Front)
	assert.Equal(t, "sun", exported[2].Front)
}

func TestRunner_IssuesByKind(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"deck.txt": "tab\there\nnext\n"})

	r := runner.New(newConverter(t, nil))
	result, err := r.Run(context.Background(), runner.Options{Paths: []string{"deck.txt"}, WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.Invalid)
	assert.Equal(t, 1, result.Stats.IssuesByKind[card.IssueInvalidControlCharacter])
	assert.Empty(t, result.Exportable())
}

func TestRunner_EmptyDirectory(t *testing.T) {
	r := runner.New(newConverter(t, nil))
	result, err := r.Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasInvalid())
}

func TestSingle(t *testing.T) {
	conv := newConverter(t, nil)
	c, err := conv.ConvertReader(context.Background(), "-", strings.NewReader("a\nb\n"))
	require.NoError(t, err)

	result := runner.Single("-", c, nil)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.Exportable)
}
