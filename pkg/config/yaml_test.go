package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/flashforge/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		clone := c.Clone()
		assert.Nil(t, clone)
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies slices", func(t *testing.T) {
		original := config.NewConfig()
		original.Ignore = []string{"drafts/**"}
		original.Export.Tags = []string{"spanish"}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.Export.Tags[0] = "changed"
		clone.QA.QuestionMarkers[0] = "changed"

		assert.Equal(t, "drafts/**", original.Ignore[0])
		assert.Equal(t, "spanish", original.Export.Tags[0])
		assert.Equal(t, "Q:", original.QA.QuestionMarkers[0])
	})

	t.Run("preserves CLI fields", func(t *testing.T) {
		original := config.NewConfig()
		original.DryRun = true
		original.Format = config.FormatJSON
		original.Output = "deck.txt"
		original.Strict = true
		original.Jobs = 4
		original.NoBackups = true

		clone := original.Clone()
		assert.True(t, clone.DryRun)
		assert.Equal(t, config.FormatJSON, clone.Format)
		assert.Equal(t, "deck.txt", clone.Output)
		assert.True(t, clone.Strict)
		assert.Equal(t, 4, clone.Jobs)
		assert.True(t, clone.NoBackups)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Strategy = "cloze"
		cfg.Output = "never-persisted.txt"

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "strategy: cloze")
		assert.Contains(t, string(data), "max_field_bytes: 131072")
		assert.NotContains(t, string(data), "never-persisted")
	})

	t.Run("round trips", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Export.Deck = "Spanish::Verbs"

		data, err := cfg.ToYAML()
		require.NoError(t, err)

		parsed, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, "Spanish::Verbs", parsed.Export.Deck)
		assert.Equal(t, cfg.QA, parsed.QA)
		assert.InDelta(t, cfg.Dedupe.Threshold, parsed.Dedupe.Threshold, 1e-9)
	})

	t.Run("header is prepended", func(t *testing.T) {
		data, err := config.NewConfig().ToYAMLWithHeader("# generated")
		require.NoError(t, err)
		assert.True(t, len(data) > 0)
		assert.Equal(t, "# generated\n\n", string(data[:13]))
	})
}

func TestFromYAML(t *testing.T) {
	t.Run("parses valid YAML", func(t *testing.T) {
		yaml := []byte(`
strategy: delimiter
delimiter:
  token: " - "
export:
  format: csv
  tags: [vocab, verbs]
`)
		cfg, err := config.FromYAML(yaml)
		require.NoError(t, err)
		assert.Equal(t, "delimiter", cfg.Strategy)
		assert.Equal(t, " - ", cfg.Delimiter.Token)
		assert.Equal(t, config.ExportCSV, cfg.Export.Format)
		assert.Equal(t, []string{"vocab", "verbs"}, cfg.Export.Tags)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		_, err := config.FromYAML([]byte("strategy: [unclosed"))
		require.Error(t, err)
	})
}

func TestFromTOML(t *testing.T) {
	t.Run("parses valid TOML", func(t *testing.T) {
		data := []byte(`
strategy = "qa"

[qa]
question_markers = ["Q:"]
answer_markers = ["A:"]

[dedupe]
enabled = true
threshold = 0.9
`)
		cfg, err := config.FromTOML(data)
		require.NoError(t, err)
		assert.Equal(t, "qa", cfg.Strategy)
		assert.Equal(t, []string{"Q:"}, cfg.QA.QuestionMarkers)
		assert.True(t, cfg.Dedupe.Enabled)
		assert.InDelta(t, 0.9, cfg.Dedupe.Threshold, 1e-9)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		_, err := config.FromTOML([]byte(`stratgy = "qa"`))
		require.Error(t, err)
	})

	t.Run("round trips", func(t *testing.T) {
		data, err := config.NewConfig().ToTOML()
		require.NoError(t, err)

		parsed, err := config.FromTOML(data)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultStrategy, parsed.Strategy)
		assert.Equal(t, config.DefaultDelimiter, parsed.Delimiter.Token)
	})
}

func TestExportFormatIsValid(t *testing.T) {
	assert.True(t, config.ExportTab.IsValid())
	assert.True(t, config.ExportCSV.IsValid())
	assert.False(t, config.ExportFormat("apkg").IsValid())
}
