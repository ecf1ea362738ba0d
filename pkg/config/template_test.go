package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/flashforge/pkg/config"
)

func TestGenerateTemplate(t *testing.T) {
	t.Run("minimal template parses", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultStrategy, cfg.Strategy)
	})

	t.Run("full template carries defaults", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true, Format: "yaml"})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		defaults := config.NewConfig()
		assert.Equal(t, defaults.Delimiter, cfg.Delimiter)
		assert.Equal(t, defaults.Cloze, cfg.Cloze)
		assert.Equal(t, defaults.QA, cfg.QA)
		assert.Equal(t, defaults.Validation, cfg.Validation)
		assert.Equal(t, defaults.Export.Format, cfg.Export.Format)
		assert.Equal(t, defaults.Backups, cfg.Backups)
	})

	t.Run("toml template parses", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Format: "toml"})
		require.NoError(t, err)

		cfg, err := config.FromTOML(data)
		require.NoError(t, err)
		assert.Equal(t, config.DefaultMaxFieldBytes, cfg.Validation.MaxFieldBytes)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := config.GenerateTemplate(config.TemplateOptions{Format: "ini"})
		require.Error(t, err)
	})
}
