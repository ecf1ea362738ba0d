package pretty_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/flashforge/internal/ui/pretty"
	"github.com/yaklabco/flashforge/pkg/analysis"
)

func TestNewStyles_PlainRendersTextUnchanged(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for name, style := range map[string]interface{ Render(...string) string }{
		"error":     styles.Error,
		"warning":   styles.Warning,
		"file path": styles.FilePath,
		"front":     styles.Front,
		"header":    styles.TableHeader,
		"row":       styles.RowInvalid,
		"bold":      styles.Bold,
	} {
		assert.Equal(t, "cat", style.Render("cat"), name)
	}
}

func TestNewStyles_ColoredKeepsText(t *testing.T) {
	styles := pretty.NewStyles(true)

	// lipgloss drops ANSI codes when no terminal is attached, so only the
	// text itself can be asserted here.
	assert.Contains(t, styles.Error.Render("invalid"), "invalid")
	assert.Contains(t, styles.Success.Render("ok"), "ok")
	assert.Contains(t, styles.Front.Render("gato"), "gato")
}

func TestStyles_Row(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, styles.RowInvalid, styles.Row(analysis.CategoryInvalid))
	assert.Equal(t, styles.RowSkipped, styles.Row(analysis.CategoryDiagnostic))
	assert.Equal(t, styles.RowDuplicate, styles.Row(analysis.CategoryDuplicate))
	assert.Equal(t, "x", styles.Row(analysis.Category("other")).Render("x"))
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		name   string
		mode   string
		writer io.Writer
		want   bool
	}{
		{"always forces color", "always", &buf, true},
		{"never disables color", "never", os.Stdout, false},
		{"auto with a buffer", "auto", &buf, false},
		{"empty mode is auto", "", &buf, false},
		{"unknown mode is auto", "sometimes", &buf, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, tt.writer))
		})
	}
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout))
}
