package export

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// renderer converts card fields from Markdown to HTML.
type renderer struct {
	md goldmark.Markdown
}

func newRenderer() *renderer {
	return &renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// render returns the HTML for field. A field that renders to a single
// paragraph loses its <p> wrapper so short answers stay inline.
func (r *renderer) render(field string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(field), &buf); err != nil {
		return "", err
	}

	out := strings.TrimSpace(buf.String())
	if inner, ok := strings.CutPrefix(out, "<p>"); ok {
		if inner, ok = strings.CutSuffix(inner, "</p>"); ok && !strings.Contains(inner, "<p>") {
			return inner, nil
		}
	}
	return out, nil
}
