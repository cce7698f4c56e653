// Package goldmark renders markdown answers to HTML using goldmark.
package goldmark

import (
	"bytes"
	"strings"

	"github.com/DennisFaucher/aisalesplan"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Ensure Renderer implements aisalesplan.Renderer at compile time.
var _ aisalesplan.Renderer = (*Renderer)(nil)

// Renderer converts markdown to HTML with GitHub flavored tables and hard
// line breaks, then applies the configured transformers in order.
//
// Raw HTML in the markdown is omitted from the output.
type Renderer struct {
	md           goldmark.Markdown
	transformers []aisalesplan.HTMLTransformer
}

// NewRenderer creates a new Renderer.
func NewRenderer(transformers ...aisalesplan.HTMLTransformer) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	return &Renderer{md: md, transformers: transformers}
}

// Render returns the HTML fragment for markdown.
func (r *Renderer) Render(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", aisalesplan.Errorf(aisalesplan.EINVALID, "empty markdown input")
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}

	out := buf.String()
	for _, t := range r.transformers {
		var err error
		if out, err = t.Transform(out); err != nil {
			return "", err
		}
	}
	return out, nil
}
