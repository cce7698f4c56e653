package mock

import "github.com/DennisFaucher/aisalesplan"

var (
	_ aisalesplan.Renderer        = (*Renderer)(nil)
	_ aisalesplan.HTMLTransformer = (*HTMLTransformer)(nil)
)

// Renderer is a mock implementation of aisalesplan.Renderer.
type Renderer struct {
	RenderFn func(markdown string) (string, error)
}

func (r *Renderer) Render(markdown string) (string, error) {
	return r.RenderFn(markdown)
}

// HTMLTransformer is a mock implementation of aisalesplan.HTMLTransformer.
type HTMLTransformer struct {
	TransformFn func(html string) (string, error)
}

func (t *HTMLTransformer) Transform(html string) (string, error) {
	return t.TransformFn(html)
}
