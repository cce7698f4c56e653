package aisalesplan

// Renderer converts a markdown answer into HTML for display.
type Renderer interface {
	// Render returns an HTML fragment for the markdown.
	Render(markdown string) (string, error)
}

// HTMLTransformer rewrites a rendered HTML fragment.
type HTMLTransformer interface {
	Transform(html string) (string, error)
}
