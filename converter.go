package aisalesplan

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, such as a rendered result page,
	// back into Markdown. Tables are kept as pipe tables.
	Convert(html string) (string, error)
}
