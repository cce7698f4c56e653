package mock

import "github.com/DennisFaucher/aisalesplan"

var _ aisalesplan.Converter = (*Converter)(nil)

// Converter is a mock implementation of aisalesplan.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
