package mock

import (
	"io"

	"github.com/DennisFaucher/aisalesplan"
)

var _ aisalesplan.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of aisalesplan.Exporter.
type Exporter struct {
	ExportFn      func(w io.Writer, doc *aisalesplan.ExportDocument) error
	ContentTypeFn func() string
	ExtensionFn   func() string
}

func (e *Exporter) Export(w io.Writer, doc *aisalesplan.ExportDocument) error {
	return e.ExportFn(w, doc)
}

func (e *Exporter) ContentType() string {
	return e.ContentTypeFn()
}

func (e *Exporter) Extension() string {
	return e.ExtensionFn()
}
