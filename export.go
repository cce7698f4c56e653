package aisalesplan

import (
	"io"
	"strings"
)

// ExportDocument holds the content of a research export.
type ExportDocument struct {
	Customer string `json:"customer"`
	Theme    string `json:"theme"`
	Markdown string `json:"markdown"`
}

// Validate returns an error if the document is missing required fields.
func (d *ExportDocument) Validate() error {
	if strings.TrimSpace(d.Customer) == "" || strings.TrimSpace(d.Theme) == "" || strings.TrimSpace(d.Markdown) == "" {
		return Errorf(EINVALID, "customer, theme, and markdown are required")
	}
	return nil
}

// Title returns the document title.
func (d *ExportDocument) Title() string {
	return ResearchTitle(strings.TrimSpace(d.Customer), strings.TrimSpace(d.Theme))
}

// Filename returns the download file name for the given extension.
func (d *ExportDocument) Filename(ext string) string {
	return ExportFilename(d.Customer, d.Theme, ext)
}

// Exporter writes research as a downloadable document.
type Exporter interface {
	// Export writes the document to w.
	// Returns EINVALID if the document fails validation.
	Export(w io.Writer, doc *ExportDocument) error

	// ContentType is the MIME type of the exported file.
	ContentType() string

	// Extension is the file extension without the leading dot.
	Extension() string
}
