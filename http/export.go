package http

import (
	"bytes"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/DennisFaucher/aisalesplan"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var customer, theme, markdown, html string
	if err := decode(w, r, maxExportBody, map[string]*string{
		"customer": &customer,
		"theme":    &theme,
		"markdown": &markdown,
		"html":     &html,
	}); err != nil {
		s.Error(w, r, err)
		return
	}

	doc := &aisalesplan.ExportDocument{
		Customer: strings.TrimSpace(customer),
		Theme:    strings.TrimSpace(theme),
		Markdown: markdown,
	}

	// Clients that only kept the rendered page send it back as HTML.
	if strings.TrimSpace(doc.Markdown) == "" && strings.TrimSpace(html) != "" && s.Converter != nil {
		md, err := s.Converter.Convert(html)
		if err != nil {
			s.Error(w, r, err)
			return
		}
		doc.Markdown = md
	}

	s.writeExport(w, r, doc)
}

func (s *Server) handleResearchExport(w http.ResponseWriter, r *http.Request) {
	res, err := s.findResearch(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	s.writeExport(w, r, &aisalesplan.ExportDocument{
		Customer: res.Customer,
		Theme:    res.Theme,
		Markdown: res.Markdown,
	})
}

// writeExport builds the document in memory so an export failure is still
// reported as an error response rather than a truncated download.
func (s *Server) writeExport(w http.ResponseWriter, r *http.Request, doc *aisalesplan.ExportDocument) {
	var buf bytes.Buffer
	if err := s.Exporter.Export(&buf, doc); err != nil {
		s.Error(w, r, err)
		return
	}

	filename := doc.Filename(s.Exporter.Extension())
	w.Header().Set("Content-Type", s.Exporter.ContentType())
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
