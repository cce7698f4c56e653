package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/DennisFaucher/aisalesplan"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages holds one template set per page, each combined with the layout.
type pages struct {
	sets map[string]*template.Template
}

func mustParsePages() *pages {
	p := &pages{sets: make(map[string]*template.Template)}
	for _, name := range []string{"index", "result", "error"} {
		p.sets[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return p
}

type indexPage struct {
	Customer     string
	Theme        string
	DefaultTheme string
	Recent       []*aisalesplan.Research
}

type resultPage struct {
	Research *aisalesplan.Research

	// Content is the rendered answer. It is produced by the renderer,
	// which drops raw HTML from the markdown.
	Content template.HTML
}

type errorPage struct {
	Status  int
	Message string
}

// render executes the named page into a buffer so a template failure can
// still produce a clean error response.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages.sets[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger().Error("render page", "page", name, "err", err)
		http.Error(w, "Internal error.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
