package http

import (
	"html/template"
	"net/http"

	"github.com/DennisFaucher/aisalesplan"
)

// recentLimit is the number of stored results listed on the index page.
const recentLimit = 10

// searchResponse is the JSON body of a successful search.
type searchResponse struct {
	Success   bool     `json:"success"`
	ID        string   `json:"id,omitempty"`
	Customer  string   `json:"customer"`
	Theme     string   `json:"theme"`
	Content   string   `json:"content"`
	Markdown  string   `json:"markdown"`
	Citations []string `json:"citations"`
}

func newSearchResponse(r *aisalesplan.Research) *searchResponse {
	citations := r.Citations
	if citations == nil {
		citations = []string{}
	}
	return &searchResponse{
		Success:   true,
		ID:        r.ID,
		Customer:  r.Customer,
		Theme:     r.Theme,
		Content:   r.HTML,
		Markdown:  r.Markdown,
		Citations: citations,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := &indexPage{DefaultTheme: aisalesplan.DefaultTheme}

	if s.ResearchService != nil {
		recent, err := s.ResearchService.FindResearch(r.Context(), aisalesplan.ResearchFilter{Limit: recentLimit})
		if err != nil {
			s.logger().Error("list recent research", "err", err)
		}
		page.Recent = recent
	}

	s.render(w, http.StatusOK, "index", page)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var customer, theme string
	if err := decode(w, r, maxSearchBody, map[string]*string{
		"customer": &customer,
		"theme":    &theme,
	}); err != nil {
		s.Error(w, r, err)
		return
	}

	res, err := s.Researcher.Research(r.Context(), customer, theme)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, newSearchResponse(res))
		return
	}
	s.render(w, http.StatusOK, "result", newResultPage(res))
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	res, err := s.findResearch(r)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, newSearchResponse(res))
		return
	}
	s.render(w, http.StatusOK, "result", newResultPage(res))
}

func (s *Server) handleDeleteResearch(w http.ResponseWriter, r *http.Request) {
	if s.ResearchService == nil {
		s.Error(w, r, errHistoryDisabled())
		return
	}
	if err := s.ResearchService.DeleteResearch(r.Context(), r.PathValue("id")); err != nil {
		s.Error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) findResearch(r *http.Request) (*aisalesplan.Research, error) {
	if s.ResearchService == nil {
		return nil, errHistoryDisabled()
	}
	return s.ResearchService.FindResearchByID(r.Context(), r.PathValue("id"))
}

func errHistoryDisabled() error {
	return aisalesplan.Errorf(aisalesplan.ENOTIMPLEMENTED, "Research history is not enabled")
}

func newResultPage(r *aisalesplan.Research) *resultPage {
	return &resultPage{
		Research: r,
		Content:  template.HTML(r.HTML),
	}
}
