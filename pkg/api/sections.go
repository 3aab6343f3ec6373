package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/milestone-dev/milestone/pkg/project"
	"github.com/milestone-dev/milestone/pkg/section"
)

// SectionsResponse is the body of GET /api/projects/{id}/sections.
type SectionsResponse struct {
	section.Visibility
	Enabled []string `json:"enabled"`
}

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	p, err := s.resolve(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, SectionsResponse{
		Visibility: section.Recompute(p),
		Enabled:    p.EnabledSections,
	})
}

func (s *Server) sectionEdit(w http.ResponseWriter, r *http.Request, fn func(p *project.Project, id section.ID) error) {
	id, err := section.Parse(chi.URLParam(r, "section"))
	if err != nil {
		respondError(w, err)
		return
	}
	s.update(w, r, func(p *project.Project) error {
		return fn(p, id)
	})
}

func (s *Server) handleAddSection(w http.ResponseWriter, r *http.Request) {
	s.sectionEdit(w, r, section.Add)
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	s.sectionEdit(w, r, section.Delete)
}
