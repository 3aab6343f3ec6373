package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/milestone-dev/milestone/pkg/project"
)

// ItemRequest is the body of the list item endpoints.
type ItemRequest struct {
	Value string `json:"value"`
}

// Out-of-range indexes are accepted and change nothing, mirroring
// Project.UpdateItem and Project.RemoveItem.

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	f, err := project.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		respondError(w, err)
		return
	}
	var req ItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	s.update(w, r, func(p *project.Project) error {
		p.AppendItem(f, req.Value)
		return nil
	})
}

func (s *Server) handleSetItem(w http.ResponseWriter, r *http.Request) {
	f, err := project.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		respondError(w, err)
		return
	}
	i, err := parseIndex(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req ItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	s.update(w, r, func(p *project.Project) error {
		p.UpdateItem(f, i, req.Value)
		return nil
	})
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	f, err := project.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		respondError(w, err)
		return
	}
	i, err := parseIndex(r)
	if err != nil {
		respondError(w, err)
		return
	}
	s.update(w, r, func(p *project.Project) error {
		p.RemoveItem(f, i)
		return nil
	})
}
