package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/milestone-dev/milestone/pkg/catalog"
	"github.com/milestone-dev/milestone/pkg/errors"
	"github.com/milestone-dev/milestone/pkg/project"
	"github.com/milestone-dev/milestone/pkg/store"
)

// ListResponse is the body of GET /api/projects.
type ListResponse struct {
	Projects []*project.Project `json:"projects"`
	Counts   catalog.Counts     `json:"counts"`
}

// CreateRequest is the body of POST /api/projects. Any patch field may be
// given alongside the required ones.
type CreateRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	project.Patch
}

func parseQuery(r *http.Request) (catalog.Query, error) {
	v := r.URL.Query()
	q := catalog.Query{
		Tag:    v.Get("tag"),
		Tech:   v.Get("tech"),
		Search: v.Get("q"),
	}
	if f := v.Get("favorites"); f != "" {
		b, err := strconv.ParseBool(f)
		if err != nil {
			return q, errors.New(errors.ErrCodeInvalidInput, "favorites must be true or false")
		}
		q.Favorites = b
	}
	if st := v.Get("status"); st != "" {
		status, err := project.ParseStatus(st)
		if err != nil {
			return q, err
		}
		q.Status = status
	}
	sort, err := catalog.ParseSort(v.Get("sort"))
	if err != nil {
		return q, err
	}
	q.Sort = sort
	return q, nil
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		respondError(w, err)
		return
	}
	all, err := s.store.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ListResponse{
		Projects: catalog.Filter(all, q),
		Counts:   catalog.Count(all),
	})
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := errors.ValidateTitle(req.Title); err != nil {
		respondError(w, err)
		return
	}

	start := s.now()
	if req.StartDate != nil {
		start = *req.StartDate
	}
	p := project.New(req.Title, req.Description, start)
	if err := req.Patch.Apply(p); err != nil {
		respondError(w, err)
		return
	}
	s.warnLinks(p)
	if err := s.store.Put(r.Context(), p); err != nil {
		respondError(w, err)
		return
	}
	s.logger.Info("created project", "id", p.ID, "title", p.Title)
	respondJSON(w, http.StatusCreated, p)
}

// resolve looks up the {id} path parameter, accepting unique prefixes.
func (s *Server) resolve(r *http.Request) (*project.Project, error) {
	return store.Resolve(r.Context(), s.store, chi.URLParam(r, "id"))
}

// update resolves {id}, applies fn inside a store transaction and writes
// the saved project.
func (s *Server) update(w http.ResponseWriter, r *http.Request, fn func(p *project.Project) error) {
	p, err := s.resolve(r)
	if err != nil {
		respondError(w, err)
		return
	}
	saved, err := s.store.Update(r.Context(), p.ID, fn)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.resolve(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var pt project.Patch
	if err := decodeJSON(r, &pt); err != nil {
		respondError(w, err)
		return
	}
	s.update(w, r, func(p *project.Project) error {
		if err := pt.Apply(p); err != nil {
			return err
		}
		s.warnLinks(p)
		return nil
	})
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.resolve(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), p.ID); err != nil {
		respondError(w, err)
		return
	}
	s.logger.Info("deleted project", "id", p.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(p *project.Project) error {
		p.Favorite = !p.Favorite
		return nil
	})
}

func (s *Server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	s.update(w, r, func(p *project.Project) error {
		p.PruneBlankItems()
		return nil
	})
}

// warnLinks logs links that do not look like http(s) URLs. They are kept.
func (s *Server) warnLinks(p *project.Project) {
	for _, kind := range project.LinkKinds {
		if url, ok := p.Link(kind); ok {
			if err := errors.ValidateURL(url); err != nil {
				s.logger.Warn("suspicious link", "id", p.ID, "link", kind, "error", errors.UserMessage(err))
			}
		}
	}
}

func parseIndex(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "index %q is not a number", raw)
	}
	return i, nil
}
