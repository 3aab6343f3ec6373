package api

import (
	"net/http"
	"strconv"

	"github.com/milestone-dev/milestone/pkg/errors"
	"github.com/milestone-dev/milestone/pkg/pipeline"
	"github.com/milestone-dev/milestone/pkg/project"
	"github.com/milestone-dev/milestone/pkg/timeline"
)

const contentTypeSVG = "image/svg+xml"

// renderRequest builds a pipeline request from the query string, falling
// back to the configured geometry.
func (s *Server) renderRequest(r *http.Request, kind pipeline.Kind) (pipeline.Request, error) {
	req := pipeline.Request{
		Kind:     kind,
		Width:    s.render.Width,
		Spacing:  s.render.Spacing,
		FontSize: s.render.FontSize,
		Now:      s.now(),
	}
	v := r.URL.Query()
	for name, dst := range map[string]*float64{
		"width":     &req.Width,
		"spacing":   &req.Spacing,
		"font_size": &req.FontSize,
	} {
		raw := v.Get(name)
		if raw == "" {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f <= 0 {
			return req, errors.New(errors.ErrCodeInvalidInput, "%s must be a positive number", name)
		}
		*dst = f
	}
	if raw := v.Get("detailed"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return req, errors.New(errors.ErrCodeInvalidInput, "detailed must be true or false")
		}
		req.Detailed = b
	}
	return req, nil
}

func (s *Server) serveRender(w http.ResponseWriter, r *http.Request, req pipeline.Request) {
	data, hit, err := s.runner.Render(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	respondBytes(w, contentTypeSVG, data)
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	req, err := s.renderRequest(r, pipeline.KindCard)
	if err != nil {
		respondError(w, err)
		return
	}
	if req.Project, err = s.resolve(r); err != nil {
		respondError(w, err)
		return
	}
	s.serveRender(w, r, req)
}

func (s *Server) handleChips(w http.ResponseWriter, r *http.Request) {
	req, err := s.renderRequest(r, pipeline.KindChips)
	if err != nil {
		respondError(w, err)
		return
	}
	if raw := r.URL.Query().Get("field"); raw != "" {
		if req.Field, err = project.ParseField(raw); err != nil {
			respondError(w, err)
			return
		}
	}
	if req.Project, err = s.resolve(r); err != nil {
		respondError(w, err)
		return
	}
	s.serveRender(w, r, req)
}

func (s *Server) renderAll(w http.ResponseWriter, r *http.Request, kind pipeline.Kind) {
	req, err := s.renderRequest(r, kind)
	if err != nil {
		respondError(w, err)
		return
	}
	if req.Projects, err = s.store.List(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	s.serveRender(w, r, req)
}

func (s *Server) handleTimelineSVG(w http.ResponseWriter, r *http.Request) {
	s.renderAll(w, r, pipeline.KindTimeline)
}

func (s *Server) handleGraphSVG(w http.ResponseWriter, r *http.Request) {
	s.renderAll(w, r, pipeline.KindGraph)
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	all, err := s.store.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, timeline.Build(all))
}
