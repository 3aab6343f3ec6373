package api

import (
	"bytes"
	"net/http"

	"github.com/milestone-dev/milestone/pkg/errors"
	"github.com/milestone-dev/milestone/pkg/resume"
)

// ResumeResponse is the body of a successful PUT /api/resume.
type ResumeResponse struct {
	Bytes int `json:"bytes"`
}

func (s *Server) handlePutResume(w http.ResponseWriter, r *http.Request) {
	t := s.resume.Begin()
	data, err := resume.Read(r.Body)
	if err != nil {
		respondError(w, err)
		return
	}
	ok, err := s.resume.Complete(r.Context(), t, bytes.NewReader(data))
	if err != nil {
		respondError(w, err)
		return
	}
	if !ok {
		respondError(w, errors.New(errors.ErrCodeConflict, "a newer résumé upload replaced this one"))
		return
	}
	respondJSON(w, http.StatusOK, ResumeResponse{Bytes: len(data)})
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	data, err := resume.Load(r.Context(), s.store)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `inline; filename="resume.pdf"`)
	respondBytes(w, "application/pdf", data)
}
