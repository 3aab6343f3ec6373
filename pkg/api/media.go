package api

import (
	"net/http"

	"github.com/milestone-dev/milestone/pkg/project"
)

// Media bodies are stored as sent. No image decoding happens here.

func (s *Server) handlePutThumbnail(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(r, maxMediaBody)
	if err != nil {
		respondError(w, err)
		return
	}
	s.update(w, r, func(p *project.Project) error {
		p.Thumbnail = data
		return nil
	})
}

func (s *Server) handleAddImage(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(r, maxMediaBody)
	if err != nil {
		respondError(w, err)
		return
	}
	s.update(w, r, func(p *project.Project) error {
		p.Images = append(p.Images, data)
		return nil
	})
}

func (s *Server) handleRemoveImage(w http.ResponseWriter, r *http.Request) {
	i, err := parseIndex(r)
	if err != nil {
		respondError(w, err)
		return
	}
	s.update(w, r, func(p *project.Project) error {
		p.RemoveImage(i)
		return nil
	})
}
