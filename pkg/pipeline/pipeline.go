// Package pipeline renders projects through the artifact cache.
//
// The CLI and the API both render through a [Runner] so that cache keys,
// defaults and instrumentation stay identical across entry points.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	svg, hit, err := runner.Render(ctx, pipeline.Request{
//	    Kind:    pipeline.KindCard,
//	    Project: p,
//	    Width:   480,
//	})
//
// # Cache Keys
//
// A request is reduced to a JSON snapshot holding only what the artifact
// shows. The key is the SHA-256 of that snapshot combined with the render
// options, so editing an unrelated field of a project or replacing image
// bytes without changing their count does not invalidate its card.
package pipeline

import (
	"slices"
	"time"

	"github.com/milestone-dev/milestone/pkg/errors"
	"github.com/milestone-dev/milestone/pkg/project"
	"github.com/milestone-dev/milestone/pkg/render"
)

// Kind selects the artifact to render.
type Kind string

const (
	KindCard     Kind = "card"
	KindChips    Kind = "chips"
	KindTimeline Kind = "timeline"
	KindGraph    Kind = "graph"
)

// Kinds lists every supported artifact kind.
var Kinds = []Kind{KindCard, KindChips, KindTimeline, KindGraph}

// ParseKind parses an artifact kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !slices.Contains(Kinds, k) {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown render kind %q (want card, chips, timeline or graph)", s)
	}
	return k, nil
}

// Request describes one artifact.
type Request struct {
	Kind Kind

	// Project is rendered by card and chips.
	Project *project.Project
	// Projects is rendered by timeline and graph.
	Projects []*project.Project

	// Field picks the list drawn by chips: tech or tags. Defaults to tech.
	Field project.Field

	Width    float64
	Spacing  float64
	FontSize float64

	// Detailed adds status and dates to graph labels.
	Detailed bool

	// Now anchors "present" durations on cards. Defaults to time.Now.
	Now time.Time

	// Refresh skips the cache lookup but still stores the result.
	Refresh bool
}

// ValidateAndSetDefaults checks the request and fills in zero options.
func (r *Request) ValidateAndSetDefaults() error {
	if _, err := ParseKind(string(r.Kind)); err != nil {
		return err
	}
	switch r.Kind {
	case KindCard, KindChips:
		if r.Project == nil {
			return errors.New(errors.ErrCodeInvalidInput, "%s render needs a project", r.Kind)
		}
	}
	if r.Kind == KindChips {
		if r.Field == "" {
			r.Field = project.FieldTechStack
		}
		if r.Field != project.FieldTechStack && r.Field != project.FieldTags {
			return errors.New(errors.ErrCodeInvalidInput, "chips render tech or tags, not %q", r.Field)
		}
	}
	if r.Width < 0 || r.Spacing < 0 || r.FontSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "render sizes must not be negative")
	}
	if r.Width == 0 {
		r.Width = render.DefaultWidth
	}
	if r.Spacing == 0 {
		r.Spacing = render.DefaultSpacing
	}
	if r.FontSize == 0 {
		r.FontSize = render.DefaultFontSize
	}
	if r.Now.IsZero() {
		r.Now = time.Now()
	}
	return nil
}

func (r Request) renderOptions() []render.Option {
	return []render.Option{
		render.WithWidth(r.Width),
		render.WithSpacing(r.Spacing),
		render.WithFontSize(r.FontSize),
	}
}
