package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/milestone-dev/milestone/pkg/cache"
	"github.com/milestone-dev/milestone/pkg/project"
	"github.com/milestone-dev/milestone/pkg/render"
	"github.com/milestone-dev/milestone/pkg/render/nodelink"
	"github.com/milestone-dev/milestone/pkg/timeline"
)

// RenderArtifact draws req without consulting any cache. req must already
// have passed ValidateAndSetDefaults.
func RenderArtifact(ctx context.Context, req Request) ([]byte, error) {
	switch req.Kind {
	case KindCard:
		return render.Card(req.Project, req.Now, req.renderOptions()...), nil
	case KindChips:
		return render.Chips(req.Project.Items(req.Field), req.renderOptions()...), nil
	case KindTimeline:
		return render.Timeline(timeline.Build(req.Projects), req.renderOptions()...), nil
	case KindGraph:
		dot := nodelink.ToDOT(req.Projects, nodelink.Options{Detailed: req.Detailed})
		return nodelink.RenderSVG(ctx, dot)
	}
	return nil, fmt.Errorf("unsupported render kind: %s", req.Kind)
}

type cardSnapshot struct {
	*project.Project
	Images    int    `json:"images"`
	Thumbnail bool   `json:"thumbnail"`
	Duration  string `json:"duration"`
}

type graphNode struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Status    project.Status `json:"status"`
	Dates     string         `json:"dates"`
	TechStack []string       `json:"tech_stack"`
}

// snapshot returns the content an artifact depends on.
func snapshot(req Request) any {
	switch req.Kind {
	case KindCard:
		p := req.Project.Clone()
		snap := cardSnapshot{
			Images:    len(p.Images),
			Thumbnail: len(p.Thumbnail) > 0,
			Duration:  p.DurationText(req.Now),
		}
		p.Images, p.Thumbnail = nil, nil
		p.Revision, p.CreatedAt, p.UpdatedAt = 0, time.Time{}, time.Time{}
		snap.Project = p
		return snap
	case KindChips:
		return req.Project.Items(req.Field)
	case KindTimeline:
		return timeline.Build(req.Projects)
	case KindGraph:
		nodes := make([]graphNode, len(req.Projects))
		for i, p := range req.Projects {
			nodes[i] = graphNode{
				ID:        p.ID.String(),
				Title:     p.Title,
				Status:    p.Status,
				Dates:     p.DateRangeText(),
				TechStack: p.TechStack,
			}
		}
		return nodes
	}
	return nil
}

func (req Request) keyOpts() cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Kind:     string(req.Kind),
		Field:    string(req.Field),
		Width:    req.Width,
		Spacing:  req.Spacing,
		FontSize: req.FontSize,
	}
	if req.Kind == KindGraph {
		// graph output ignores sizes
		opts.Width, opts.Spacing, opts.FontSize = 0, 0, 0
		if req.Detailed {
			opts.Field = "detailed"
		}
	}
	return opts
}

func (req Request) ttl() time.Duration {
	if req.Kind == KindGraph {
		return cache.TTLGraph
	}
	return cache.TTLArtifact
}
