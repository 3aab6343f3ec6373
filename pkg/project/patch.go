package project

import (
	"time"

	"github.com/milestone-dev/milestone/pkg/errors"
)

// Patch is a partial update. Nil fields are left untouched.
//
// ClearEndDate marks an ongoing project; it wins over EndDate when both are
// set. Link fields follow SetLink, so an empty string removes the link.
type Patch struct {
	Title        *string    `json:"title,omitempty"`
	Tagline      *string    `json:"tagline,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Role         *string    `json:"role,omitempty"`
	TeamSize     *string    `json:"team_size,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	ClearEndDate bool       `json:"clear_end_date,omitempty"`
	Status       *Status    `json:"status,omitempty"`
	Type         *Type      `json:"type,omitempty"`
	Favorite     *bool      `json:"favorite,omitempty"`

	TechStack   *[]string `json:"tech_stack,omitempty"`
	KeyFeatures *[]string `json:"key_features,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`

	GitHubURL *string `json:"github_url,omitempty"`
	LiveURL   *string `json:"live_url,omitempty"`
	FigmaURL  *string `json:"figma_url,omitempty"`

	Problem    *string `json:"problem,omitempty"`
	Solution   *string `json:"solution,omitempty"`
	Goals      *string `json:"goals,omitempty"`
	Challenges *string `json:"challenges,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (pt Patch) Empty() bool {
	return pt == Patch{}
}

// Apply writes the patch into p. Status and type values are checked before
// anything is changed, so a rejected patch leaves p untouched.
func (pt Patch) Apply(p *Project) error {
	if pt.Status != nil {
		if _, err := ParseStatus(string(*pt.Status)); err != nil {
			return err
		}
	}
	if pt.Type != nil {
		if _, err := ParseType(string(*pt.Type)); err != nil {
			return err
		}
	}
	if pt.Title != nil {
		if err := errors.ValidateTitle(*pt.Title); err != nil {
			return err
		}
	}

	setString(&p.Title, pt.Title)
	setString(&p.Tagline, pt.Tagline)
	setString(&p.Description, pt.Description)
	setString(&p.Role, pt.Role)
	setString(&p.TeamSize, pt.TeamSize)
	setString(&p.Problem, pt.Problem)
	setString(&p.Solution, pt.Solution)
	setString(&p.Goals, pt.Goals)
	setString(&p.Challenges, pt.Challenges)
	setString(&p.Notes, pt.Notes)

	if pt.StartDate != nil {
		p.StartDate = *pt.StartDate
	}
	if pt.ClearEndDate {
		p.EndDate = nil
	} else if pt.EndDate != nil {
		end := *pt.EndDate
		p.EndDate = &end
	}
	if pt.Status != nil {
		p.Status, _ = ParseStatus(string(*pt.Status))
	}
	if pt.Type != nil {
		p.Type, _ = ParseType(string(*pt.Type))
	}
	if pt.Favorite != nil {
		p.Favorite = *pt.Favorite
	}

	if pt.TechStack != nil {
		p.TechStack = append([]string{}, *pt.TechStack...)
	}
	if pt.KeyFeatures != nil {
		p.KeyFeatures = append([]string{}, *pt.KeyFeatures...)
	}
	if pt.Tags != nil {
		p.Tags = append([]string{}, *pt.Tags...)
	}

	if pt.GitHubURL != nil {
		p.SetLink(LinkGitHub, *pt.GitHubURL)
	}
	if pt.LiveURL != nil {
		p.SetLink(LinkLive, *pt.LiveURL)
	}
	if pt.FigmaURL != nil {
		p.SetLink(LinkFigma, *pt.FigmaURL)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
