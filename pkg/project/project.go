package project

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/milestone-dev/milestone/pkg/errors"
)

// Status is the lifecycle state of a project.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusLaunched   Status = "launched"
)

// Statuses lists every known status in display order.
var Statuses = []Status{StatusInProgress, StatusCompleted, StatusLaunched}

// Label returns the human-readable form used in lists and cards.
func (s Status) Label() string {
	switch s {
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	case StatusLaunched:
		return "Launched"
	}
	return string(s)
}

// ParseStatus parses a status name. Hyphens and case are tolerated so that
// "In-Progress" and "in_progress" are equivalent.
func ParseStatus(s string) (Status, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, st := range Statuses {
		if string(st) == norm {
			return st, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidStatus, "unknown status %q (want in_progress, completed or launched)", s)
}

// Type distinguishes solo work from team work.
type Type string

const (
	TypePersonal Type = "personal"
	TypeTeam     Type = "team"
)

// ParseType parses a project type name.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypePersonal:
		return TypePersonal, nil
	case TypeTeam:
		return TypeTeam, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown project type %q (want personal or team)", s)
}

// Project is one catalogued piece of work.
//
// Sequence fields keep insertion order and may hold duplicates. Link fields
// are either nil or a non-blank string; use [Project.SetLink] to write them.
// EnabledSections records sections the user switched on explicitly so an
// emptied section stays visible until it is deleted.
type Project struct {
	ID          uuid.UUID  `json:"id" bson:"-"`
	Title       string     `json:"title" bson:"title"`
	Tagline     string     `json:"tagline" bson:"tagline"`
	Description string     `json:"description" bson:"description"`
	Role        string     `json:"role" bson:"role"`
	TeamSize    string     `json:"team_size" bson:"team_size"`
	StartDate   time.Time  `json:"start_date" bson:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Status      Status     `json:"status" bson:"status"`
	Type        Type       `json:"type" bson:"type"`
	Favorite    bool       `json:"favorite" bson:"favorite"`

	TechStack   []string `json:"tech_stack" bson:"tech_stack"`
	KeyFeatures []string `json:"key_features" bson:"key_features"`
	Tags        []string `json:"tags" bson:"tags"`
	Images      [][]byte `json:"images,omitempty" bson:"images,omitempty"`
	Thumbnail   []byte   `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`

	GitHubURL *string `json:"github_url,omitempty" bson:"github_url,omitempty"`
	LiveURL   *string `json:"live_url,omitempty" bson:"live_url,omitempty"`
	FigmaURL  *string `json:"figma_url,omitempty" bson:"figma_url,omitempty"`

	Problem    string `json:"problem" bson:"problem"`
	Solution   string `json:"solution" bson:"solution"`
	Goals      string `json:"goals" bson:"goals"`
	Challenges string `json:"challenges" bson:"challenges"`
	Notes      string `json:"notes" bson:"notes"`

	EnabledSections []string `json:"enabled_sections" bson:"enabled_sections"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
	Revision  int64     `json:"revision" bson:"revision"`
}

// New returns a project with a fresh ID and every optional field at its
// empty default. The status starts as in progress and the type as personal.
func New(title, description string, start time.Time) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:              uuid.New(),
		Title:           title,
		Description:     description,
		StartDate:       start,
		Status:          StatusInProgress,
		Type:            TypePersonal,
		TechStack:       []string{},
		KeyFeatures:     []string{},
		Tags:            []string{},
		EnabledSections: []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Validate checks the fields a stored project must always satisfy.
func (p *Project) Validate() error {
	if p.ID == uuid.Nil {
		return errors.New(errors.ErrCodeInvalidInput, "project id is required")
	}
	if err := errors.ValidateTitle(p.Title); err != nil {
		return err
	}
	if p.StartDate.IsZero() {
		return errors.New(errors.ErrCodeInvalidInput, "start date is required")
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return errors.New(errors.ErrCodeInvalidInput, "end date %s is before start date %s",
			p.EndDate.Format(DateLayout), p.StartDate.Format(DateLayout))
	}
	if _, err := ParseStatus(string(p.Status)); err != nil {
		return err
	}
	if _, err := ParseType(string(p.Type)); err != nil {
		return err
	}
	return nil
}

// Touch bumps UpdatedAt. Stores call it on every successful write.
func (p *Project) Touch(now time.Time) {
	p.UpdatedAt = now.UTC()
}

// ShortID returns the first eight characters of the ID, enough to address a
// project on the command line in practice.
func (p *Project) ShortID() string {
	return p.ID.String()[:8]
}

// Clone returns a deep copy of p.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	if p.EndDate != nil {
		end := *p.EndDate
		c.EndDate = &end
	}
	c.TechStack = cloneStrings(p.TechStack)
	c.KeyFeatures = cloneStrings(p.KeyFeatures)
	c.Tags = cloneStrings(p.Tags)
	c.EnabledSections = cloneStrings(p.EnabledSections)
	c.Thumbnail = cloneBytes(p.Thumbnail)
	if p.Images != nil {
		c.Images = make([][]byte, len(p.Images))
		for i, img := range p.Images {
			c.Images[i] = cloneBytes(img)
		}
	}
	c.GitHubURL = cloneStringPtr(p.GitHubURL)
	c.LiveURL = cloneStringPtr(p.LiveURL)
	c.FigmaURL = cloneStringPtr(p.FigmaURL)
	return &c
}

// cloneStrings keeps nil as nil and empty as empty so JSON output does not
// flip between null and [].
func cloneStrings(s []string) []string {
	return slices.Clone(s)
}

func cloneBytes(b []byte) []byte {
	return slices.Clone(b)
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
