// Package catalog implements the project list: filtering, sorting and the
// summary text shown on each row.
package catalog

import (
	"slices"
	"strings"
	"time"

	"github.com/milestone-dev/milestone/pkg/errors"
	"github.com/milestone-dev/milestone/pkg/project"
)

// Sort orders the list.
type Sort string

const (
	SortStartDesc Sort = "start_desc"
	SortStartAsc  Sort = "start_asc"
	SortTitle     Sort = "title"
)

// ParseSort parses a sort order. An empty string selects [SortStartDesc].
func ParseSort(s string) (Sort, error) {
	switch Sort(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortStartDesc:
		return SortStartDesc, nil
	case SortStartAsc:
		return SortStartAsc, nil
	case SortTitle:
		return SortTitle, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown sort %q (want start_desc, start_asc or title)", s)
}

// Query selects and orders projects. Zero fields do not filter.
type Query struct {
	Favorites bool
	Tag       string
	Tech      string
	Status    project.Status
	Search    string
	Sort      Sort
}

// DefaultStackItems is how many tech entries a list row shows.
const DefaultStackItems = 3

// Filter returns the projects matching q in the requested order. The input
// slice is not modified.
func Filter(projects []*project.Project, q Query) []*project.Project {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]*project.Project, 0, len(projects))
	for _, p := range projects {
		if q.Favorites && !p.Favorite {
			continue
		}
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if q.Tag != "" && !containsFold(p.Tags, q.Tag) {
			continue
		}
		if q.Tech != "" && !containsFold(p.TechStack, q.Tech) {
			continue
		}
		if search != "" && !matches(p, search) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, compare(q.Sort))
	return out
}

func compare(s Sort) func(a, b *project.Project) int {
	switch s {
	case SortStartAsc:
		return func(a, b *project.Project) int {
			if c := a.StartDate.Compare(b.StartDate); c != 0 {
				return c
			}
			return byTitle(a, b)
		}
	case SortTitle:
		return byTitle
	}
	return func(a, b *project.Project) int {
		if c := b.StartDate.Compare(a.StartDate); c != 0 {
			return c
		}
		return byTitle(a, b)
	}
}

// byTitle orders case-insensitively by title, falling back to the ID so
// equal titles still sort the same way every time.
func byTitle(a, b *project.Project) int {
	if c := strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)); c != 0 {
		return c
	}
	return strings.Compare(a.ID.String(), b.ID.String())
}

func containsFold(list []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), v) {
			return true
		}
	}
	return false
}

func matches(p *project.Project, lowered string) bool {
	for _, f := range []string{p.Title, p.Tagline, p.Description} {
		if strings.Contains(strings.ToLower(f), lowered) {
			return true
		}
	}
	return false
}

// StackSummary joins the first n non-blank tech entries with ", ".
func StackSummary(p *project.Project, n int) string {
	items := make([]string, 0, n)
	for _, t := range p.TechStack {
		if len(items) == n {
			break
		}
		if !project.IsBlank(t) {
			items = append(items, strings.TrimSpace(t))
		}
	}
	return strings.Join(items, ", ")
}

// Placeholder returns the record created by the "new project" action.
func Placeholder(now time.Time) *project.Project {
	return project.New("New Project", "Describe the project", now)
}

// Counts summarises a list for the footer line.
type Counts struct {
	Total      int                    `json:"total"`
	Favorites  int                    `json:"favorites"`
	ByStatus   map[project.Status]int `json:"by_status"`
	UniqueTech int                    `json:"unique_tech"`
}

// Count tallies projects by status and favourite flag.
func Count(projects []*project.Project) Counts {
	c := Counts{Total: len(projects), ByStatus: make(map[project.Status]int)}
	tech := make(map[string]bool)
	for _, p := range projects {
		if p.Favorite {
			c.Favorites++
		}
		c.ByStatus[p.Status]++
		for _, t := range p.TechStack {
			if !project.IsBlank(t) {
				tech[strings.ToLower(strings.TrimSpace(t))] = true
			}
		}
	}
	c.UniqueTech = len(tech)
	return c
}
