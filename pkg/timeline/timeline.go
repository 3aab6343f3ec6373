// Package timeline arranges projects chronologically for the timeline view.
//
// Projects are sorted by start date, oldest first, and grouped by start
// year. Projects starting on the same day are ordered by title. IsFirst and
// IsLast refer to the whole timeline, not to a single year, so a renderer
// can draw one continuous connector line.
package timeline

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/milestone-dev/milestone/pkg/project"
)

// DateLabelLayout is the short start-date label shown beside each entry.
const DateLabelLayout = "Jan 2"

// Entry is one project on the timeline.
type Entry struct {
	ID        uuid.UUID      `json:"id"`
	Title     string         `json:"title"`
	Tagline   string         `json:"tagline,omitempty"`
	Status    project.Status `json:"status"`
	TechStack []string       `json:"tech_stack,omitempty"`
	StartDate time.Time      `json:"start_date"`
	DateLabel string         `json:"date_label"`
	Duration  string         `json:"duration,omitempty"`
	IsFirst   bool           `json:"is_first"`
	IsLast    bool           `json:"is_last"`
}

// Year groups the entries that started in one calendar year.
type Year struct {
	Year    int     `json:"year"`
	Entries []Entry `json:"entries"`
}

// Build returns the timeline for projects. Durations are only filled in for
// projects with an end date.
func Build(projects []*project.Project) []Year {
	sorted := slices.Clone(projects)
	slices.SortFunc(sorted, func(a, b *project.Project) int {
		if c := a.StartDate.Compare(b.StartDate); c != 0 {
			return c
		}
		if c := strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	years := []Year{}
	for i, p := range sorted {
		e := Entry{
			ID:        p.ID,
			Title:     p.Title,
			Tagline:   p.Tagline,
			Status:    p.Status,
			TechStack: p.TechStack,
			StartDate: p.StartDate,
			DateLabel: p.StartDate.Format(DateLabelLayout),
			IsFirst:   i == 0,
			IsLast:    i == len(sorted)-1,
		}
		if p.EndDate != nil {
			e.Duration = p.DurationText(*p.EndDate)
		}

		y := p.StartDate.Year()
		if n := len(years); n == 0 || years[n-1].Year != y {
			years = append(years, Year{Year: y})
		}
		years[len(years)-1].Entries = append(years[len(years)-1].Entries, e)
	}
	return years
}

// Len returns the number of entries across all years.
func Len(years []Year) int {
	n := 0
	for _, y := range years {
		n += len(y.Entries)
	}
	return n
}
