// Package section decides which optional content sections of a project are
// shown and applies the add and delete lifecycle to them.
//
// # Visibility
//
// A section is active when its fields hold content or when its identifier is
// in the project's EnabledSections. Both inputs are read from one project
// snapshot by [Recompute]:
//
//	v := section.Recompute(p)
//	v.Active    // display order, e.g. [overview links]
//	v.Available // everything else, offered in the "add section" picker
//
// # Lifecycle
//
// [Add] and [Delete] are the only mutators. Add enables a section and seeds a
// blank entry into list-shaped sections so they render immediately. Delete
// disables the section and clears every field it owns in the same call, which
// returns it to the "not present" state.
//
// All behaviour is driven by one registry table, so adding a seventh section
// means adding one row.
package section

import (
	"slices"
	"strings"

	"github.com/milestone-dev/milestone/pkg/errors"
	"github.com/milestone-dev/milestone/pkg/project"
)

// ID identifies one optional section.
type ID int

// Sections in canonical display order.
const (
	Overview ID = iota
	Details
	Visuals
	Links
	Notes
	Tags
)

// All lists every section in canonical order.
var All = []ID{Overview, Details, Visuals, Links, Notes, Tags}

// String returns the persisted identifier of the section.
func (id ID) String() string {
	if e, ok := lookup(id); ok {
		return e.name
	}
	return "unknown"
}

// Title returns the heading shown above the section.
func (id ID) Title() string {
	if e, ok := lookup(id); ok {
		return e.title
	}
	return ""
}

// Parse converts a persisted identifier back to an ID.
func Parse(s string) (ID, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, e := range registry {
		if e.name == name {
			return ID(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidSection,
		"unknown section %q (want overview, details, visuals, links, notes or tags)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	if _, ok := lookup(id); !ok {
		return nil, errors.New(errors.ErrCodeInvalidSection, "unknown section %d", int(id))
	}
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

type entry struct {
	name  string
	title string
	has   func(p *project.Project) bool
	clear func(p *project.Project)
	seed  func(p *project.Project)
}

// registry is indexed by ID.
var registry = [...]entry{
	Overview: {
		name:  "overview",
		title: "Overview",
		has: func(p *project.Project) bool {
			return !project.IsBlank(p.Problem) || !project.IsBlank(p.Solution) || !project.IsBlank(p.Goals)
		},
		clear: func(p *project.Project) {
			p.Problem, p.Solution, p.Goals = "", "", ""
		},
	},
	Details: {
		name:  "details",
		title: "Details",
		has: func(p *project.Project) bool {
			return len(p.KeyFeatures) > 0 || !project.IsBlank(p.Challenges)
		},
		clear: func(p *project.Project) {
			p.KeyFeatures = []string{}
			p.Challenges = ""
		},
		seed: func(p *project.Project) {
			if len(p.KeyFeatures) == 0 {
				p.KeyFeatures = []string{""}
			}
		},
	},
	Visuals: {
		name:  "visuals",
		title: "Visuals",
		has: func(p *project.Project) bool {
			return len(p.Images) > 0
		},
		clear: func(p *project.Project) {
			p.Images = nil
		},
	},
	Links: {
		name:  "links",
		title: "Links",
		has: func(p *project.Project) bool {
			return p.HasLinks()
		},
		clear: func(p *project.Project) {
			p.ClearLinks()
		},
	},
	Notes: {
		name:  "notes",
		title: "Notes",
		has: func(p *project.Project) bool {
			return !project.IsBlank(p.Notes)
		},
		clear: func(p *project.Project) {
			p.Notes = ""
		},
	},
	Tags: {
		name:  "tags",
		title: "Tags",
		has: func(p *project.Project) bool {
			return len(p.Tags) > 0
		},
		clear: func(p *project.Project) {
			p.Tags = []string{}
		},
		seed: func(p *project.Project) {
			if len(p.Tags) == 0 {
				p.Tags = []string{""}
			}
		},
	},
}

func lookup(id ID) (entry, bool) {
	if id < 0 || int(id) >= len(registry) {
		return entry{}, false
	}
	return registry[id], true
}

// Visibility is the result of one visibility computation.
type Visibility struct {
	Active    []ID `json:"active"`
	Available []ID `json:"available"`
}

// Names returns the active and available identifiers as strings.
func (v Visibility) Names() (active, available []string) {
	return names(v.Active), names(v.Available)
}

func names(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// Enabled reports whether id is in the project's enabled set.
func Enabled(p *project.Project, id ID) bool {
	return slices.Contains(p.EnabledSections, id.String())
}

// IsActive reports whether section id is shown for p.
func IsActive(p *project.Project, id ID) bool {
	e, ok := lookup(id)
	if !ok {
		return false
	}
	return e.has(p) || Enabled(p, id)
}

// Recompute derives the active and available sections from p. Active and
// Available partition [All] and both keep canonical order.
func Recompute(p *project.Project) Visibility {
	v := Visibility{Active: []ID{}, Available: []ID{}}
	for _, id := range All {
		if IsActive(p, id) {
			v.Active = append(v.Active, id)
		} else {
			v.Available = append(v.Available, id)
		}
	}
	return v
}

// Active returns the sections shown for p in canonical order.
func Active(p *project.Project) []ID {
	return Recompute(p).Active
}

// Available returns the sections that can still be added to p.
func Available(p *project.Project) []ID {
	return Recompute(p).Available
}

// Add enables section id on p and seeds a placeholder entry into the details
// and tags lists when they are empty. Adding an enabled section only reseeds.
func Add(p *project.Project, id ID) error {
	e, ok := lookup(id)
	if !ok {
		return errors.New(errors.ErrCodeInvalidSection, "unknown section %d", int(id))
	}
	if !Enabled(p, id) {
		p.EnabledSections = append(p.EnabledSections, e.name)
	}
	if e.seed != nil {
		e.seed(p)
	}
	return nil
}

// Delete disables section id on p and clears the fields it owns.
func Delete(p *project.Project, id ID) error {
	e, ok := lookup(id)
	if !ok {
		return errors.New(errors.ErrCodeInvalidSection, "unknown section %d", int(id))
	}
	e.clear(p)
	kept := make([]string, 0, len(p.EnabledSections))
	for _, s := range p.EnabledSections {
		if s != e.name {
			kept = append(kept, s)
		}
	}
	p.EnabledSections = kept
	return nil
}
