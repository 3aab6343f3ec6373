// Package editor holds the state of one project detail screen: the record
// being edited plus transient view state such as edit mode and which
// sections are expanded.
//
// A [Session] is safe for concurrent use. Section deletion clears fields and
// the enabled flag under one lock, so a concurrent [Session.Visibility] never
// observes a half-deleted section. Media loads that finish out of order are
// resolved with tickets; only the most recently started load is applied.
package editor

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/milestone-dev/milestone/pkg/project"
	"github.com/milestone-dev/milestone/pkg/section"
	"github.com/milestone-dev/milestone/pkg/ticket"
)

// Slots used for media load tickets.
const (
	SlotThumbnail = "thumbnail"
	SlotImages    = "images"
)

// DefaultExpanded lists the sections expanded when a session opens.
var DefaultExpanded = []section.ID{section.Overview, section.Details, section.Links}

// Session is an edit session over one project.
type Session struct {
	mu       sync.RWMutex
	p        *project.Project
	editing  bool
	expanded map[section.ID]bool
	dirty    bool

	tickets ticket.Dispenser
	logger  *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New opens a session over a private copy of p.
func New(p *project.Project, opts ...Option) *Session {
	s := &Session{
		p:        p.Clone(),
		expanded: make(map[section.ID]bool),
		logger:   log.Default(),
	}
	for _, id := range DefaultExpanded {
		s.expanded[id] = true
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a deep copy of the project as currently edited.
func (s *Session) Snapshot() *project.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Clone()
}

// Dirty reports whether the project changed since the session opened.
func (s *Session) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Visibility returns the active and available sections.
func (s *Session) Visibility() section.Visibility {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return section.Recompute(s.p)
}

// Editing reports whether edit mode is on.
func (s *Session) Editing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.editing
}

// SetEditing switches edit mode. Leaving edit mode prunes blank entries from
// the tech stack, key features and tags.
func (s *Session) SetEditing(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setEditingLocked(on)
}

// ToggleEditMode flips edit mode and returns the new state.
func (s *Session) ToggleEditMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setEditingLocked(!s.editing)
	return s.editing
}

func (s *Session) setEditingLocked(on bool) {
	wasEditing := s.editing
	s.editing = on
	if wasEditing && !on && s.p.PruneBlankItems() {
		s.dirty = true
		s.logger.Debug("pruned blank list entries", "project", s.p.ShortID())
	}
}

// IsExpanded reports whether a section is expanded.
func (s *Session) IsExpanded(id section.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expanded[id]
}

// ToggleSection expands or collapses a section and returns the new state.
func (s *Session) ToggleSection(id section.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded[id] = !s.expanded[id]
	return s.expanded[id]
}

// AddSection enables a section and expands it.
func (s *Session) AddSection(id section.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := section.Add(s.p, id); err != nil {
		return err
	}
	s.expanded[id] = true
	s.dirty = true
	return nil
}

// DeleteSection disables a section and clears its fields.
func (s *Session) DeleteSection(id section.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := section.Delete(s.p, id); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// ToggleFavorite flips the favourite flag and returns the new value.
func (s *Session) ToggleFavorite() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Favorite = !s.p.Favorite
	s.dirty = true
	return s.p.Favorite
}

// Edit applies fn to the project under the session lock.
func (s *Session) Edit(fn func(p *project.Project)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.p)
	s.dirty = true
}

// Apply writes a partial update into the project.
func (s *Session) Apply(pt project.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := pt.Apply(s.p); err != nil {
		return err
	}
	if !pt.Empty() {
		s.dirty = true
	}
	return nil
}

// AddItem appends v to a list field.
func (s *Session) AddItem(f project.Field, v string) {
	s.Edit(func(p *project.Project) { p.AppendItem(f, v) })
}

// UpdateItem replaces entry i of a list field. Out-of-range indices are
// ignored and reported as false.
func (s *Session) UpdateItem(f project.Field, i int, v string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.p.UpdateItem(f, i, v)
	s.dirty = s.dirty || ok
	return ok
}

// RemoveItem deletes entry i of a list field. Out-of-range indices are
// ignored and reported as false.
func (s *Session) RemoveItem(f project.Field, i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.p.RemoveItem(f, i)
	s.dirty = s.dirty || ok
	return ok
}

// RemoveImage deletes image i. Out-of-range indices are ignored.
func (s *Session) RemoveImage(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.p.RemoveImage(i)
	s.dirty = s.dirty || ok
	return ok
}

// BeginThumbnailLoad starts a thumbnail load. Any load started earlier
// becomes stale.
func (s *Session) BeginThumbnailLoad() ticket.Ticket {
	return s.tickets.Issue(SlotThumbnail)
}

// CompleteThumbnailLoad stores data as the thumbnail if t is still the
// latest thumbnail load. Stale completions are dropped and reported as false.
func (s *Session) CompleteThumbnailLoad(t ticket.Ticket, data []byte) bool {
	ok := s.tickets.Settle(t, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.p.Thumbnail = append([]byte(nil), data...)
		s.dirty = true
	})
	if !ok {
		s.logger.Debug("discarded stale thumbnail load", "ticket", t)
	}
	return ok
}

// BeginImagesLoad starts a load of picked images.
func (s *Session) BeginImagesLoad() ticket.Ticket {
	return s.tickets.Issue(SlotImages)
}

// CompleteImagesLoad appends blobs to the images if t is still the latest
// images load. Stale completions are dropped and reported as false.
func (s *Session) CompleteImagesLoad(t ticket.Ticket, blobs [][]byte) bool {
	ok := s.tickets.Settle(t, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, b := range blobs {
			s.p.Images = append(s.p.Images, append([]byte(nil), b...))
		}
		s.dirty = true
	})
	if !ok {
		s.logger.Debug("discarded stale images load", "ticket", t)
	}
	return ok
}
