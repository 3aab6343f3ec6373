package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/milestone-dev/milestone/pkg/project"
)

// MemoryStore keeps everything in process memory. Values are cloned on the
// way in and out so callers never share state with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[uuid.UUID]*project.Project
	blobs    map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[uuid.UUID]*project.Project),
		blobs:    make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, notFound(id)
	}
	return p.Clone(), nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*project.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (s *MemoryStore) Put(ctx context.Context, p *project.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.put(p)
	emitSave(ctx, "memory", p.ID, err)
	return err
}

func (s *MemoryStore) put(p *project.Project) error {
	if err := prepare(p, time.Now()); err != nil {
		return err
	}
	p.Revision++
	s.projects[p.ID] = p.Clone()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	if _, ok := s.projects[id]; !ok {
		err = notFound(id)
	} else {
		delete(s.projects, id)
	}
	emitDelete(ctx, "memory", id, err)
	return err
}

func (s *MemoryStore) Update(ctx context.Context, id uuid.UUID, fn func(p *project.Project) error) (*project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.projects[id]
	if !ok {
		return nil, notFound(id)
	}
	p := cur.Clone()
	if err := fn(p); err != nil {
		if err == ErrNoChange {
			return cur.Clone(), nil
		}
		return nil, err
	}
	p.ID = id
	err := s.put(p)
	emitSave(ctx, "memory", id, err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *MemoryStore) GetBlob(ctx context.Context, name string) ([]byte, error) {
	if err := validBlobName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[name]
	if !ok {
		return nil, blobNotFound(name)
	}
	return append([]byte(nil), b...), nil
}

func (s *MemoryStore) PutBlob(ctx context.Context, name string, data []byte) error {
	if err := validBlobName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[name] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
