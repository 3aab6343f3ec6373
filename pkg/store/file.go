package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/milestone-dev/milestone/pkg/project"
)

// FileStore keeps projects as JSON files in a data directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
	now     func() time.Time
}

// NewFileStore creates the projects and blobs directories under baseDir.
func NewFileStore(baseDir string) (*FileStore, error) {
	for _, dir := range []string{baseDir, filepath.Join(baseDir, "projects"), filepath.Join(baseDir, "blobs")} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return &FileStore{baseDir: baseDir, now: time.Now}, nil
}

// Path returns the data directory.
func (s *FileStore) Path() string {
	return s.baseDir
}

func (s *FileStore) projectPath(id uuid.UUID) string {
	return filepath.Join(s.baseDir, "projects", id.String()+".json")
}

func (s *FileStore) blobPath(name string) string {
	return filepath.Join(s.baseDir, "blobs", name)
}

func (s *FileStore) Get(ctx context.Context, id uuid.UUID) (*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.projectPath(id), id)
}

func (s *FileStore) read(path string, id uuid.UUID) (*project.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("read project file: %w", err)
	}
	var p project.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse project %s: %w", filepath.Base(path), err)
	}
	return &p, nil
}

func (s *FileStore) List(ctx context.Context) ([]*project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Join(s.baseDir, "projects")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read projects dir: %w", err)
	}

	out := make([]*project.Project, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}
		p, err := s.read(filepath.Join(dir, entry.Name()), id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *FileStore) Put(ctx context.Context, p *project.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.write(p)
	emitSave(ctx, "file", p.ID, err)
	return err
}

func (s *FileStore) write(p *project.Project) error {
	if err := prepare(p, s.now()); err != nil {
		return err
	}
	p.Revision++

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	return writeAtomic(s.projectPath(p.ID), data)
}

func (s *FileStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.projectPath(id))
	if os.IsNotExist(err) {
		err = notFound(id)
	} else if err != nil {
		err = fmt.Errorf("remove project file: %w", err)
	}
	emitDelete(ctx, "file", id, err)
	return err
}

func (s *FileStore) Update(ctx context.Context, id uuid.UUID, fn func(p *project.Project) error) (*project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.read(s.projectPath(id), id)
	if err != nil {
		return nil, err
	}
	orig := p.Clone()
	if err := fn(p); err != nil {
		if err == ErrNoChange {
			return orig, nil
		}
		return nil, err
	}
	p.ID = id
	err = s.write(p)
	emitSave(ctx, "file", id, err)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *FileStore) GetBlob(ctx context.Context, name string) ([]byte, error) {
	if err := validBlobName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.blobPath(name))
	if os.IsNotExist(err) {
		return nil, blobNotFound(name)
	}
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

func (s *FileStore) PutBlob(ctx context.Context, name string, data []byte) error {
	if err := validBlobName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeAtomic(s.blobPath(name), data)
}

func (s *FileStore) Close() error { return nil }

// writeAtomic writes through a temp file so readers never see a partial file.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
