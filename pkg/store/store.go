// Package store persists project records and named blobs.
//
// # Backends
//
//   - [FileStore]: one JSON file per project under <data>/projects and raw
//     blobs under <data>/blobs. The default for single-user installs.
//   - [MongoStore]: the projects and blobs collections of a MongoDB database.
//   - [MemoryStore]: in-process maps, for tests and previews.
//
// # Updates
//
// [Store.Update] is a read-modify-write transaction. The file and memory
// stores serialise writers with a mutex; the Mongo store compares the
// record's Revision and retries on conflict.
package store

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/milestone-dev/milestone/pkg/errors"
	"github.com/milestone-dev/milestone/pkg/observability"
	"github.com/milestone-dev/milestone/pkg/project"
)

// Store is implemented by every persistence backend.
type Store interface {
	// Get returns the project with the given ID or a PROJECT_NOT_FOUND error.
	Get(ctx context.Context, id uuid.UUID) (*project.Project, error)

	// List returns every project in no particular order.
	List(ctx context.Context) ([]*project.Project, error)

	// Put validates and writes p, replacing any existing record with its ID.
	Put(ctx context.Context, p *project.Project) error

	// Delete removes a project. Deleting a missing project is an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// Update loads a project, applies fn and writes the result back
	// atomically. If fn returns an error nothing is written. If fn returns
	// [ErrNoChange] the stored project is returned untouched and Update
	// reports no error.
	Update(ctx context.Context, id uuid.UUID, fn func(p *project.Project) error) (*project.Project, error)

	// GetBlob returns a named blob or a NOT_FOUND error.
	GetBlob(ctx context.Context, name string) ([]byte, error)

	// PutBlob stores a named blob, replacing any previous content.
	PutBlob(ctx context.Context, name string, data []byte) error

	// Close releases backend resources.
	Close() error
}

// ErrNoChange is returned by an Update callback to skip the write, leaving
// Revision and UpdatedAt as they were.
var ErrNoChange error = errors.New(errors.ErrCodeConflict, "no change")

func notFound(id uuid.UUID) error {
	return errors.New(errors.ErrCodeProjectNotFound, "project %s not found", id)
}

func blobNotFound(name string) error {
	return errors.New(errors.ErrCodeNotFound, "blob %q not found", name)
}

// validBlobName keeps blob names usable as file names on every backend.
func validBlobName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return errors.New(errors.ErrCodeInvalidInput, "invalid blob name %q", name)
	}
	return nil
}

// prepare validates p and stamps it for a write.
func prepare(p *project.Project, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now.UTC()
	}
	p.Touch(now)
	return nil
}

func emitSave(ctx context.Context, backend string, id uuid.UUID, err error) {
	observability.Store().OnSave(ctx, backend, id.String(), err)
}

func emitDelete(ctx context.Context, backend string, id uuid.UUID, err error) {
	observability.Store().OnDelete(ctx, backend, id.String(), err)
}

// Resolve finds a project by full ID or by a unique ID prefix. Prefixes are
// matched case-insensitively and must be at least four characters long.
func Resolve(ctx context.Context, s Store, ref string) (*project.Project, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if id, err := uuid.Parse(ref); err == nil {
		return s.Get(ctx, id)
	}
	if len(ref) < 4 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "project reference %q is too short (need at least 4 characters)", ref)
	}

	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var match *project.Project
	for _, p := range all {
		if !strings.HasPrefix(p.ID.String(), ref) {
			continue
		}
		if match != nil {
			return nil, errors.New(errors.ErrCodeAmbiguousID, "project reference %q matches more than one project", ref)
		}
		match = p
	}
	if match == nil {
		return nil, errors.New(errors.ErrCodeProjectNotFound, "no project matches %q", ref)
	}
	return match, nil
}
