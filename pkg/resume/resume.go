// Package resume stores the single résumé PDF kept alongside the projects.
//
// The PDF lives in the store's blob slot [Slot] and is unrelated to any
// project. Only the file signature is checked; the document is never parsed
// or rendered.
package resume

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/milestone-dev/milestone/pkg/errors"
	"github.com/milestone-dev/milestone/pkg/store"
	"github.com/milestone-dev/milestone/pkg/ticket"
)

// Slot is the blob name the résumé is stored under.
const Slot = "resume.pdf"

// MaxSize is the largest accepted PDF, in bytes.
const MaxSize = 20 << 20

var signature = []byte("%PDF-")

// Read reads a PDF from r, enforcing MaxSize and the PDF signature.
func Read(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	if len(data) > MaxSize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "pdf larger than %d MiB", MaxSize>>20)
	}
	if !bytes.HasPrefix(data, signature) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "file is not a PDF")
	}
	return data, nil
}

// Import reads a PDF from r and stores it, replacing the previous résumé.
func Import(ctx context.Context, s store.Store, r io.Reader) (int, error) {
	data, err := Read(r)
	if err != nil {
		return 0, err
	}
	if err := s.PutBlob(ctx, Slot, data); err != nil {
		return 0, err
	}
	return len(data), nil
}

// Load returns the stored résumé or a NOT_FOUND error.
func Load(ctx context.Context, s store.Store) ([]byte, error) {
	data, err := s.GetBlob(ctx, Slot)
	if err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return nil, errors.New(errors.ErrCodeNotFound, "no résumé imported yet")
		}
		return nil, err
	}
	return data, nil
}

// Loader serialises concurrent imports so that a slow import started first
// never overwrites one started after it.
type Loader struct {
	store   store.Store
	tickets ticket.Dispenser
	logger  *log.Logger
}

// NewLoader returns a Loader writing to s.
func NewLoader(s store.Store, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{store: s, logger: logger}
}

// Begin starts an import and returns its ticket.
func (l *Loader) Begin() ticket.Ticket {
	return l.tickets.Issue(Slot)
}

// Complete reads r and stores it if t is still the newest import. A stale
// import returns (false, nil) and leaves the stored résumé untouched.
func (l *Loader) Complete(ctx context.Context, t ticket.Ticket, r io.Reader) (bool, error) {
	data, err := Read(r)
	if err != nil {
		return false, err
	}

	var putErr error
	applied := l.tickets.Settle(t, func() {
		putErr = l.store.PutBlob(ctx, Slot, data)
	})
	if !applied {
		l.logger.Debug("discarded stale résumé import", "ticket", t)
		return false, nil
	}
	if putErr != nil {
		return false, putErr
	}
	l.logger.Info("imported résumé", "bytes", len(data))
	return true, nil
}
