// Package memory provides an in-memory implementation of
// storage.Repository: a mutex-guarded map keyed by (external id, instance).
// It backs unit tests and serves as the zero-dependency default backend.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jcmexdev/shopping-cart/internal/cart/storage"
)

// Repository is the in-memory implementation of storage.Repository.
type Repository struct {
	mu      sync.RWMutex
	records map[recordKey]*storage.Record
}

type recordKey struct {
	externalID string
	instance   string
}

var _ storage.Repository = (*Repository)(nil)

// New returns an empty in-memory repository.
func New() *Repository {
	return &Repository{
		records: make(map[recordKey]*storage.Record),
	}
}

func (r *Repository) CreateOrUpdate(_ context.Context, externalID, instanceName string, content []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]byte, len(content))
	copy(stored, content)

	r.records[recordKey{externalID, instanceName}] = &storage.Record{
		ExternalID: externalID,
		Instance:   instanceName,
		Content:    stored,
		UpdatedAt:  time.Now().UTC(),
	}
	return nil
}

func (r *Repository) FindByIDAndInstanceName(_ context.Context, externalID, instanceName string) (*storage.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[recordKey{externalID, instanceName}]
	if !ok {
		return nil, nil
	}

	// Copy out so callers cannot mutate the stored blob.
	out := *rec
	out.Content = make([]byte, len(rec.Content))
	copy(out.Content, rec.Content)
	return &out, nil
}

func (r *Repository) Remove(_ context.Context, externalID, instanceName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, recordKey{externalID, instanceName})
	return nil
}

// Len reports the number of stored records; test helper.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
