// Package storage defines the port for persisting serialized cart state.
// The cart manager depends on this abstraction, not on SQLite or Redis
// directly, so the backend can be swapped per deployment (or for an
// in-memory implementation in tests).
package storage

import (
	"context"
	"time"
)

// Record is one stored cart: the composite key it was stored under and the
// opaque serialized blob. Content is opaque to this package; only the cart
// manager knows how to decode it.
type Record struct {
	ExternalID string
	Instance   string
	Content    []byte
	UpdatedAt  time.Time
}

// Repository is the key-value persistence port, keyed by
// (external id, instance name).
type Repository interface {
	// CreateOrUpdate upserts the blob under the composite key.
	CreateOrUpdate(ctx context.Context, externalID, instanceName string, content []byte) error

	// FindByIDAndInstanceName returns the stored record, or (nil, nil)
	// when no record exists under the key.
	FindByIDAndInstanceName(ctx context.Context, externalID, instanceName string) (*Record, error)

	// Remove deletes the record under the composite key. Removing an
	// absent record is not an error.
	Remove(ctx context.Context, externalID, instanceName string) error
}
