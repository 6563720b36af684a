// Package redis provides a Redis-backed implementation of
// storage.Repository. Each external id owns one hash whose fields are the
// instance names, so all instances of a user's cart live under a single
// key and can expire together.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jcmexdev/shopping-cart/internal/cart/storage"
)

const keyPrefix = "shopping-cart:cart"

// Repository is the Redis implementation of storage.Repository.
type Repository struct {
	client *redis.Client
}

var _ storage.Repository = (*Repository)(nil)

// New connects to the Redis instance at addr ("host:port").
func New(addr string) *Repository {
	return &Repository{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Ping verifies the connection; call it once at startup.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}

// Close releases the client connection pool.
func (r *Repository) Close() error {
	return r.client.Close()
}

// CreateOrUpdate writes the blob into the hash field for the instance.
func (r *Repository) CreateOrUpdate(ctx context.Context, externalID, instanceName string, content []byte) error {
	if err := r.client.HSet(ctx, key(externalID), instanceName, content).Err(); err != nil {
		return fmt.Errorf("redis: upsert cart %q/%q: %w", externalID, instanceName, err)
	}
	return nil
}

// FindByIDAndInstanceName reads the hash field for the instance, mapping
// redis.Nil to the absent (nil, nil) signal.
func (r *Repository) FindByIDAndInstanceName(ctx context.Context, externalID, instanceName string) (*storage.Record, error) {
	content, err := r.client.HGet(ctx, key(externalID), instanceName).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: find cart %q/%q: %w", externalID, instanceName, err)
	}

	return &storage.Record{
		ExternalID: externalID,
		Instance:   instanceName,
		Content:    content,
		UpdatedAt:  time.Now().UTC(),
	}, nil
}

// Remove deletes the hash field for the instance. HDel on a missing field
// is already a no-op.
func (r *Repository) Remove(ctx context.Context, externalID, instanceName string) error {
	if err := r.client.HDel(ctx, key(externalID), instanceName).Err(); err != nil {
		return fmt.Errorf("redis: remove cart %q/%q: %w", externalID, instanceName, err)
	}
	return nil
}

func key(externalID string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, externalID)
}
