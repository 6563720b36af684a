// Package app binds a cart aggregate to a named instance and a persistence
// backend, and orchestrates the store/restore/destroy round-trip.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jcmexdev/shopping-cart/internal/cart/domain"
	"github.com/jcmexdev/shopping-cart/internal/cart/storage"
)

// Manager is the public-facing cart type. It embeds the aggregate, so all
// mutators and totals (Add, Update, SetShipping, Total, ...) are available
// directly, and adds the persistence orchestration on top.
//
// One Manager serves one caller at a time; concurrent mutation of the same
// (external id, instance) pair is the storage layer's last-write-wins.
type Manager struct {
	*domain.Cart

	repo         storage.Repository
	instanceName string
}

// NewManager returns a manager with an empty cart bound to the default
// instance.
func NewManager(repo storage.Repository) *Manager {
	return &Manager{
		Cart:         domain.NewCart(),
		repo:         repo,
		instanceName: domain.InstanceName(domain.DefaultInstanceName),
	}
}

// SetInstance switches the manager to the named instance. The in-memory
// cart is kept; only the storage key component changes.
func (m *Manager) SetInstance(name string) {
	m.instanceName = domain.InstanceName(name)
}

// CurrentInstance returns the fully qualified instance name, e.g.
// "shopping-cart.default".
func (m *Manager) CurrentInstance() string {
	return m.instanceName
}

// Store serializes the full cart state and upserts it under
// (externalID, current instance).
func (m *Manager) Store(ctx context.Context, externalID string) error {
	content, err := encodeCart(m.Cart)
	if err != nil {
		return err
	}

	if err := m.repo.CreateOrUpdate(ctx, externalID, m.instanceName, content); err != nil {
		return err
	}

	slog.DebugContext(ctx, "cart stored",
		"external_id", externalID,
		"instance", m.instanceName,
		"items", m.Count(),
	)
	return nil
}

// Restore fetches the record under (externalID, current instance) and
// replaces the in-memory cart with the decoded state. When no record
// exists it reports false and leaves the cart untouched. The current
// instance name is re-derived from the stored record, so a restore can
// change the manager's instance.
func (m *Manager) Restore(ctx context.Context, externalID string) (bool, error) {
	rec, err := m.repo.FindByIDAndInstanceName(ctx, externalID, m.instanceName)
	if err != nil {
		return false, err
	}
	if rec == nil {
		return false, nil
	}

	cart, err := decodeCart(rec.Content)
	if err != nil {
		return false, fmt.Errorf("cart: restore %q/%q: %w", externalID, m.instanceName, err)
	}

	m.Cart = cart
	m.instanceName = domain.InstanceName(rec.Instance)

	return true, nil
}

// Destroy deletes the record under (externalID, current instance). The
// in-memory cart is untouched. Destroying an absent record is a no-op.
func (m *Manager) Destroy(ctx context.Context, externalID string) error {
	return m.repo.Remove(ctx, externalID, m.instanceName)
}
