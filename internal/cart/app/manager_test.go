package app_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/shopping-cart/internal/cart/app"
	"github.com/jcmexdev/shopping-cart/internal/cart/domain"
	"github.com/jcmexdev/shopping-cart/internal/cart/storage/memory"
)

func TestManager_DefaultInstance(t *testing.T) {
	mgr := app.NewManager(memory.New())

	assert.Equal(t, "shopping-cart.default", mgr.CurrentInstance())
}

func TestManager_SetInstance(t *testing.T) {
	mgr := app.NewManager(memory.New())

	mgr.SetInstance("wishlist")
	assert.Equal(t, "shopping-cart.wishlist", mgr.CurrentInstance())

	mgr.SetInstance("shopping-cart.wishlist")
	assert.Equal(t, "shopping-cart.wishlist", mgr.CurrentInstance())
}

func TestManager_StoreRestore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	mgr := app.NewManager(repo)
	mgr.Add("1", "Widget", 9.99, 2, map[string]string{"color": "blue"})
	mgr.Add("2", "Gadget", 121, 1, nil)
	mgr.AddCoupon(domain.PercentageCoupon{Code: "TEN", Percentage: 10})
	mgr.AddCoupon(domain.FixedAmountCoupon{Code: "F5", Amount: 5})
	mgr.SetShipping(121, "express")
	mgr.SetAdditionalShipping(10)
	mgr.SetSignature(json.RawMessage(`{"checksum":"abc"}`))

	require.NoError(t, mgr.Store(ctx, "user-1"))

	fresh := app.NewManager(repo)
	found, err := fresh.Restore(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, mgr.Count(), fresh.Count())
	assert.Equal(t, mgr.CountTotalItems(), fresh.CountTotalItems())
	assert.InDelta(t, mgr.SubTotal(), fresh.SubTotal(), 1e-9)
	assert.InDelta(t, mgr.Total(), fresh.Total(), 1e-9)
	assert.InDelta(t, mgr.Tax(), fresh.Tax(), 1e-9)
	assert.InDelta(t, mgr.TotalWithCoupons(), fresh.TotalWithCoupons(), 1e-9)
	assert.InDelta(t, mgr.ShippingTax(), fresh.ShippingTax(), 1e-12)
	assert.Equal(t, mgr.ShippingMethod(), fresh.ShippingMethod())
	assert.Equal(t, mgr.Signature(), fresh.Signature())
	assert.Len(t, fresh.Coupons(), 2)

	item, ok := fresh.Get("1")
	require.True(t, ok)
	assert.Equal(t, "Widget", item.Name)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "blue", item.Options["color"])

	// Insertion order survives the round-trip.
	items := fresh.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "2", items[1].ID)
}

func TestManager_Restore_MissingRecordIsNoOp(t *testing.T) {
	ctx := context.Background()

	mgr := app.NewManager(memory.New())
	mgr.Add("1", "Widget", 9.99, 2, nil)

	found, err := mgr.Restore(ctx, "nobody")
	require.NoError(t, err)
	assert.False(t, found)

	// In-memory state is untouched.
	assert.Equal(t, 1, mgr.Count())
	assert.Equal(t, "shopping-cart.default", mgr.CurrentInstance())
}

func TestManager_Restore_RederivesInstanceFromRecord(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	stored := app.NewManager(repo)
	stored.SetInstance("wishlist")
	stored.Add("1", "Widget", 9.99, 1, nil)
	require.NoError(t, stored.Store(ctx, "user-1"))

	mgr := app.NewManager(repo)
	mgr.SetInstance("wishlist")
	found, err := mgr.Restore(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "shopping-cart.wishlist", mgr.CurrentInstance())
}

func TestManager_Restore_InstancesAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	def := app.NewManager(repo)
	def.Add("1", "Widget", 9.99, 1, nil)
	require.NoError(t, def.Store(ctx, "user-1"))

	wish := app.NewManager(repo)
	wish.SetInstance("wishlist")
	found, err := wish.Restore(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestManager_Restore_PartialBlobDefaultsToZero(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	// An older blob that predates the shipping and signature fields.
	blob := []byte(`{"items":[{"id":"1","name":"Widget","price":9.99,"quantity":2}]}`)
	require.NoError(t, repo.CreateOrUpdate(ctx, "user-1", "shopping-cart.default", blob))

	mgr := app.NewManager(repo)
	found, err := mgr.Restore(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, 1, mgr.Count())
	assert.Zero(t, mgr.Shipping())
	assert.Zero(t, mgr.ShippingTax())
	assert.Zero(t, mgr.AdditionalShipping())
	assert.Empty(t, mgr.ShippingMethod())
	assert.Nil(t, mgr.Signature())
	assert.Empty(t, mgr.Coupons())
}

func TestManager_Restore_UnknownCouponTypeFails(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	blob := []byte(`{"items":[],"coupons":[{"type":"mystery","code":"X"}]}`)
	require.NoError(t, repo.CreateOrUpdate(ctx, "user-1", "shopping-cart.default", blob))

	mgr := app.NewManager(repo)
	_, err := mgr.Restore(ctx, "user-1")
	assert.Error(t, err)
}

func TestManager_Store_Overwrites(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	mgr := app.NewManager(repo)
	mgr.Add("1", "Widget", 9.99, 2, nil)
	require.NoError(t, mgr.Store(ctx, "user-1"))

	mgr.Clear()
	mgr.Add("2", "Gadget", 5, 1, nil)
	require.NoError(t, mgr.Store(ctx, "user-1"))

	fresh := app.NewManager(repo)
	found, err := fresh.Restore(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, 1, fresh.Count())
	_, ok := fresh.Get("2")
	assert.True(t, ok)
}

func TestManager_Destroy(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	mgr := app.NewManager(repo)
	mgr.Add("1", "Widget", 9.99, 2, nil)
	require.NoError(t, mgr.Store(ctx, "user-1"))
	require.Equal(t, 1, repo.Len())

	require.NoError(t, mgr.Destroy(ctx, "user-1"))
	assert.Zero(t, repo.Len())

	// Destroying an absent record stays a no-op.
	require.NoError(t, mgr.Destroy(ctx, "user-1"))
}
