package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/shopping-cart/internal/cart/storage/sqlite"
)

func openTestRepo(t *testing.T) *sqlite.Repository {
	t.Helper()

	repo, err := sqlite.Open(filepath.Join(t.TempDir(), "carts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestRepository_FindMissingReturnsNil(t *testing.T) {
	repo := openTestRepo(t)

	rec, err := repo.FindByIDAndInstanceName(context.Background(), "u1", "shopping-cart.default")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestRepository_CreateOrUpdate_Upserts(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	require.NoError(t, repo.CreateOrUpdate(ctx, "u1", "shopping-cart.default", []byte(`{"v":1}`)))
	require.NoError(t, repo.CreateOrUpdate(ctx, "u1", "shopping-cart.default", []byte(`{"v":2}`)))

	rec, err := repo.FindByIDAndInstanceName(ctx, "u1", "shopping-cart.default")
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "u1", rec.ExternalID)
	assert.Equal(t, "shopping-cart.default", rec.Instance)
	assert.JSONEq(t, `{"v":2}`, string(rec.Content))
	assert.False(t, rec.UpdatedAt.IsZero())
}

func TestRepository_InstancesAreSeparateRows(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	require.NoError(t, repo.CreateOrUpdate(ctx, "u1", "shopping-cart.default", []byte(`{"which":"default"}`)))
	require.NoError(t, repo.CreateOrUpdate(ctx, "u1", "shopping-cart.wishlist", []byte(`{"which":"wishlist"}`)))

	rec, err := repo.FindByIDAndInstanceName(ctx, "u1", "shopping-cart.wishlist")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.JSONEq(t, `{"which":"wishlist"}`, string(rec.Content))
}

func TestRepository_Remove_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	require.NoError(t, repo.CreateOrUpdate(ctx, "u1", "shopping-cart.default", []byte(`{}`)))
	require.NoError(t, repo.Remove(ctx, "u1", "shopping-cart.default"))

	rec, err := repo.FindByIDAndInstanceName(ctx, "u1", "shopping-cart.default")
	require.NoError(t, err)
	assert.Nil(t, rec)

	// Removing again is not an error.
	require.NoError(t, repo.Remove(ctx, "u1", "shopping-cart.default"))
}
