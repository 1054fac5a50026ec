// internal/domain/cart/guest_store_test.go
package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panastore/internal/adapters/out/kvstore"
	"panastore/internal/domain/storage"
)

func TestGuestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewGuestStore(kvstore.NewMemory())

	items := []LineItem{
		{ID: "local-1", VariantID: "v1", Qty: 2},
		{ID: "local-2", VariantID: "v2", Qty: 1},
	}
	require.NoError(t, s.Save(ctx, "shop1", items))

	got := s.Load(ctx, "shop1")
	require.Len(t, got, 2)
	assert.Equal(t, "v1", got[0].VariantID)
	assert.Equal(t, 2, got[0].Qty)
}

func TestGuestStoreLoadMissingIsEmpty(t *testing.T) {
	s := NewGuestStore(kvstore.NewMemory())

	got := s.Load(context.Background(), "shop1")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGuestStoreLoadCorruptBlobIsEmpty(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemory()
	require.NoError(t, mem.Set(ctx, storage.CartKey("shop1"), []byte("{not json")))

	s := NewGuestStore(mem)
	assert.Empty(t, s.Load(ctx, "shop1"))
}

func TestGuestStoreClearRemovesEntry(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemory()
	s := NewGuestStore(mem)

	require.NoError(t, s.Save(ctx, "shop1", []LineItem{{ID: "local-1", VariantID: "v1", Qty: 1}}))
	require.NoError(t, s.Clear(ctx, "shop1"))

	_, err := mem.Get(ctx, storage.CartKey("shop1"))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// clearing again is not an error
	require.NoError(t, s.Clear(ctx, "shop1"))
}
