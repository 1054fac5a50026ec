// internal/application/usecase/cart_manager_test.go
package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panastore/internal/adapters/out/kvstore"
	"panastore/internal/domain/cart"
	"panastore/internal/domain/session"
	"panastore/internal/domain/storage"
)

func newTestManager(api *fakeCommerceAPI, state *session.State) (*CartManager, *kvstore.Memory) {
	mem := kvstore.NewMemory()
	m := NewCartManagerWithClock(
		"shop1",
		cart.NewGuestStore(mem),
		api,
		state,
		testClock(),
		seqIDs("local"),
	)
	return m, mem
}

func authedState() *session.State {
	s := session.NewState()
	s.SetAuthenticated(testToken, nil)
	return s
}

// ----------------------------
// Guest path
// ----------------------------

func TestAddItemGuestMergesByVariant(t *testing.T) {
	ctx := context.Background()
	api := newFakeCommerceAPI()
	m, mem := newTestManager(api, session.NewState())

	require.True(t, m.AddItem(ctx, "variant-42", 2))
	require.True(t, m.AddItem(ctx, "variant-42", 1))

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Qty)
	assert.Empty(t, api.addCalls)

	// persisted through the guest store
	persisted := cart.NewGuestStore(mem).Load(ctx, "shop1")
	require.Len(t, persisted, 1)
	assert.Equal(t, 3, persisted[0].Qty)

	assert.Empty(t, m.Err())
}

func TestAddItemGuestInvalidInput(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(newFakeCommerceAPI(), session.NewState())

	assert.False(t, m.AddItem(ctx, "", 1))
	assert.False(t, m.AddItem(ctx, "variant-1", 0))
	assert.NotEmpty(t, m.Err())

	// a following success resets the error
	assert.True(t, m.AddItem(ctx, "variant-1", 1))
	assert.Empty(t, m.Err())
}

func TestRemoveItemGuestUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(newFakeCommerceAPI(), session.NewState())

	assert.True(t, m.RemoveItem(ctx, "nope"))
	assert.Empty(t, m.Items())
}

func TestUpdateQuantityGuest(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(newFakeCommerceAPI(), session.NewState())

	require.True(t, m.AddItem(ctx, "variant-1", 2))
	id := m.Items()[0].ID

	require.True(t, m.UpdateQuantity(ctx, id, 5))
	assert.Equal(t, 5, m.Items()[0].Qty)

	// zero quantity removes
	require.True(t, m.UpdateQuantity(ctx, id, 0))
	assert.Empty(t, m.Items())
}

func TestUpdateQuantityGuestUnknownID(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(newFakeCommerceAPI(), session.NewState())

	assert.False(t, m.UpdateQuantity(ctx, "nope", 5))
	assert.NotEmpty(t, m.Err())
}

func TestClearGuestIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m, mem := newTestManager(newFakeCommerceAPI(), session.NewState())

	require.True(t, m.AddItem(ctx, "variant-1", 1))
	require.True(t, m.Clear(ctx))
	assert.Empty(t, m.Items())

	_, err := mem.Get(ctx, "shop1_cart")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.True(t, m.Clear(ctx))
}

func TestRefreshGuestIsNoop(t *testing.T) {
	api := newFakeCommerceAPI()
	m, _ := newTestManager(api, session.NewState())

	m.Refresh(context.Background())
	assert.Zero(t, api.getCalls)
	assert.Empty(t, m.Err())
}

func TestRestoreLoadsPersistedGuestCart(t *testing.T) {
	ctx := context.Background()
	mem := kvstore.NewMemory()
	store := cart.NewGuestStore(mem)
	require.NoError(t, store.Save(ctx, "shop1", []cart.LineItem{
		{ID: "local-1", VariantID: "variant-1", Qty: 2},
	}))

	m := NewCartManagerWithClock("shop1", store, newFakeCommerceAPI(), session.NewState(), testClock(), seqIDs("local"))
	m.Restore(ctx)

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "variant-1", items[0].VariantID)
	assert.Equal(t, 2, items[0].Qty)
}

// ----------------------------
// Authenticated path
// ----------------------------

func TestAddItemAuthenticatedDelegates(t *testing.T) {
	ctx := context.Background()
	api := newFakeCommerceAPI()
	m, mem := newTestManager(api, authedState())

	require.True(t, m.AddItem(ctx, "variant-1", 2))

	require.Len(t, api.addCalls, 1)
	assert.Equal(t, addCall{VariantID: "variant-1", Qty: 2}, api.addCalls[0])

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "srv-1", items[0].ID)
	assert.Equal(t, 2, items[0].Qty)

	// nothing written to the guest store
	_, err := mem.Get(ctx, "shop1_cart")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAddItemAuthenticatedFailure(t *testing.T) {
	ctx := context.Background()
	api := newFakeCommerceAPI()
	api.addErr["variant-1"] = errors.New("boom")
	m, _ := newTestManager(api, authedState())

	assert.False(t, m.AddItem(ctx, "variant-1", 1))
	assert.Contains(t, m.Err(), "boom")
	assert.Empty(t, m.Items())
}

func TestUpdateQuantityAuthenticatedRemovesThenAdds(t *testing.T) {
	ctx := context.Background()
	api := newFakeCommerceAPI()
	m, _ := newTestManager(api, authedState())

	require.True(t, m.AddItem(ctx, "variant-1", 2))
	id := m.Items()[0].ID

	require.True(t, m.UpdateQuantity(ctx, id, 5))

	require.Len(t, api.removeCalls, 1)
	assert.Equal(t, id, api.removeCalls[0])
	require.Len(t, api.addCalls, 2)
	assert.Equal(t, addCall{VariantID: "variant-1", Qty: 5}, api.addCalls[1])

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Qty)
}

func TestUpdateQuantityAuthenticatedAddFailureLeavesLineRemoved(t *testing.T) {
	ctx := context.Background()
	api := newFakeCommerceAPI()
	m, _ := newTestManager(api, authedState())

	require.True(t, m.AddItem(ctx, "variant-1", 2))
	id := m.Items()[0].ID

	api.addErr["variant-1"] = errors.New("boom")

	assert.False(t, m.UpdateQuantity(ctx, id, 5))
	assert.Contains(t, m.Err(), "boom")
	// the remove call went through; the re-add did not
	assert.Empty(t, m.Items())
}

func TestClearAuthenticatedDelegates(t *testing.T) {
	ctx := context.Background()
	api := newFakeCommerceAPI()
	m, _ := newTestManager(api, authedState())

	require.True(t, m.AddItem(ctx, "variant-1", 1))
	require.True(t, m.Clear(ctx))

	assert.Equal(t, 1, api.clearCalls)
	assert.Empty(t, m.Items())
}

func TestRefreshFailureKeepsMirror(t *testing.T) {
	ctx := context.Background()
	api := newFakeCommerceAPI()
	m, _ := newTestManager(api, authedState())

	require.True(t, m.AddItem(ctx, "variant-1", 2))

	api.getErr = errors.New("backend down")
	m.Refresh(ctx)

	assert.Contains(t, m.Err(), "backend down")
	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)
}

func TestUnauthorizedInvokesHandler(t *testing.T) {
	ctx := context.Background()
	api := newFakeCommerceAPI()

	state := session.NewState()
	state.SetAuthenticated("stale-token", nil)
	m, _ := newTestManager(api, state)

	called := false
	m.SetUnauthorizedHandler(func() { called = true })

	assert.False(t, m.AddItem(ctx, "variant-1", 1))
	assert.True(t, called)
}

// ----------------------------
// Merge
// ----------------------------

func TestMergeGuestCartReplaysInOrderAndClearsStore(t *testing.T) {
	ctx := context.Background()
	api := newFakeCommerceAPI()
	state := session.NewState()
	m, mem := newTestManager(api, state)

	require.True(t, m.AddItem(ctx, "variant-1", 1))
	require.True(t, m.AddItem(ctx, "variant-2", 2))

	state.SetAuthenticated(testToken, nil)
	m.MergeGuestCart(ctx)

	require.Len(t, api.addCalls, 2)
	assert.Equal(t, addCall{VariantID: "variant-1", Qty: 1}, api.addCalls[0])
	assert.Equal(t, addCall{VariantID: "variant-2", Qty: 2}, api.addCalls[1])

	// guest side is gone
	_, err := mem.Get(ctx, "shop1_cart")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	items := m.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "variant-1", items[0].VariantID)
	assert.Equal(t, "variant-2", items[1].VariantID)
}

func TestMergeGuestCartEmptyMakesNoCalls(t *testing.T) {
	ctx := context.Background()
	api := newFakeCommerceAPI()
	state := authedState()
	m, mem := newTestManager(api, state)

	// an untouched store stays untouched
	require.NoError(t, mem.Set(ctx, "unrelated", []byte("x")))

	m.MergeGuestCart(ctx)

	assert.Empty(t, api.addCalls)
	got, err := mem.Get(ctx, "unrelated")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got)
}

func TestMergeGuestCartPartialFailureStillClearsStore(t *testing.T) {
	ctx := context.Background()
	api := newFakeCommerceAPI()
	api.addErr["variant-2"] = errors.New("out of stock")
	state := session.NewState()
	m, mem := newTestManager(api, state)

	require.True(t, m.AddItem(ctx, "variant-1", 1))
	require.True(t, m.AddItem(ctx, "variant-2", 2))

	state.SetAuthenticated(testToken, nil)
	m.MergeGuestCart(ctx)

	// both lines were attempted
	require.Len(t, api.addCalls, 2)

	// only the first made it into the server cart
	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "variant-1", items[0].VariantID)

	// the failed line is dropped, not resurrected
	_, err := mem.Get(ctx, "shop1_cart")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// merge failures never surface as operation errors
	assert.Empty(t, m.Err())
}

// ----------------------------
// Derived values
// ----------------------------

func TestTotalAndCountOnServerCart(t *testing.T) {
	ctx := context.Background()
	api := newFakeCommerceAPI()
	api.prices["variant-1"] = 10.50
	api.prices["variant-2"] = 4.50
	m, _ := newTestManager(api, authedState())

	require.True(t, m.AddItem(ctx, "variant-1", 2))
	require.True(t, m.AddItem(ctx, "variant-2", 1))

	assert.InDelta(t, 25.50, m.Total(), 1e-9)
	assert.Equal(t, 3, m.Count())
}
