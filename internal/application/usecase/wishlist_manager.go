// internal/application/usecase/wishlist_manager.go
package usecase

import (
	"context"
	"log"
	"strings"
	"sync"

	"panastore/internal/domain/wishlist"
)

// WishlistManager keeps the visitor's saved-for-later list. Unlike the
// cart it has no server-side counterpart: the list is session-local for
// guests and authenticated visitors alike, persisted through the
// wishlist store.
type WishlistManager struct {
	shopID string
	store  *wishlist.Store
	cart   *CartManager
	clock  Clock
	newID  IDGenerator

	mu      sync.Mutex
	items   []wishlist.Item
	lastErr string
}

func NewWishlistManager(shopID string, store *wishlist.Store, cart *CartManager) *WishlistManager {
	return NewWishlistManagerWithClock(shopID, store, cart, systemClock{}, uuidGenerator)
}

func NewWishlistManagerWithClock(
	shopID string,
	store *wishlist.Store,
	cart *CartManager,
	clock Clock,
	newID IDGenerator,
) *WishlistManager {
	if clock == nil {
		clock = systemClock{}
	}
	if newID == nil {
		newID = uuidGenerator
	}
	return &WishlistManager{
		shopID: strings.TrimSpace(shopID),
		store:  store,
		cart:   cart,
		clock:  clock,
		newID:  newID,
		items:  []wishlist.Item{},
	}
}

// Restore loads the persisted list into memory. Missing or unreadable
// state yields an empty list.
func (w *WishlistManager) Restore(ctx context.Context) {
	if w == nil || w.store == nil {
		return
	}
	items := w.store.Load(ctx, w.shopID)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = items
}

// Items returns a copy of the current list.
func (w *WishlistManager) Items() []wishlist.Item {
	if w == nil {
		return []wishlist.Item{}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]wishlist.Item{}, w.items...)
}

func (w *WishlistManager) Err() string {
	if w == nil {
		return ""
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Add puts a variant on the list. Duplicate variants are a no-op
// success.
func (w *WishlistManager) Add(ctx context.Context, variantID, name, imageURL string) bool {
	if w == nil {
		return false
	}

	w.mu.Lock()
	items, err := wishlist.Add(w.items, variantID, name, imageURL, w.newID(), w.clock.Now())
	if err != nil {
		w.lastErr = err.Error()
		w.mu.Unlock()
		return false
	}
	w.items = items
	snapshot := append([]wishlist.Item{}, items...)
	w.lastErr = ""
	w.mu.Unlock()

	w.persist(ctx, snapshot)
	return true
}

// Remove drops the entry with the given id; unknown ids are a no-op
// success.
func (w *WishlistManager) Remove(ctx context.Context, itemID string) bool {
	if w == nil {
		return false
	}
	if strings.TrimSpace(itemID) == "" {
		w.mu.Lock()
		w.lastErr = "remove: empty item id"
		w.mu.Unlock()
		return false
	}

	w.mu.Lock()
	w.items = wishlist.Remove(w.items, itemID)
	snapshot := append([]wishlist.Item{}, w.items...)
	w.lastErr = ""
	w.mu.Unlock()

	w.persist(ctx, snapshot)
	return true
}

// MoveToCart adds the entry's variant to the cart (quantity 1) and, only
// if that succeeds, removes the entry from the list.
func (w *WishlistManager) MoveToCart(ctx context.Context, itemID string) bool {
	if w == nil || w.cart == nil {
		return false
	}

	w.mu.Lock()
	entry := wishlist.Find(w.items, itemID)
	w.mu.Unlock()

	if entry == nil {
		w.mu.Lock()
		w.lastErr = "move to cart: item not found"
		w.mu.Unlock()
		return false
	}

	if !w.cart.AddItem(ctx, entry.VariantID, 1) {
		w.mu.Lock()
		w.lastErr = "move to cart: " + w.cart.Err()
		w.mu.Unlock()
		return false
	}

	return w.Remove(ctx, itemID)
}

func (w *WishlistManager) persist(ctx context.Context, items []wishlist.Item) {
	if err := w.store.Save(ctx, w.shopID, items); err != nil {
		log.Printf("[wishlist_manager] save failed shop=%q err=%v (keeping in-memory state)", w.shopID, err)
	}
}
