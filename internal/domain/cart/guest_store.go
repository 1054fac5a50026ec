// internal/domain/cart/guest_store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"panastore/internal/domain/storage"
)

// GuestStore is the durable holding area for a guest's cart, one slot per
// shop, serialized as an opaque JSON blob at storage.CartKey(shopID).
//
// Load never fails: a missing or corrupt blob is treated as an empty cart
// so that broken persisted state can not break the storefront.
type GuestStore struct {
	store storage.Store
}

func NewGuestStore(store storage.Store) *GuestStore {
	return &GuestStore{store: store}
}

// Load returns the line items previously saved for the shop.
// Absence, read failure and parse failure all yield an empty list; the
// latter two are logged and swallowed.
func (s *GuestStore) Load(ctx context.Context, shopID string) []LineItem {
	if s == nil || s.store == nil {
		return []LineItem{}
	}

	raw, err := s.store.Get(ctx, storage.CartKey(shopID))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[guest_store] load failed shop=%q err=%v (treating as empty)", shopID, err)
		}
		return []LineItem{}
	}

	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("[guest_store] corrupt cart blob shop=%q err=%v (treating as empty)", shopID, err)
		return []LineItem{}
	}
	if items == nil {
		items = []LineItem{}
	}
	return items
}

// Save serializes and writes the full line-item list, overwriting any
// prior value. Idempotent.
func (s *GuestStore) Save(ctx context.Context, shopID string, items []LineItem) error {
	if s == nil || s.store == nil {
		return errors.New("cart: guest store is nil")
	}

	if items == nil {
		items = []LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, storage.CartKey(shopID), raw)
}

// Clear removes the shop's entry entirely (absent, not emptied-but-present).
func (s *GuestStore) Clear(ctx context.Context, shopID string) error {
	if s == nil || s.store == nil {
		return errors.New("cart: guest store is nil")
	}
	return s.store.Delete(ctx, storage.CartKey(shopID))
}
