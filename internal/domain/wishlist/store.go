// internal/domain/wishlist/store.go
package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"panastore/internal/domain/storage"
)

// Store persists the wishlist mirror at storage.WishlistKey(shopID),
// with the same never-fail load contract as the guest cart store.
type Store struct {
	store storage.Store
}

func NewStore(store storage.Store) *Store {
	return &Store{store: store}
}

func (s *Store) Load(ctx context.Context, shopID string) []Item {
	if s == nil || s.store == nil {
		return []Item{}
	}

	raw, err := s.store.Get(ctx, storage.WishlistKey(shopID))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("[wishlist_store] load failed shop=%q err=%v (treating as empty)", shopID, err)
		}
		return []Item{}
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("[wishlist_store] corrupt blob shop=%q err=%v (treating as empty)", shopID, err)
		return []Item{}
	}
	if items == nil {
		items = []Item{}
	}
	return items
}

func (s *Store) Save(ctx context.Context, shopID string, items []Item) error {
	if s == nil || s.store == nil {
		return errors.New("wishlist: store is nil")
	}
	if items == nil {
		items = []Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, storage.WishlistKey(shopID), raw)
}

func (s *Store) Clear(ctx context.Context, shopID string) error {
	if s == nil || s.store == nil {
		return errors.New("wishlist: store is nil")
	}
	return s.store.Delete(ctx, storage.WishlistKey(shopID))
}
