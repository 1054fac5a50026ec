// internal/domain/wishlist/entity.go
package wishlist

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidItem = errors.New("wishlist: invalid item")
)

// Item is one remembered product variant. De-duplicated by VariantID.
type Item struct {
	ID        string    `json:"id"`
	VariantID string    `json:"variantId"`
	Name      string    `json:"name,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}

// Add appends a new item unless the variant is already present.
// Returns the (possibly unchanged) list.
func Add(items []Item, variantID, name, imageURL, newID string, now time.Time) ([]Item, error) {
	vid := strings.TrimSpace(variantID)
	id := strings.TrimSpace(newID)
	if vid == "" || id == "" {
		return items, ErrInvalidItem
	}

	for i := range items {
		if items[i].VariantID == vid {
			return items, nil
		}
	}

	return append(items, Item{
		ID:        id,
		VariantID: vid,
		Name:      strings.TrimSpace(name),
		ImageURL:  strings.TrimSpace(imageURL),
		AddedAt:   now,
	}), nil
}

// Remove filters out the item with the given id.
func Remove(items []Item, itemID string) []Item {
	id := strings.TrimSpace(itemID)
	if id == "" {
		return items
	}
	out := items[:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

// Find returns the item with the given id, or nil.
func Find(items []Item, itemID string) *Item {
	id := strings.TrimSpace(itemID)
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}
