// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidLine = errors.New("cart: invalid line item")
)

// LineItem represents "one line item": a product variant plus quantity.
//
// ID is locally generated (uuid) while the visitor is a guest and
// server-issued once the line lives in the commerce backend. The display
// fields (Name, ImageURL, UnitPrice, Currency) are denormalized from the
// catalog and may be absent for guest lines.
type LineItem struct {
	ID        string   `json:"id"`
	VariantID string   `json:"variantId"`
	Qty       int      `json:"qty"`
	Name      string   `json:"name,omitempty"`
	ImageURL  string   `json:"imageUrl,omitempty"`
	UnitPrice *float64 `json:"unitPrice,omitempty"`
	Currency  string   `json:"currency,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GuestCart holds the line items of a visitor with no server identity.
// Uniqueness is defined by VariantID; insertion order is preserved.
type GuestCart struct {
	ShopID string
	Items  []LineItem
}

func NewGuestCart(shopID string, items []LineItem) *GuestCart {
	return &GuestCart{
		ShopID: strings.TrimSpace(shopID),
		Items:  cloneLines(items),
	}
}

// Add increases quantity for variantID, or appends a new line with the
// given local id. qty must be >= 1.
func (g *GuestCart) Add(variantID string, qty int, newID string, now time.Time) error {
	if g == nil {
		return ErrInvalidLine
	}

	vid := strings.TrimSpace(variantID)
	if vid == "" || qty <= 0 {
		return ErrInvalidLine
	}

	if idx := findLineByVariant(g.Items, vid); idx >= 0 {
		g.Items[idx].Qty += qty
		g.Items[idx].UpdatedAt = now
		return nil
	}

	id := strings.TrimSpace(newID)
	if id == "" {
		return ErrInvalidLine
	}

	g.Items = append(g.Items, LineItem{
		ID:        id,
		VariantID: vid,
		Qty:       qty,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return nil
}

// SetQty sets quantity for the line with the given id.
// If qty <= 0, the line is removed (same contract as Remove).
func (g *GuestCart) SetQty(itemID string, qty int, now time.Time) error {
	if g == nil {
		return ErrInvalidLine
	}

	id := strings.TrimSpace(itemID)
	if id == "" {
		return ErrInvalidLine
	}

	idx := findLineByID(g.Items, id)

	if qty <= 0 {
		if idx >= 0 {
			g.Items = removeLineIndex(g.Items, idx)
		}
		return nil
	}

	if idx < 0 {
		return ErrInvalidLine
	}

	g.Items[idx].Qty = qty
	g.Items[idx].UpdatedAt = now
	return nil
}

// Remove removes the line with the given id from the cart.
func (g *GuestCart) Remove(itemID string, now time.Time) error {
	return g.SetQty(itemID, 0, now)
}

// Clear drops all lines.
func (g *GuestCart) Clear() {
	if g == nil {
		return
	}
	g.Items = []LineItem{}
}

func (g *GuestCart) IsEmpty() bool {
	return g == nil || len(g.Items) == 0
}

// ----------------------------
// Derived values
// ----------------------------

// Total sums unit price * quantity across the lines.
// Lines without a price entry count as zero.
func Total(items []LineItem) float64 {
	var total float64
	for _, it := range items {
		if it.UnitPrice == nil {
			continue
		}
		total += *it.UnitPrice * float64(it.Qty)
	}
	return total
}

// Count sums the quantities across the lines.
func Count(items []LineItem) int {
	n := 0
	for _, it := range items {
		n += it.Qty
	}
	return n
}

// ----------------------------
// Helpers
// ----------------------------

func findLineByVariant(items []LineItem, variantID string) int {
	for i := range items {
		if items[i].VariantID == variantID {
			return i
		}
	}
	return -1
}

func findLineByID(items []LineItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func removeLineIndex(items []LineItem, idx int) []LineItem {
	if idx < 0 || idx >= len(items) {
		return items
	}
	// preserve order
	return append(items[:idx], items[idx+1:]...)
}

func cloneLines(src []LineItem) []LineItem {
	if len(src) == 0 {
		return []LineItem{}
	}
	cp := make([]LineItem, len(src))
	copy(cp, src)
	return cp
}
