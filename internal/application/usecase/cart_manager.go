// internal/application/usecase/cart_manager.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"panastore/internal/domain/cart"
	"panastore/internal/domain/commerce"
	"panastore/internal/domain/session"
)

// CartManager reconciles two cart representations behind one API:
//
//   - guest: line items held locally, persisted through cart.GuestStore
//   - authenticated: the server-side cart of the commerce backend,
//     mirrored here after every mutating call
//
// Which side a call lands on is decided per call from the session state.
// Mutating operations return a bool; the failure reason (if any) is kept
// in Err(). The mutex guards in-memory state only and is never held
// across a network call, so two overlapping requests on one session
// resolve last-response-wins.
type CartManager struct {
	shopID string
	store  *cart.GuestStore
	api    commerce.CartOperations
	state  *session.State
	clock  Clock
	newID  IDGenerator

	mu         sync.Mutex
	guest      *cart.GuestCart
	serverCart *commerce.Cart
	lastErr    string

	onUnauthorized func()
}

func NewCartManager(
	shopID string,
	store *cart.GuestStore,
	api commerce.CartOperations,
	state *session.State,
) *CartManager {
	return NewCartManagerWithClock(shopID, store, api, state, systemClock{}, uuidGenerator)
}

func NewCartManagerWithClock(
	shopID string,
	store *cart.GuestStore,
	api commerce.CartOperations,
	state *session.State,
	clock Clock,
	newID IDGenerator,
) *CartManager {
	if clock == nil {
		clock = systemClock{}
	}
	if newID == nil {
		newID = uuidGenerator
	}
	return &CartManager{
		shopID: strings.TrimSpace(shopID),
		store:  store,
		api:    api,
		state:  state,
		clock:  clock,
		newID:  newID,
		guest:  cart.NewGuestCart(shopID, nil),
	}
}

// SetUnauthorizedHandler installs the callback invoked when the commerce
// backend rejects the session credential. Wired after construction
// because the session usecase and the manager reference each other.
func (m *CartManager) SetUnauthorizedHandler(fn func()) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onUnauthorized = fn
}

// Restore loads the persisted guest cart into memory. Called once when
// the session is created; a missing or unreadable blob yields an empty
// cart and never an error.
func (m *CartManager) Restore(ctx context.Context) {
	if m == nil || m.store == nil {
		return
	}
	items := m.store.Load(ctx, m.shopID)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.guest = cart.NewGuestCart(m.shopID, items)
}

// ----------------------------
// Reads
// ----------------------------

// Items returns the current line items: the mirrored server cart when
// authenticated, the guest cart otherwise.
func (m *CartManager) Items() []cart.LineItem {
	if m == nil {
		return []cart.LineItem{}
	}

	authed, _, _ := m.state.Snapshot()

	m.mu.Lock()
	defer m.mu.Unlock()

	if authed {
		return toLineItems(m.serverCart)
	}
	return append([]cart.LineItem{}, m.guest.Items...)
}

// Total is the sum of unit price times quantity; unpriced lines count
// as zero.
func (m *CartManager) Total() float64 {
	return cart.Total(m.Items())
}

// Count is the total quantity across lines, not the number of lines.
func (m *CartManager) Count() int {
	return cart.Count(m.Items())
}

// Err returns the failure reason of the last operation, or "" when the
// last operation succeeded.
func (m *CartManager) Err() string {
	if m == nil {
		return ""
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// ----------------------------
// Mutations
// ----------------------------

// AddItem adds qty units of the variant. Authenticated carts delegate to
// the commerce backend and mirror the response; guest carts merge by
// variant locally and persist. The guest path cannot fail.
func (m *CartManager) AddItem(ctx context.Context, variantID string, qty int) bool {
	if m == nil {
		return false
	}
	if strings.TrimSpace(variantID) == "" || qty <= 0 {
		return m.failLocal("add item: invalid variant or quantity")
	}

	authed, token, _ := m.state.Snapshot()

	if authed {
		c, err := m.api.AddItem(ctx, token, variantID, qty)
		if err != nil {
			return m.fail("add item", err)
		}
		return m.applyServerCart(c)
	}

	m.mu.Lock()
	if err := m.guest.Add(variantID, qty, m.newID(), m.clock.Now()); err != nil {
		m.lastErr = err.Error()
		m.mu.Unlock()
		return false
	}
	items := append([]cart.LineItem{}, m.guest.Items...)
	m.lastErr = ""
	m.mu.Unlock()

	m.persistGuest(ctx, items)
	return true
}

// RemoveItem removes the line with the given id. On the guest path an
// unknown id is a no-op success; the authenticated path forwards the id
// and surfaces whatever the backend answers.
func (m *CartManager) RemoveItem(ctx context.Context, itemID string) bool {
	if m == nil {
		return false
	}
	if strings.TrimSpace(itemID) == "" {
		return m.failLocal("remove item: empty item id")
	}

	authed, token, _ := m.state.Snapshot()

	if authed {
		c, err := m.api.RemoveItem(ctx, token, itemID)
		if err != nil {
			return m.fail("remove item", err)
		}
		return m.applyServerCart(c)
	}

	m.mu.Lock()
	_ = m.guest.Remove(itemID, m.clock.Now())
	items := append([]cart.LineItem{}, m.guest.Items...)
	m.lastErr = ""
	m.mu.Unlock()

	m.persistGuest(ctx, items)
	return true
}

// UpdateQuantity sets the quantity of an existing line. qty <= 0 is a
// removal. The authenticated path has no set-quantity call upstream, so
// it is expressed as remove-then-add of the line's variant; a failure of
// the second call leaves the line removed.
func (m *CartManager) UpdateQuantity(ctx context.Context, itemID string, qty int) bool {
	if m == nil {
		return false
	}
	if qty <= 0 {
		return m.RemoveItem(ctx, itemID)
	}
	if strings.TrimSpace(itemID) == "" {
		return m.failLocal("update quantity: empty item id")
	}

	authed, token, _ := m.state.Snapshot()

	if !authed {
		m.mu.Lock()
		if err := m.guest.SetQty(itemID, qty, m.clock.Now()); err != nil {
			m.lastErr = "update quantity: line item not found"
			m.mu.Unlock()
			return false
		}
		items := append([]cart.LineItem{}, m.guest.Items...)
		m.lastErr = ""
		m.mu.Unlock()

		m.persistGuest(ctx, items)
		return true
	}

	m.mu.Lock()
	variantID := serverVariantOf(m.serverCart, itemID)
	m.mu.Unlock()
	if variantID == "" {
		return m.failLocal("update quantity: line item not found")
	}

	c, err := m.api.RemoveItem(ctx, token, itemID)
	if err != nil {
		return m.fail("update quantity (remove)", err)
	}
	m.applyServerCart(c)

	c, err = m.api.AddItem(ctx, token, variantID, qty)
	if err != nil {
		return m.fail("update quantity (add)", err)
	}
	return m.applyServerCart(c)
}

// Clear empties the cart. Idempotent on both paths.
func (m *CartManager) Clear(ctx context.Context) bool {
	if m == nil {
		return false
	}

	authed, token, _ := m.state.Snapshot()

	if authed {
		c, err := m.api.ClearCart(ctx, token)
		if err != nil {
			return m.fail("clear cart", err)
		}
		return m.applyServerCart(c)
	}

	m.mu.Lock()
	m.guest.Clear()
	m.lastErr = ""
	m.mu.Unlock()

	if err := m.store.Clear(ctx, m.shopID); err != nil {
		log.Printf("[cart_manager] guest clear persist failed shop=%q err=%v", m.shopID, err)
	}
	return true
}

// Refresh re-fetches the server cart. No-op for guests; a failure leaves
// the mirror untouched and records the reason.
func (m *CartManager) Refresh(ctx context.Context) {
	if m == nil {
		return
	}

	authed, token, _ := m.state.Snapshot()
	if !authed {
		return
	}

	c, err := m.api.GetCart(ctx, token)
	if err != nil {
		m.fail("refresh", err)
		return
	}
	m.applyServerCart(c)
}

// MergeGuestCart replays the guest lines into the server cart after a
// login, one add call per line in insertion order. A failed line is
// logged and skipped; the remaining lines are still replayed. The guest
// store is cleared afterwards regardless of per-line outcomes, so lines
// that failed to merge are dropped rather than resurrected on the next
// visit.
func (m *CartManager) MergeGuestCart(ctx context.Context) {
	if m == nil {
		return
	}

	authed, token, _ := m.state.Snapshot()
	if !authed {
		return
	}

	m.mu.Lock()
	items := append([]cart.LineItem{}, m.guest.Items...)
	m.mu.Unlock()

	if len(items) == 0 {
		return
	}

	log.Printf("[cart_manager] merging guest cart shop=%q lines=%d", m.shopID, len(items))

	for _, it := range items {
		c, err := m.api.AddItem(ctx, token, it.VariantID, it.Qty)
		if err != nil {
			log.Printf("[cart_manager] merge line failed shop=%q variant=%q qty=%d err=%v (continuing)",
				m.shopID, it.VariantID, it.Qty, err)
			continue
		}
		m.applyServerCart(c)
	}

	m.mu.Lock()
	m.guest.Clear()
	m.mu.Unlock()

	if err := m.store.Clear(ctx, m.shopID); err != nil {
		log.Printf("[cart_manager] merge: guest store clear failed shop=%q err=%v", m.shopID, err)
	}
}

// ForgetServerCart drops the mirrored server cart. Called on logout so
// a later login starts from a fresh fetch instead of a stale mirror.
func (m *CartManager) ForgetServerCart() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.serverCart = nil
}

// ----------------------------
// Helpers
// ----------------------------

func (m *CartManager) applyServerCart(c *commerce.Cart) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.serverCart = c
	m.lastErr = ""
	return true
}

func (m *CartManager) fail(op string, err error) bool {
	log.Printf("[cart_manager] %s failed shop=%q err=%v", op, m.shopID, err)

	m.mu.Lock()
	m.lastErr = err.Error()
	cb := m.onUnauthorized
	m.mu.Unlock()

	if errors.Is(err, commerce.ErrUnauthorized) && cb != nil {
		cb()
	}
	return false
}

func (m *CartManager) failLocal(msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastErr = msg
	return false
}

// persistGuest writes the guest snapshot through the store. A write
// failure keeps the in-memory cart authoritative for this session and
// is logged only.
func (m *CartManager) persistGuest(ctx context.Context, items []cart.LineItem) {
	if err := m.store.Save(ctx, m.shopID, items); err != nil {
		log.Printf("[cart_manager] guest save failed shop=%q err=%v (keeping in-memory state)", m.shopID, err)
	}
}

func serverVariantOf(c *commerce.Cart, itemID string) string {
	if c == nil {
		return ""
	}
	for _, it := range c.Items {
		if it.ID == itemID {
			return it.VariantID
		}
	}
	return ""
}

func toLineItems(c *commerce.Cart) []cart.LineItem {
	if c == nil {
		return []cart.LineItem{}
	}
	out := make([]cart.LineItem, 0, len(c.Items))
	for _, it := range c.Items {
		out = append(out, cart.LineItem{
			ID:        it.ID,
			VariantID: it.VariantID,
			Qty:       it.Amount,
			Name:      it.Name,
			ImageURL:  it.ImageURL,
			UnitPrice: it.Price,
			Currency:  it.Currency,
		})
	}
	return out
}
