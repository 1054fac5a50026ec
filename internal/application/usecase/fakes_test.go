// internal/application/usecase/fakes_test.go
package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"panastore/internal/domain/commerce"
)

const testToken = "tok-1"

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func testClock() fixedClock {
	return fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func seqIDs(prefix string) IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

type addCall struct {
	VariantID string
	Qty       int
}

// fakeCommerceAPI is an in-memory rendition of the commerce backend:
// it keeps a server cart, merges added variants and rejects any token
// other than testToken.
type fakeCommerceAPI struct {
	mu sync.Mutex

	items  []commerce.CartItem
	nextID int
	prices map[string]float64

	addCalls      []addCall
	removeCalls   []string
	clearCalls    int
	getCalls      int
	checkoutCalls int

	addErr      map[string]error
	getErr      error
	removeErr   error
	checkoutErr error
}

func newFakeCommerceAPI() *fakeCommerceAPI {
	return &fakeCommerceAPI{
		addErr: map[string]error{},
		prices: map[string]float64{},
	}
}

func (f *fakeCommerceAPI) snapshotLocked() *commerce.Cart {
	items := make([]commerce.CartItem, len(f.items))
	copy(items, f.items)
	return &commerce.Cart{ID: "cart-1", Items: items}
}

func (f *fakeCommerceAPI) checkToken(token string) error {
	if token != testToken {
		return commerce.ErrUnauthorized
	}
	return nil
}

func (f *fakeCommerceAPI) GetCart(_ context.Context, token string) (*commerce.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getCalls++
	if err := f.checkToken(token); err != nil {
		return nil, err
	}
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.snapshotLocked(), nil
}

func (f *fakeCommerceAPI) AddItem(_ context.Context, token, variantID string, amount int) (*commerce.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.addCalls = append(f.addCalls, addCall{VariantID: variantID, Qty: amount})
	if err := f.checkToken(token); err != nil {
		return nil, err
	}
	if err := f.addErr[variantID]; err != nil {
		return nil, err
	}

	for i := range f.items {
		if f.items[i].VariantID == variantID {
			f.items[i].Amount += amount
			return f.snapshotLocked(), nil
		}
	}

	f.nextID++
	item := commerce.CartItem{
		ID:        fmt.Sprintf("srv-%d", f.nextID),
		VariantID: variantID,
		Amount:    amount,
	}
	if p, ok := f.prices[variantID]; ok {
		price := p
		item.Price = &price
		item.Currency = "EUR"
	}
	f.items = append(f.items, item)
	return f.snapshotLocked(), nil
}

func (f *fakeCommerceAPI) RemoveItem(_ context.Context, token, itemID string) (*commerce.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.removeCalls = append(f.removeCalls, itemID)
	if err := f.checkToken(token); err != nil {
		return nil, err
	}
	if f.removeErr != nil {
		return nil, f.removeErr
	}

	out := f.items[:0]
	for _, it := range f.items {
		if it.ID != itemID {
			out = append(out, it)
		}
	}
	f.items = out
	return f.snapshotLocked(), nil
}

func (f *fakeCommerceAPI) ClearCart(_ context.Context, token string) (*commerce.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.clearCalls++
	if err := f.checkToken(token); err != nil {
		return nil, err
	}
	f.items = nil
	return f.snapshotLocked(), nil
}

func (f *fakeCommerceAPI) Checkout(_ context.Context, token string) (*commerce.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.checkoutCalls++
	if err := f.checkToken(token); err != nil {
		return nil, err
	}
	if f.checkoutErr != nil {
		return nil, f.checkoutErr
	}
	f.items = nil
	return &commerce.Order{ID: "order-1"}, nil
}

var _ commerce.CartOperations = (*fakeCommerceAPI)(nil)

// fakeAuthAPI hands out testToken for one known credential pair.
type fakeAuthAPI struct {
	customer    *commerce.Customer
	loginErr    error
	registerErr error
	meErr       error
	registered  []commerce.RegisterRequest
	loginCalls  int
}

func newFakeAuthAPI() *fakeAuthAPI {
	return &fakeAuthAPI{
		customer: &commerce.Customer{ID: "cust-1", Email: "jo@example.com", FirstName: "Jo"},
	}
}

func (f *fakeAuthAPI) Login(_ context.Context, email, password string) (*commerce.LoginResult, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &commerce.LoginResult{AccessToken: testToken, Customer: f.customer}, nil
}

func (f *fakeAuthAPI) Register(_ context.Context, req commerce.RegisterRequest) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registered = append(f.registered, req)
	return nil
}

func (f *fakeAuthAPI) GetMe(_ context.Context, token string) (*commerce.Customer, error) {
	if token != testToken {
		return nil, commerce.ErrUnauthorized
	}
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.customer, nil
}

var _ commerce.AuthOperations = (*fakeAuthAPI)(nil)

type sentMail struct {
	From, To, Subject, Body string
}

type fakeMailer struct {
	sent    []sentMail
	sendErr error
}

func (f *fakeMailer) Send(_ context.Context, from, to, subject, body string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{From: from, To: to, Subject: subject, Body: body})
	return nil
}
