// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"panastore/internal/domain/commerce"
	"panastore/internal/domain/session"
)

var (
	ErrEmptyCart = errors.New("usecase: cart is empty")
)

// CheckoutUsecase turns the authenticated server cart into an order.
// Guests cannot check out; they log in first (which merges their cart).
// The confirmation mail is best-effort: a mail failure is logged and
// never fails the order.
type CheckoutUsecase struct {
	api      commerce.CartOperations
	state    *session.State
	cart     *CartManager
	mailer   Mailer
	mailFrom string

	onUnauthorized func()
}

func NewCheckoutUsecase(
	api commerce.CartOperations,
	state *session.State,
	cart *CartManager,
	mailer Mailer,
	mailFrom string,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		api:      api,
		state:    state,
		cart:     cart,
		mailer:   mailer,
		mailFrom: mailFrom,
	}
}

func (u *CheckoutUsecase) SetUnauthorizedHandler(fn func()) {
	if u == nil {
		return
	}
	u.onUnauthorized = fn
}

// Checkout places the order for the current server cart, sends the
// confirmation mail and refreshes the (now empty) cart mirror.
func (u *CheckoutUsecase) Checkout(ctx context.Context) (*commerce.Order, error) {
	if u == nil || u.api == nil {
		return nil, errors.New("usecase: checkout usecase is nil")
	}

	authed, token, customer := u.state.Snapshot()
	if !authed {
		return nil, ErrNotAuthenticated
	}
	if u.cart != nil && u.cart.Count() == 0 {
		return nil, ErrEmptyCart
	}

	total := 0.0
	if u.cart != nil {
		total = u.cart.Total()
	}

	order, err := u.api.Checkout(ctx, token)
	if err != nil {
		if errors.Is(err, commerce.ErrUnauthorized) && u.onUnauthorized != nil {
			u.onUnauthorized()
		}
		return nil, fmt.Errorf("checkout failed: %w", err)
	}

	log.Printf("[checkout] order placed id=%q", order.ID)
	u.sendConfirmation(ctx, customer, order, total)

	if u.cart != nil {
		u.cart.Refresh(ctx)
	}
	return order, nil
}

func (u *CheckoutUsecase) sendConfirmation(ctx context.Context, customer *commerce.Customer, order *commerce.Order, total float64) {
	if u.mailer == nil || customer == nil || customer.Email == "" {
		return
	}

	subject := fmt.Sprintf("Order confirmation %s", order.ID)
	body := fmt.Sprintf(
		"Hello %s,\n\nthank you for your order %s.\nOrder total: %.2f\n\nYour Pana Store",
		customer.FirstName, order.ID, total,
	)

	if err := u.mailer.Send(ctx, u.mailFrom, customer.Email, subject, body); err != nil {
		log.Printf("[checkout] confirmation mail failed order=%q to=%q err=%v", order.ID, customer.Email, err)
	}
}
