// internal/application/usecase/checkout_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panastore/internal/domain/commerce"
	"panastore/internal/domain/session"
)

func TestCheckoutRequiresAuthentication(t *testing.T) {
	api := newFakeCommerceAPI()
	state := session.NewState()
	m, _ := newTestManager(api, state)
	u := NewCheckoutUsecase(api, state, m, nil, "shop@example.com")

	_, err := u.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, api.checkoutCalls)
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	api := newFakeCommerceAPI()
	state := authedState()
	m, _ := newTestManager(api, state)
	u := NewCheckoutUsecase(api, state, m, nil, "shop@example.com")

	_, err := u.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, api.checkoutCalls)
}

func TestCheckoutPlacesOrderAndSendsMail(t *testing.T) {
	ctx := context.Background()
	api := newFakeCommerceAPI()
	api.prices["variant-1"] = 10.00

	state := session.NewState()
	state.SetAuthenticated(testToken, &commerce.Customer{ID: "cust-1", Email: "jo@example.com", FirstName: "Jo"})
	m, _ := newTestManager(api, state)
	mailer := &fakeMailer{}
	u := NewCheckoutUsecase(api, state, m, mailer, "shop@example.com")

	require.True(t, m.AddItem(ctx, "variant-1", 2))

	order, err := u.Checkout(ctx)
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, 1, api.checkoutCalls)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "shop@example.com", mailer.sent[0].From)
	assert.Equal(t, "jo@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Subject, "order-1")
	assert.Contains(t, mailer.sent[0].Body, "20.00")

	// the mirror was refreshed to the emptied server cart
	assert.Empty(t, m.Items())
}

func TestCheckoutMailFailureDoesNotFailOrder(t *testing.T) {
	ctx := context.Background()
	api := newFakeCommerceAPI()

	state := session.NewState()
	state.SetAuthenticated(testToken, &commerce.Customer{ID: "cust-1", Email: "jo@example.com"})
	m, _ := newTestManager(api, state)
	mailer := &fakeMailer{sendErr: errors.New("sendgrid down")}
	u := NewCheckoutUsecase(api, state, m, mailer, "shop@example.com")

	require.True(t, m.AddItem(ctx, "variant-1", 1))

	order, err := u.Checkout(ctx)
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
}

func TestCheckoutBackendFailure(t *testing.T) {
	ctx := context.Background()
	api := newFakeCommerceAPI()
	api.checkoutErr = errors.New("payment declined")

	state := authedState()
	m, _ := newTestManager(api, state)
	u := NewCheckoutUsecase(api, state, m, nil, "shop@example.com")

	require.True(t, m.AddItem(ctx, "variant-1", 1))

	_, err := u.Checkout(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment declined")
	// the cart is untouched
	assert.Len(t, m.Items(), 1)
}
