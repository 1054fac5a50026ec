// internal/application/query/cart_view_test.go
package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panastore/internal/adapters/out/kvstore"
	"panastore/internal/application/usecase"
	"panastore/internal/domain/cart"
	"panastore/internal/domain/session"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "1.234,56 €", FormatPrice(1234.56, "EUR"))
	assert.Equal(t, "9,90 $", FormatPrice(9.9, "USD"))
	assert.Equal(t, "0,00 €", FormatPrice(0, ""))
	assert.Equal(t, "12,00 CHF", FormatPrice(12, "CHF"))
	assert.Equal(t, "-3,50 €", FormatPrice(-3.5, "eur"))
	assert.Equal(t, "1.234.567,89 €", FormatPrice(1234567.89, "EUR"))
}

func TestMainCurrency(t *testing.T) {
	p := 5.0

	assert.Equal(t, "EUR", MainCurrency(nil))
	assert.Equal(t, "EUR", MainCurrency([]cart.LineItem{{VariantID: "v1", Qty: 1}}))

	// priced line wins
	assert.Equal(t, "USD", MainCurrency([]cart.LineItem{
		{VariantID: "v1", Qty: 1, Currency: "GBP"},
		{VariantID: "v2", Qty: 1, UnitPrice: &p, Currency: "USD"},
	}))

	// otherwise the first line with a currency
	assert.Equal(t, "GBP", MainCurrency([]cart.LineItem{
		{VariantID: "v1", Qty: 1},
		{VariantID: "v2", Qty: 1, Currency: "GBP"},
	}))
}

func TestCartViewGuest(t *testing.T) {
	ctx := context.Background()
	state := session.NewState()
	mem := kvstore.NewMemory()
	m := usecase.NewCartManager("shop1", cart.NewGuestStore(mem), nil, state)
	svc := NewCartQueryService(m, nil, state)

	require.True(t, m.AddItem(ctx, "variant-1", 2))
	require.True(t, m.AddItem(ctx, "variant-2", 1))

	view := svc.CartView()
	assert.False(t, view.Authenticated)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, 3, view.Count)
	assert.Equal(t, "EUR", view.Currency)
	assert.Equal(t, "0,00 €", view.TotalFormatted)
	assert.Empty(t, view.Error)
}

func TestCartViewCarriesOperationError(t *testing.T) {
	state := session.NewState()
	m := usecase.NewCartManager("shop1", cart.NewGuestStore(kvstore.NewMemory()), nil, state)
	svc := NewCartQueryService(m, nil, state)

	assert.False(t, m.AddItem(context.Background(), "", 1))

	view := svc.CartView()
	assert.NotEmpty(t, view.Error)
}

func TestWishlistViewEmpty(t *testing.T) {
	svc := NewCartQueryService(nil, nil, session.NewState())

	view := svc.WishlistView()
	assert.NotNil(t, view.Items)
	assert.Empty(t, view.Items)
}
