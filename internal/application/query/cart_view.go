// internal/application/query/cart_view.go
package query

import (
	"strconv"
	"strings"

	"panastore/internal/application/usecase"
	"panastore/internal/domain/cart"
	"panastore/internal/domain/session"
)

// Read side of the cart: flattens manager state into the DTOs the HTTP
// layer returns, with display prices pre-formatted.

type LineView struct {
	ID        string   `json:"id"`
	VariantID string   `json:"variantId"`
	Qty       int      `json:"qty"`
	Name      string   `json:"name,omitempty"`
	ImageURL  string   `json:"imageUrl,omitempty"`
	UnitPrice *float64 `json:"unitPrice,omitempty"`
	Price     string   `json:"price,omitempty"`
	LineTotal string   `json:"lineTotal,omitempty"`
	Currency  string   `json:"currency,omitempty"`
}

type CartView struct {
	Items          []LineView `json:"items"`
	Count          int        `json:"count"`
	Total          float64    `json:"total"`
	TotalFormatted string     `json:"totalFormatted"`
	Currency       string     `json:"currency"`
	Authenticated  bool       `json:"authenticated"`
	Error          string     `json:"error,omitempty"`
}

type WishlistItemView struct {
	ID        string `json:"id"`
	VariantID string `json:"variantId"`
	Name      string `json:"name,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

type WishlistView struct {
	Items []WishlistItemView `json:"items"`
	Error string             `json:"error,omitempty"`
}

type CartQueryService struct {
	cart     *usecase.CartManager
	wishlist *usecase.WishlistManager
	state    *session.State
}

func NewCartQueryService(
	cartManager *usecase.CartManager,
	wishlistManager *usecase.WishlistManager,
	state *session.State,
) *CartQueryService {
	return &CartQueryService{cart: cartManager, wishlist: wishlistManager, state: state}
}

// CartView snapshots the cart for one response.
func (s *CartQueryService) CartView() CartView {
	if s == nil || s.cart == nil {
		return CartView{Items: []LineView{}, Currency: FallbackCurrency}
	}

	items := s.cart.Items()
	currency := MainCurrency(items)
	total := cart.Total(items)

	views := make([]LineView, 0, len(items))
	for _, it := range items {
		v := LineView{
			ID:        it.ID,
			VariantID: it.VariantID,
			Qty:       it.Qty,
			Name:      it.Name,
			ImageURL:  it.ImageURL,
			UnitPrice: it.UnitPrice,
			Currency:  it.Currency,
		}
		if it.UnitPrice != nil {
			cur := it.Currency
			if cur == "" {
				cur = currency
			}
			v.Price = FormatPrice(*it.UnitPrice, cur)
			v.LineTotal = FormatPrice(*it.UnitPrice*float64(it.Qty), cur)
		}
		views = append(views, v)
	}

	return CartView{
		Items:          views,
		Count:          cart.Count(items),
		Total:          total,
		TotalFormatted: FormatPrice(total, currency),
		Currency:       currency,
		Authenticated:  s.state.IsAuthenticated(),
		Error:          s.cart.Err(),
	}
}

// WishlistView snapshots the wishlist for one response.
func (s *CartQueryService) WishlistView() WishlistView {
	if s == nil || s.wishlist == nil {
		return WishlistView{Items: []WishlistItemView{}}
	}

	items := s.wishlist.Items()
	views := make([]WishlistItemView, 0, len(items))
	for _, it := range items {
		views = append(views, WishlistItemView{
			ID:        it.ID,
			VariantID: it.VariantID,
			Name:      it.Name,
			ImageURL:  it.ImageURL,
		})
	}
	return WishlistView{Items: views, Error: s.wishlist.Err()}
}

// ----------------------------
// Price formatting
// ----------------------------

const FallbackCurrency = "EUR"

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"JPY": "¥",
}

// MainCurrency picks the display currency: the currency of the first
// priced line, else the first non-empty line currency, else EUR.
func MainCurrency(items []cart.LineItem) string {
	for _, it := range items {
		if it.UnitPrice != nil && it.Currency != "" {
			return it.Currency
		}
	}
	for _, it := range items {
		if it.Currency != "" {
			return it.Currency
		}
	}
	return FallbackCurrency
}

// FormatPrice renders an amount in European notation: dot-grouped
// thousands, comma decimals, symbol suffix ("1.234,56 €"). Unknown
// currencies keep their code as suffix.
func FormatPrice(amount float64, currency string) string {
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if cur == "" {
		cur = FallbackCurrency
	}

	symbol, ok := currencySymbols[cur]
	if !ok {
		symbol = cur
	}
	return formatAmount(amount) + " " + symbol
}

func formatAmount(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strings.Split(strconv.FormatFloat(amount, 'f', 2, 64), ".")
	intPart, fracPart := s[0], s[1]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
