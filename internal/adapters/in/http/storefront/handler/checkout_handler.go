// internal/adapters/in/http/storefront/handler/checkout_handler.go
package storefrontHandler

import (
	"errors"
	"net/http"

	"panastore/internal/application/usecase"
	"panastore/internal/domain/commerce"
)

// CheckoutHandler serves POST /checkout for authenticated sessions.
type CheckoutHandler struct {
	hub SessionHub
}

func NewCheckoutHandler(hub SessionHub) http.Handler {
	return &CheckoutHandler{hub: hub}
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	svc, ok := resolveSession(w, r, h.hub)
	if !ok {
		return
	}

	order, err := svc.Checkout.Checkout(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotAuthenticated), errors.Is(err, commerce.ErrUnauthorized):
			writeErr(w, http.StatusUnauthorized, "not authenticated")
		case errors.Is(err, usecase.ErrEmptyCart):
			writeErr(w, http.StatusConflict, "cart is empty")
		default:
			writeErr(w, http.StatusBadGateway, "checkout failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"order": order,
		"cart":  svc.Query.CartView(),
	})
}
