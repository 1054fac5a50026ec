// internal/adapters/in/http/storefront/handler/cart_handler.go
package storefrontHandler

import (
	"net/http"
	"strings"
)

// CartHandler serves the cart endpoints:
//
//	GET    /cart               current cart view
//	DELETE /cart               clear cart
//	POST   /cart/items         add line {variantId, qty}
//	PUT    /cart/items/{id}    set quantity {qty}
//	DELETE /cart/items/{id}    remove line
//	POST   /cart/refresh       re-fetch server cart (authenticated only)
//
// Mutations answer with the resulting cart view; a failed mutation keeps
// status 200 OK with the failure reason in the view's error field, the
// same contract the cart manager exposes.
type CartHandler struct {
	hub SessionHub
}

func NewCartHandler(hub SessionHub) http.Handler {
	return &CartHandler{hub: hub}
}

type addItemRequest struct {
	VariantID string `json:"variantId"`
	Qty       int    `json:"qty"`
}

type setQtyRequest struct {
	Qty int `json:"qty"`
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	svc, ok := resolveSession(w, r, h.hub)
	if !ok {
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	if path == "" {
		path = "/"
	}

	switch {
	case path == "/cart":
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, svc.Query.CartView())
		case http.MethodDelete:
			svc.Cart.Clear(r.Context())
			writeJSON(w, http.StatusOK, svc.Query.CartView())
		default:
			methodNotAllowed(w)
		}

	case path == "/cart/refresh":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		svc.Cart.Refresh(r.Context())
		writeJSON(w, http.StatusOK, svc.Query.CartView())

	case path == "/cart/items":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req addItemRequest
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.VariantID) == "" {
			writeErr(w, http.StatusBadRequest, "variantId is required")
			return
		}
		if req.Qty <= 0 {
			req.Qty = 1
		}
		svc.Cart.AddItem(r.Context(), req.VariantID, req.Qty)
		writeJSON(w, http.StatusOK, svc.Query.CartView())

	case strings.HasPrefix(path, "/cart/items/"):
		itemID := pathTail(path, "/cart/items/")
		if itemID == "" {
			notFound(w)
			return
		}
		switch r.Method {
		case http.MethodPut:
			var req setQtyRequest
			if err := readJSON(r, &req); err != nil {
				writeErr(w, http.StatusBadRequest, "invalid request body")
				return
			}
			svc.Cart.UpdateQuantity(r.Context(), itemID, req.Qty)
			writeJSON(w, http.StatusOK, svc.Query.CartView())
		case http.MethodDelete:
			svc.Cart.RemoveItem(r.Context(), itemID)
			writeJSON(w, http.StatusOK, svc.Query.CartView())
		default:
			methodNotAllowed(w)
		}

	default:
		notFound(w)
	}
}
