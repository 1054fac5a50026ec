// internal/adapters/in/http/storefront/handler/wishlist_handler.go
package storefrontHandler

import (
	"net/http"
	"strings"
)

// WishlistHandler serves the saved-for-later endpoints:
//
//	GET    /wishlist                           current list
//	POST   /wishlist/items                     add {variantId, name, imageUrl}
//	DELETE /wishlist/items/{id}                remove entry
//	POST   /wishlist/items/{id}/move-to-cart   add to cart, then remove here
type WishlistHandler struct {
	hub SessionHub
}

func NewWishlistHandler(hub SessionHub) http.Handler {
	return &WishlistHandler{hub: hub}
}

type addWishlistRequest struct {
	VariantID string `json:"variantId"`
	Name      string `json:"name"`
	ImageURL  string `json:"imageUrl"`
}

func (h *WishlistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	svc, ok := resolveSession(w, r, h.hub)
	if !ok {
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	switch {
	case path == "/wishlist":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		writeJSON(w, http.StatusOK, svc.Query.WishlistView())

	case path == "/wishlist/items":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req addWishlistRequest
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.VariantID) == "" {
			writeErr(w, http.StatusBadRequest, "variantId is required")
			return
		}
		svc.Wishlist.Add(r.Context(), req.VariantID, req.Name, req.ImageURL)
		writeJSON(w, http.StatusOK, svc.Query.WishlistView())

	case strings.HasSuffix(path, "/move-to-cart") && strings.HasPrefix(path, "/wishlist/items/"):
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		itemID := pathTail(strings.TrimSuffix(path, "/move-to-cart"), "/wishlist/items/")
		if itemID == "" {
			notFound(w)
			return
		}
		svc.Wishlist.MoveToCart(r.Context(), itemID)
		writeJSON(w, http.StatusOK, map[string]any{
			"wishlist": svc.Query.WishlistView(),
			"cart":     svc.Query.CartView(),
		})

	case strings.HasPrefix(path, "/wishlist/items/"):
		if r.Method != http.MethodDelete {
			methodNotAllowed(w)
			return
		}
		itemID := pathTail(path, "/wishlist/items/")
		if itemID == "" {
			notFound(w)
			return
		}
		svc.Wishlist.Remove(r.Context(), itemID)
		writeJSON(w, http.StatusOK, svc.Query.WishlistView())

	default:
		notFound(w)
	}
}
