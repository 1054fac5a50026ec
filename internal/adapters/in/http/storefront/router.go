// internal/adapters/in/http/storefront/router.go
package storefront

import (
	"log"
	"net/http"
)

// Deps is the buyer-facing handler set.
type Deps struct {
	Cart     http.Handler
	Wishlist http.Handler
	Auth     http.Handler
	Checkout http.Handler
}

// handleSafe registers pattern with h. A nil handler is logged and
// replaced with NotFoundHandler so a partial boot still serves.
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[storefront.router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers the storefront routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	handleSafe(mux, "/cart", deps.Cart, "Cart")
	handleSafe(mux, "/cart/", deps.Cart, "Cart")

	handleSafe(mux, "/wishlist", deps.Wishlist, "Wishlist")
	handleSafe(mux, "/wishlist/", deps.Wishlist, "Wishlist")

	handleSafe(mux, "/auth/", deps.Auth, "Auth")
	handleSafe(mux, "/me", deps.Auth, "Auth(me)")

	handleSafe(mux, "/checkout", deps.Checkout, "Checkout")
}
