// internal/platform/di/register.go
package di

import (
	"net/http"

	"panastore/internal/adapters/in/http/storefront"
	storefrontHandler "panastore/internal/adapters/in/http/storefront/handler"
)

// Register registers the storefront routes onto mux.
func Register(mux *http.ServeMux, c *Container) {
	if mux == nil || c == nil {
		return
	}

	storefront.Register(mux, storefront.Deps{
		Cart:     storefrontHandler.NewCartHandler(c.Sessions),
		Wishlist: storefrontHandler.NewWishlistHandler(c.Sessions),
		Auth:     storefrontHandler.NewAuthHandler(c.Sessions),
		Checkout: storefrontHandler.NewCheckoutHandler(c.Sessions),
	})
}
