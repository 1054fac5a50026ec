// internal/domain/commerce/port.go
package commerce

import (
	"context"
	"errors"
)

var (
	// ErrUnauthorized marks a rejected bearer credential. Callers treat it
	// as a logout signal (credential desync).
	ErrUnauthorized = errors.New("commerce: unauthorized")
)

// CartOperations is the slice of the external commerce API the cart uses.
// All calls are asynchronous single-shot network operations with no
// built-in retry; the bearer token is passed explicitly per call.
type CartOperations interface {
	GetCart(ctx context.Context, token string) (*Cart, error)
	AddItem(ctx context.Context, token, variantID string, amount int) (*Cart, error)
	RemoveItem(ctx context.Context, token, itemID string) (*Cart, error)
	ClearCart(ctx context.Context, token string) (*Cart, error)
	Checkout(ctx context.Context, token string) (*Order, error)
}

// AuthOperations is the authentication slice. The storefront consumes only
// the resulting credential and profile, not the protocol.
type AuthOperations interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, req RegisterRequest) error
	GetMe(ctx context.Context, token string) (*Customer, error)
}
