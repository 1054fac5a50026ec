// internal/application/usecase/session_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"panastore/internal/domain/commerce"
	"panastore/internal/domain/session"
)

var (
	ErrNotAuthenticated = errors.New("usecase: not authenticated")
)

// SessionUsecase owns the authenticated/guest transitions of one
// session: login (with the guest-cart merge), registration, logout, and
// profile resolution. It installs itself as the cart manager's
// unauthorized handler so a rejected credential anywhere degrades the
// session back to guest.
type SessionUsecase struct {
	auth  commerce.AuthOperations
	state *session.State
	cart  *CartManager
}

func NewSessionUsecase(auth commerce.AuthOperations, state *session.State, cart *CartManager) *SessionUsecase {
	u := &SessionUsecase{auth: auth, state: state, cart: cart}
	if cart != nil {
		cart.SetUnauthorizedHandler(u.handleUnauthorized)
	}
	return u
}

// Login authenticates against the commerce backend, then replays the
// guest cart into the server cart and refreshes the mirror. Merge and
// refresh failures do not fail the login.
func (u *SessionUsecase) Login(ctx context.Context, email, password string) (*commerce.Customer, error) {
	if u == nil || u.auth == nil {
		return nil, errors.New("usecase: session usecase is nil")
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.New("usecase: email and password are required")
	}

	res, err := u.auth.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	customer := res.Customer
	if customer == nil {
		c, err := u.auth.GetMe(ctx, res.AccessToken)
		if err != nil {
			log.Printf("[session] profile fetch after login failed email=%q err=%v", email, err)
		} else {
			customer = c
		}
	}

	u.state.SetAuthenticated(res.AccessToken, customer)
	log.Printf("[session] login ok email=%q", email)

	if u.cart != nil {
		u.cart.MergeGuestCart(ctx)
		u.cart.Refresh(ctx)
	}
	return customer, nil
}

// Register creates the customer, then logs in with the same credentials.
func (u *SessionUsecase) Register(ctx context.Context, req commerce.RegisterRequest) (*commerce.Customer, error) {
	if u == nil || u.auth == nil {
		return nil, errors.New("usecase: session usecase is nil")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("usecase: email and password are required")
	}

	if err := u.auth.Register(ctx, req); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return u.Login(ctx, req.Email, req.Password)
}

// Logout degrades the session to guest. Local only: the credential is
// dropped, not revoked upstream.
func (u *SessionUsecase) Logout(ctx context.Context) {
	if u == nil {
		return
	}
	u.state.Reset()
	if u.cart != nil {
		u.cart.ForgetServerCart()
	}
	log.Printf("[session] logout")
}

// Me resolves the current profile from the commerce backend. A rejected
// credential degrades the session to guest before the error is returned.
func (u *SessionUsecase) Me(ctx context.Context) (*commerce.Customer, error) {
	if u == nil || u.auth == nil {
		return nil, errors.New("usecase: session usecase is nil")
	}

	authed, token, _ := u.state.Snapshot()
	if !authed {
		return nil, ErrNotAuthenticated
	}

	c, err := u.auth.GetMe(ctx, token)
	if err != nil {
		if errors.Is(err, commerce.ErrUnauthorized) {
			u.handleUnauthorized()
		}
		return nil, err
	}

	u.state.SetCustomer(c)
	return c, nil
}

func (u *SessionUsecase) handleUnauthorized() {
	log.Printf("[session] credential rejected by backend; degrading to guest")
	u.state.Reset()
	if u.cart != nil {
		u.cart.ForgetServerCart()
	}
}
