// internal/adapters/in/http/storefront/handler/auth_handler.go
package storefrontHandler

import (
	"errors"
	"net/http"
	"strings"

	"panastore/internal/application/usecase"
	"panastore/internal/domain/commerce"
)

// AuthHandler serves the session endpoints:
//
//	POST /auth/login      {email, password}
//	POST /auth/register   {email, password, firstName, lastName, phone}
//	POST /auth/logout
//	GET  /me
//
// Login and register answer with the profile plus the resulting cart
// view, because a successful login replays the guest cart server-side.
type AuthHandler struct {
	hub SessionHub
}

func NewAuthHandler(hub SessionHub) http.Handler {
	return &AuthHandler{hub: hub}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	svc, ok := resolveSession(w, r, h.hub)
	if !ok {
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	switch path {
	case "/auth/login":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req loginRequest
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid request body")
			return
		}
		customer, err := svc.Session.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "login failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"customer": customer,
			"cart":     svc.Query.CartView(),
		})

	case "/auth/register":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		var req commerce.RegisterRequest
		if err := readJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid request body")
			return
		}
		customer, err := svc.Session.Register(r.Context(), req)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "registration failed")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"customer": customer,
			"cart":     svc.Query.CartView(),
		})

	case "/auth/logout":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		svc.Session.Logout(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{
			"cart": svc.Query.CartView(),
		})

	case "/me":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		customer, err := svc.Session.Me(r.Context())
		if err != nil {
			if errors.Is(err, usecase.ErrNotAuthenticated) || errors.Is(err, commerce.ErrUnauthorized) {
				writeErr(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			writeErr(w, http.StatusBadGateway, "profile unavailable")
			return
		}
		writeJSON(w, http.StatusOK, customer)

	default:
		notFound(w)
	}
}
