// internal/adapters/in/http/storefront/handler/helpers.go
package storefrontHandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"panastore/internal/application/query"
	"panastore/internal/application/usecase"
)

// Services is the per-session service bundle the handlers operate on.
type Services struct {
	Cart     *usecase.CartManager
	Wishlist *usecase.WishlistManager
	Session  *usecase.SessionUsecase
	Checkout *usecase.CheckoutUsecase
	Query    *query.CartQueryService
}

// SessionHub hands out (and lazily creates) the bundle for a session id.
type SessionHub interface {
	Session(ctx context.Context, sessionID string) (*Services, error)
}

// sessionHeader carries the visitor's session id. A request without one
// gets a fresh id; the resolved id is always echoed back so the client
// can pin it.
const sessionHeader = "X-Session-Id"

func resolveSession(w http.ResponseWriter, r *http.Request, hub SessionHub) (*Services, bool) {
	if hub == nil {
		writeErr(w, http.StatusInternalServerError, "session hub is not configured")
		return nil, false
	}

	sid := strings.TrimSpace(r.Header.Get(sessionHeader))
	if sid == "" {
		sid = uuid.NewString()
	}
	w.Header().Set(sessionHeader, sid)

	svc, err := hub.Session(r.Context(), sid)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "session unavailable")
		return nil, false
	}
	return svc, true
}

// ============================================================
// HTTP helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": strings.TrimSpace(msg),
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
}

func readJSON(r *http.Request, dst any) error {
	if dst == nil {
		return errors.New("dst is nil")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)) // 1MB
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// pathTail returns what follows prefix in the path, "" when the path is
// exactly the prefix (modulo trailing slash).
func pathTail(path, prefix string) string {
	tail := strings.TrimPrefix(path, prefix)
	return strings.Trim(tail, "/")
}
