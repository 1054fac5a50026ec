// internal/platform/di/session_registry.go
package di

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	storefrontHandler "panastore/internal/adapters/in/http/storefront/handler"
	"panastore/internal/adapters/out/panaapi"
	"panastore/internal/application/query"
	"panastore/internal/application/usecase"
	"panastore/internal/domain/cart"
	"panastore/internal/domain/session"
	"panastore/internal/domain/storage"
	"panastore/internal/domain/wishlist"
)

// SessionRegistry creates and caches the per-session service bundle.
// One visitor session owns one cart manager, one wishlist manager and
// one auth state; all sessions share the storage backend (namespaced
// per session id) and the commerce client.
type SessionRegistry struct {
	shopID   string
	store    storage.Store
	api      *panaapi.Client
	mailer   usecase.Mailer
	mailFrom string

	mu       sync.Mutex
	sessions map[string]*storefrontHandler.Services
}

func NewSessionRegistry(
	shopID string,
	store storage.Store,
	api *panaapi.Client,
	mailer usecase.Mailer,
	mailFrom string,
) *SessionRegistry {
	return &SessionRegistry{
		shopID:   strings.TrimSpace(shopID),
		store:    store,
		api:      api,
		mailer:   mailer,
		mailFrom: mailFrom,
		sessions: map[string]*storefrontHandler.Services{},
	}
}

var _ storefrontHandler.SessionHub = (*SessionRegistry)(nil)

// Session returns the bundle for the session id, creating it on first
// sight. Creation restores the persisted guest cart and wishlist.
func (r *SessionRegistry) Session(ctx context.Context, sessionID string) (*storefrontHandler.Services, error) {
	if r == nil {
		return nil, errors.New("di: session registry is nil")
	}

	sid := strings.TrimSpace(sessionID)
	if sid == "" {
		return nil, errors.New("di: session id is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if svc, ok := r.sessions[sid]; ok {
		return svc, nil
	}

	svc := r.build(ctx, sid)
	r.sessions[sid] = svc
	log.Printf("[di] session created id=%q total=%d", sid, len(r.sessions))
	return svc, nil
}

func (r *SessionRegistry) build(ctx context.Context, sessionID string) *storefrontHandler.Services {
	scoped := storage.NewNamespaced(r.store, sessionID)
	state := session.NewState()

	cartManager := usecase.NewCartManager(r.shopID, cart.NewGuestStore(scoped), r.api, state)
	cartManager.Restore(ctx)

	wishlistManager := usecase.NewWishlistManager(r.shopID, wishlist.NewStore(scoped), cartManager)
	wishlistManager.Restore(ctx)

	sessionUC := usecase.NewSessionUsecase(r.api, state, cartManager)

	checkoutUC := usecase.NewCheckoutUsecase(r.api, state, cartManager, r.mailer, r.mailFrom)
	checkoutUC.SetUnauthorizedHandler(func() {
		state.Reset()
		cartManager.ForgetServerCart()
	})

	return &storefrontHandler.Services{
		Cart:     cartManager,
		Wishlist: wishlistManager,
		Session:  sessionUC,
		Checkout: checkoutUC,
		Query:    query.NewCartQueryService(cartManager, wishlistManager, state),
	}
}
