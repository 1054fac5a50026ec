// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"panastore/internal/adapters/out/kvstore"
	"panastore/internal/adapters/out/mail"
	"panastore/internal/adapters/out/panaapi"
	"panastore/internal/application/usecase"
	"panastore/internal/domain/storage"
	"panastore/internal/infra/config"
	"panastore/internal/infra/database"
	firestoreinfra "panastore/internal/infra/firestore"
	redisinfra "panastore/internal/infra/redis"
	"panastore/internal/infra/secrets"
)

// Container is the bundle main.go consumes: one guest-storage backend,
// one commerce client, one mailer, and the per-session registry wired
// on top of them.
type Container struct {
	Cfg      *config.Config
	Store    storage.Store
	API      *panaapi.Client
	Mailer   usecase.Mailer
	Sessions *SessionRegistry

	closers []func() error
}

// Close releases the backend resources in reverse construction order.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Build assembles the container from config: resolves the store API
// token, selects the guest-storage backend and wires the session
// registry.
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("di: config is nil")
	}

	c := &Container{Cfg: cfg}

	token, err := resolveStoreToken(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildGuestStore(ctx, cfg, c)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Store = store

	c.API = panaapi.NewClient(cfg.CommerceBaseURL, token)

	if cfg.SendgridAPIKey != "" {
		c.Mailer = mail.NewSendGridClient(cfg.SendgridAPIKey, "")
	} else {
		log.Printf("[di] SENDGRID_API_KEY not set; confirmation mail disabled")
	}

	c.Sessions = NewSessionRegistry(cfg.ShopID, c.Store, c.API, c.Mailer, cfg.MailFrom)

	return c, nil
}

func resolveStoreToken(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.StoreAPITokenSecret == "" {
		return cfg.StoreAPIToken, nil
	}

	provider, err := secrets.NewProvider(ctx, cfg.GCPProjectID)
	if err != nil {
		return "", fmt.Errorf("di: secret provider init failed: %w", err)
	}
	defer func() { _ = provider.Close() }()

	token, err := provider.Get(ctx, cfg.StoreAPITokenSecret)
	if err != nil {
		return "", fmt.Errorf("di: store api token secret %q: %w", cfg.StoreAPITokenSecret, err)
	}
	log.Printf("[di] store api token resolved from secret manager")
	return token, nil
}

func buildGuestStore(ctx context.Context, cfg *config.Config, c *Container) (storage.Store, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.GuestStoreBackend))

	switch backend {
	case "", "memory":
		log.Printf("[di] guest store backend: memory")
		return kvstore.NewMemory(), nil

	case "redis":
		client, err := redisinfra.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("di: redis init failed: %w", err)
		}
		c.closers = append(c.closers, client.Close)
		log.Printf("[di] guest store backend: redis")
		return kvstore.NewRedis(client), nil

	case "firestore":
		cw, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("di: firestore init failed: %w", err)
		}
		c.closers = append(c.closers, cw.Close)
		log.Printf("[di] guest store backend: firestore")
		return kvstore.NewFirestore(cw.Client), nil

	case "postgres":
		db, err := database.NewConnection(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		if err != nil {
			return nil, fmt.Errorf("di: postgres init failed: %w", err)
		}
		c.closers = append(c.closers, db.Close)

		pg := kvstore.NewPostgres(db.Client)
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("di: postgres schema init failed: %w", err)
		}
		log.Printf("[di] guest store backend: postgres")
		return pg, nil

	default:
		return nil, fmt.Errorf("di: unknown guest store backend %q", backend)
	}
}
