// internal/adapters/out/kvstore/postgres.go
package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"panastore/internal/domain/storage"
)

// Postgres implements storage.Store on one table of JSON blobs.
type Postgres struct {
	DB *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

// EnsureSchema creates the backing table when it does not exist yet.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if p == nil || p.DB == nil {
		return errors.New("kvstore: postgres db is nil")
	}

	_, err := p.DB.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS guest_storage (
    key        TEXT PRIMARY KEY,
    value      JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	return err
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	if p == nil || p.DB == nil {
		return nil, errors.New("kvstore: postgres db is nil")
	}

	k := strings.TrimSpace(key)
	if k == "" {
		return nil, errors.New("kvstore: key is empty")
	}

	var value []byte
	err := p.DB.QueryRowContext(ctx,
		`SELECT value FROM guest_storage WHERE key = $1`, k,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	if p == nil || p.DB == nil {
		return errors.New("kvstore: postgres db is nil")
	}

	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("kvstore: key is empty")
	}

	_, err := p.DB.ExecContext(ctx, `
INSERT INTO guest_storage (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		k, value,
	)
	return err
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if p == nil || p.DB == nil {
		return errors.New("kvstore: postgres db is nil")
	}

	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("kvstore: key is empty")
	}

	_, err := p.DB.ExecContext(ctx, `DELETE FROM guest_storage WHERE key = $1`, k)
	return err
}

var _ storage.Store = (*Postgres)(nil)
