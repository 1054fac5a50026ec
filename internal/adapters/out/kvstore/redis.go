// internal/adapters/out/kvstore/redis.go
package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"panastore/internal/domain/storage"
)

// DefaultGuestTTL is the inactivity window after which an abandoned guest
// slot expires server-side. Refreshed on every write.
const DefaultGuestTTL = 7 * 24 * time.Hour

// Redis implements storage.Store on a Redis instance.
type Redis struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{Client: client, TTL: DefaultGuestTTL}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("kvstore: redis client is nil")
	}

	v, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if r == nil || r.Client == nil {
		return errors.New("kvstore: redis client is nil")
	}

	ttl := r.TTL
	if ttl <= 0 {
		ttl = DefaultGuestTTL
	}
	return r.Client.Set(ctx, key, value, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if r == nil || r.Client == nil {
		return errors.New("kvstore: redis client is nil")
	}
	return r.Client.Del(ctx, key).Err()
}

var _ storage.Store = (*Redis)(nil)
