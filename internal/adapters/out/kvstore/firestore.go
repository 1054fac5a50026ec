// internal/adapters/out/kvstore/firestore.go
package kvstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"panastore/internal/domain/storage"
)

// Firestore implements storage.Store on a Firestore collection.
//
// Collection design:
// - collection: guest_storage
// - docId: the storage key (session-scoped, e.g. "sess123:shop_cart")
// - fields: value (string blob), updatedAt, expiresAt
//
// TTL:
// - Configure Firestore TTL on "expiresAt"; refreshed on each write.
type Firestore struct {
	Client *firestore.Client
	Col    string
	TTL    time.Duration
}

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{Client: client, Col: "guest_storage", TTL: DefaultGuestTTL}
}

type storageDoc struct {
	Value     string    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updatedAt"`
	ExpiresAt time.Time `firestore:"expiresAt"`
}

func (f *Firestore) col() *firestore.CollectionRef {
	name := strings.TrimSpace(f.Col)
	if name == "" {
		name = "guest_storage"
	}
	return f.Client.Collection(name)
}

func (f *Firestore) Get(ctx context.Context, key string) ([]byte, error) {
	if f == nil || f.Client == nil {
		return nil, errors.New("kvstore: firestore client is nil")
	}

	k := strings.TrimSpace(key)
	if k == "" {
		return nil, errors.New("kvstore: key is empty")
	}

	snap, err := f.col().Doc(k).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var doc storageDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	return []byte(doc.Value), nil
}

func (f *Firestore) Set(ctx context.Context, key string, value []byte) error {
	if f == nil || f.Client == nil {
		return errors.New("kvstore: firestore client is nil")
	}

	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("kvstore: key is empty")
	}

	ttl := f.TTL
	if ttl <= 0 {
		ttl = DefaultGuestTTL
	}
	now := time.Now().UTC()

	// Overwrite full doc (simple & predictable).
	_, err := f.col().Doc(k).Set(ctx, storageDoc{
		Value:     string(value),
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	})
	return err
}

func (f *Firestore) Delete(ctx context.Context, key string) error {
	if f == nil || f.Client == nil {
		return errors.New("kvstore: firestore client is nil")
	}

	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("kvstore: key is empty")
	}

	_, err := f.col().Doc(k).Delete(ctx)
	return err
}

var _ storage.Store = (*Firestore)(nil)
