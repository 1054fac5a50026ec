// internal/domain/storage/port.go
package storage

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned by Get when the key has no value.
	ErrNotFound = errors.New("storage: not found")
)

// Store is a persistence port shaped like browser storage: a small
// get/set/remove key-value API holding opaque JSON blobs, namespaced per
// shop and per logical key ("<shop>_cart", "<shop>_wishlist").
//
// Implementations: memory (tests/dev), redis, firestore, postgres.
type Store interface {
	// Get returns the blob for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the blob for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the entry entirely. Deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key string) error
}

// CartKey is the storage slot for a shop's guest cart.
func CartKey(shopID string) string {
	return strings.TrimSpace(shopID) + "_cart"
}

// WishlistKey is the storage slot for a shop's wishlist mirror.
func WishlistKey(shopID string) string {
	return strings.TrimSpace(shopID) + "_wishlist"
}

// Namespaced wraps a Store so every key is prefixed with a session scope.
// It is how per-visitor isolation (one browser, one local storage) is kept
// when several sessions share one backend.
type Namespaced struct {
	inner Store
	scope string
}

func NewNamespaced(inner Store, scope string) *Namespaced {
	return &Namespaced{inner: inner, scope: strings.TrimSpace(scope)}
}

func (n *Namespaced) key(key string) string {
	if n.scope == "" {
		return key
	}
	return n.scope + ":" + key
}

func (n *Namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	if n == nil || n.inner == nil {
		return nil, errors.New("storage: namespaced store is nil")
	}
	return n.inner.Get(ctx, n.key(key))
}

func (n *Namespaced) Set(ctx context.Context, key string, value []byte) error {
	if n == nil || n.inner == nil {
		return errors.New("storage: namespaced store is nil")
	}
	return n.inner.Set(ctx, n.key(key), value)
}

func (n *Namespaced) Delete(ctx context.Context, key string) error {
	if n == nil || n.inner == nil {
		return errors.New("storage: namespaced store is nil")
	}
	return n.inner.Delete(ctx, n.key(key))
}
