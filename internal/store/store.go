package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// Storage keys for persisted client state. Plain serialized records,
// no schema versioning.
const (
	KeyUsername        = "username"
	KeyPublicKey       = "publicKey"
	KeyCachedFeed      = "cachedPosts"
	KeyCurrentAd       = "currentAd"
	KeyDraft           = "blogDraft"
	KeyPurchasedGuides = "purchasedGuides"
	keyUpvotedPrefix   = "upvoted:"
)

// Store is the persisted client-state boundary. Orchestrators receive
// it by injection so tests can substitute the in-memory backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
