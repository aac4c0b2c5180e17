package session

import "context"

// Keys the checkout writes under a session. The values are JSON documents;
// their layout is owned by the services writing them, not by the store.
const (
	KeyCart         = "cart"
	KeyPendingOrder = "pendingOrder"
)

// Store is the per-session key-value store the storefront treats the way a
// browser treats localStorage. Get returns domain.ErrNotFound for absent keys.
type Store interface {
	Get(ctx context.Context, sessionID, key string) ([]byte, error)
	Set(ctx context.Context, sessionID, key string, value []byte) error
	Delete(ctx context.Context, sessionID, key string) error
}
