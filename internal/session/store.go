// Package session provides the per-session key-value store backing the cart
// and the listing-page browse state. Values are opaque JSON blobs keyed by a
// session ID and a short name ("cart", "notes-page-state", "previous-path").
package session

import "context"

const (
	// KeyCart holds the serialized cart aggregate.
	KeyCart = "cart"
	// KeyPageState holds the serialized notes listing-page state.
	KeyPageState = "notes-page-state"
	// KeyPreviousPath holds the last visited route, used only to evaluate
	// the scroll-restoration guard.
	KeyPreviousPath = "previous-path"
)

type Store interface {
	// Get returns the stored value, or domain.ErrNotFound when absent.
	Get(ctx context.Context, sessionID, key string) ([]byte, error)
	Set(ctx context.Context, sessionID, key string, value []byte) error
	Delete(ctx context.Context, sessionID, key string) error
}
