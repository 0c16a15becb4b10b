// Package store is the remote document store behind a room: JSON documents
// addressed by dot-separated keys, with push notifications on change.
// The hosted implementation is a NATS JetStream key/value bucket; an
// in-memory implementation backs offline rooms and tests.
package store

import "context"

// Op is one write inside a Batch.
type Op struct {
	Key    string
	Data   []byte
	Delete bool
}

// Event is one change notification delivered by a Watcher.
type Event struct {
	Key     string
	Data    []byte
	Deleted bool
}

// Watcher streams change events for a key pattern. The current matching
// documents are delivered first, then live updates until Stop.
type Watcher interface {
	Updates() <-chan Event
	Stop()
}

// Store is a realtime document store. Writes are last-write-wins; readers
// observe changes through Watch. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the document at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put creates or overwrites the document at key.
	Put(ctx context.Context, key string, data []byte) error
	// Create writes the document only if key is absent, else ErrExists.
	Create(ctx context.Context, key string, data []byte) error
	// Delete removes the document at key. Deleting an absent key is ErrNotFound.
	Delete(ctx context.Context, key string) error
	// Watch subscribes to every key matching pattern ("*" matches one
	// dot-separated token).
	Watch(ctx context.Context, pattern string) (Watcher, error)
	// Batch applies ops as a unit where the backend supports it; see the
	// implementation for its actual atomicity.
	Batch(ctx context.Context, ops []Op) error
	// Close releases the store's resources.
	Close() error
}
