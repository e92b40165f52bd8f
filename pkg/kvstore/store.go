package kvstore

import "context"

// Store defines the interface for durable key-value persistence.
// Implementations must make each operation atomic per key and safe for
// concurrent use.
type Store interface {
	// Get retrieves the value stored under key.
	// Returns ErrKeyNotFound when no value is stored.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the value stored under key.
	// Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
