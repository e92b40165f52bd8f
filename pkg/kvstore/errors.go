package kvstore

import "errors"

var (
	// ErrKeyNotFound indicates no value is stored under the requested key.
	ErrKeyNotFound = errors.New("kvstore: key not found")

	// ErrEmptyKey indicates an operation was attempted with an empty key.
	ErrEmptyKey = errors.New("kvstore: key cannot be empty")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("kvstore: store is closed")
)
