// Package kvstore provides durable key-value storage for small amounts of
// client state, such as authentication tokens and cached identity records.
//
// The package is storage-agnostic: any backend that satisfies the Store
// interface can be plugged in. Three implementations ship out of the box: an
// in-memory store for tests, a file-backed store for on-device persistence,
// and a Redis-backed store for shared environments.
//
// Every operation is atomic per key. There is no versioning and no migration;
// callers own the meaning of the values they write.
//
// # Usage
//
//	store, err := kvstore.NewFileStore("/data/rt07/state.json")
//	if err != nil {
//	    // Handle error
//	}
//
//	if err := store.Set(ctx, "token", "abc"); err != nil {
//	    // Handle error
//	}
//
//	token, err := store.Get(ctx, "token")
//	if errors.Is(err, kvstore.ErrKeyNotFound) {
//	    // No value stored
//	}
package kvstore
