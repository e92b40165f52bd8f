// Package cache provides a small thread-safe LRU cache used as the request
// layer's per-key response cache. Entries are keyed by the caller (typically a
// resource id) and the least recently used entry is evicted once the cache
// reaches capacity. There is no TTL and no custom invalidation logic; callers
// that need fresh data bypass or clear the cache explicitly.
package cache
