// Package feed fetches posts and their authors from the public demo API.
//
// The demo API returns raw JSON (no response envelope) and needs no
// authentication. Per-id lookups go through a small LRU cache so revisiting
// a post or author does not refetch it; Refresh bypasses the cache the way a
// pull-to-refresh gesture would.
//
// # Usage
//
//	svc := feed.NewService(apiclient.New(cfg.DemoAPIURL))
//
//	posts, err := svc.List(ctx)
//	post, err := svc.Get(ctx, 7)       // cache hit after List
//	author, err := svc.Author(ctx, post.UserID)
//
// Get returns ErrPostNotFound for unknown ids; every other failure is
// retryable as far as this package is concerned.
package feed
