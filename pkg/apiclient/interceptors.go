package apiclient

import (
	"context"
	"net/http"

	"github.com/michaeljip/rt07/pkg/kvstore"
)

// BearerToken returns a request interceptor that reads a bearer token from
// the store under key and attaches it as an Authorization header. A missing
// key or a failing store read never fails the request; it simply proceeds
// without the header.
func BearerToken(store kvstore.Store, key string) RequestInterceptor {
	return func(ctx context.Context, req *http.Request) error {
		token, err := store.Get(ctx, key)
		if err != nil || token == "" {
			return nil
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return nil
	}
}

// EvictTokenOnUnauthorized returns a response interceptor that removes the
// stored token whenever the server answers 401, then invokes notify so the
// session layer can drop its in-memory state as well. The original response
// error still propagates to the caller unchanged.
func EvictTokenOnUnauthorized(store kvstore.Store, key string, notify func()) ResponseInterceptor {
	return func(ctx context.Context, resp *Response) error {
		if resp.StatusCode != http.StatusUnauthorized {
			return nil
		}

		_ = store.Remove(ctx, key)
		if notify != nil {
			notify()
		}
		return nil
	}
}
