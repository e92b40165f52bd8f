// Package apiclient provides the single outbound request path for remote
// APIs: a configured base URL, JSON defaults, and interceptor hooks on both
// the request and response sides.
//
// Request interceptors run before every outgoing request and typically attach
// credentials, such as a bearer token read from durable storage. Response
// interceptors observe every response and may react to it; the
// EvictTokenOnUnauthorized interceptor removes the stored token when the
// server answers 401 and raises a callback so in-memory session state can be
// invalidated too.
//
// Responses with a 4xx/5xx status are returned alongside a typed *Error that
// carries the status code, so callers can distinguish not-found from generic
// failure without string matching.
//
// # Usage
//
//	client := apiclient.New(cfg.BaseURL,
//	    apiclient.WithRequestInterceptor(apiclient.BearerToken(store, "token")),
//	    apiclient.WithResponseInterceptor(apiclient.EvictTokenOnUnauthorized(store, "token", onUnauthorized)),
//	)
//
//	resp, err := client.Get(ctx, "/auth/me")
//	if err != nil {
//	    // Handle error
//	}
//	user, err := apiclient.DecodeEnvelope[User](resp)
package apiclient
