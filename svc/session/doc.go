// Package session owns client authentication state: the bearer token, the
// canonical user profile fetched from the primary API, and the optional
// Google identity used as a parallel sign-in path.
//
// The Manager is the single source of truth. Every mutation writes durable
// storage before updating memory, so the two never diverge; restore-from-store
// runs exactly once per process and normalizes any failure into a clean
// logged-out state. Consumers observe state changes through a subscription
// rather than polling.
//
// # Lifecycle
//
//	manager := session.New(store, client)
//	manager.Restore(ctx) // once, at startup
//
//	sub := manager.Subscribe(ctx)
//	for state := range sub.Updates() {
//	    if !state.Loading {
//	        // route to the authenticated or login stack
//	    }
//	}
package session
