// Package navigation gates the screen stacks on authentication state.
//
// A Router owns a small state machine with three states: Initializing while
// the session restore is still running, then Unauthenticated (login stack) or
// Authenticated (main stack). The exit from Initializing is one-way and
// happens exactly once; afterwards the router moves between the two stacks as
// the session gains or loses authentication, including the case where a 401
// response invalidates the session without an explicit logout.
//
// # Usage
//
//	router := navigation.New(sessions)
//	go router.Run(ctx)
//
//	sub := router.Subscribe(ctx)
//	for stack := range sub.Updates() {
//		render(stack)
//	}
//
// Run consumes session state updates until the context is cancelled.
package navigation
