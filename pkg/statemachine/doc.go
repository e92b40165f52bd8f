// Package statemachine provides a small, thread-safe finite state machine.
//
// States and events are plain strings. Transitions may carry an optional
// guard, evaluated before the state change, and an optional action, executed
// after it. Multiple transitions can share a from/event pair so that guards
// select the destination at runtime.
//
// # Usage
//
//	m := statemachine.New("initializing")
//	m.AddTransition("initializing", "ready", "boot", nil, nil)
//
//	if err := m.Fire(ctx, "boot", nil); err != nil {
//	    // Handle rejected transition
//	}
//	fmt.Println(m.Current()) // "ready"
package statemachine
