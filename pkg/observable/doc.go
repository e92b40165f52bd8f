// Package observable provides a minimal observable-value abstraction: a
// current value of any type plus a subscription mechanism that delivers every
// update to interested consumers.
//
// It exists to decouple state owners (for example the session manager) from
// state consumers (for example the navigation layer) without tying either to a
// rendering framework. Subscribers receive updates over a buffered channel;
// when a subscriber falls behind, the oldest pending update is dropped in
// favor of the newest so consumers always converge on the latest value.
//
// # Usage
//
//	state := observable.NewValue(0)
//
//	sub := state.Subscribe(ctx)
//	defer sub.Close()
//
//	state.Set(42)
//
//	for v := range sub.Updates() {
//	    fmt.Println(v) // 42
//	}
package observable
