package navigation

import (
	"context"

	"github.com/michaeljip/rt07/pkg/observable"
	"github.com/michaeljip/rt07/pkg/statemachine"
	"github.com/michaeljip/rt07/svc/session"
)

// Router states.
const (
	StateInitializing    statemachine.State = "initializing"
	StateUnauthenticated statemachine.State = "unauthenticated"
	StateAuthenticated   statemachine.State = "authenticated"
)

// Router events.
const (
	EventRestored statemachine.Event = "restored"
	EventLogin    statemachine.Event = "login"
	EventLogout   statemachine.Event = "logout"
)

// Stack identifies which screen stack the app should render.
type Stack string

const (
	// StackSpinner is shown while the session restore is in flight.
	StackSpinner Stack = "spinner"
	// StackLogin holds the unauthenticated screens.
	StackLogin Stack = "login"
	// StackMain holds the authenticated screens.
	StackMain Stack = "main"
)

// Router derives the active screen stack from session state.
type Router struct {
	sessions *session.Manager
	machine  *statemachine.Machine
	stack    *observable.Value[Stack]
}

// New builds a router gated on the given session manager. It starts in the
// Initializing state showing the spinner stack.
func New(sessions *session.Manager) *Router {
	m := statemachine.New(StateInitializing)

	authenticated := func(ctx context.Context, from statemachine.State, event statemachine.Event, data any) bool {
		st, ok := data.(session.State)
		return ok && st.IsAuthenticated()
	}

	// Registration order matters: the guarded authenticated branch is tried
	// first, the unguarded one is the fallback. There is no path back to
	// Initializing, so the restore branch runs at most once.
	_ = m.AddTransition(StateInitializing, StateAuthenticated, EventRestored, authenticated, nil)
	_ = m.AddTransition(StateInitializing, StateUnauthenticated, EventRestored, nil, nil)
	_ = m.AddTransition(StateUnauthenticated, StateAuthenticated, EventLogin, nil, nil)
	_ = m.AddTransition(StateAuthenticated, StateUnauthenticated, EventLogout, nil, nil)

	return &Router{
		sessions: sessions,
		machine:  m,
		stack:    observable.NewValue(StackSpinner),
	}
}

// Current returns the active stack.
func (r *Router) Current() Stack {
	return r.stack.Get()
}

// State returns the router's machine state.
func (r *Router) State() statemachine.State {
	return r.machine.Current()
}

// Subscribe delivers stack changes until ctx is cancelled or the router is
// closed.
func (r *Router) Subscribe(ctx context.Context) *observable.Subscription[Stack] {
	return r.stack.Subscribe(ctx)
}

// Close releases the stack observable and its subscriptions.
func (r *Router) Close() error {
	return r.stack.Close()
}

// Run consumes session state updates and drives the machine until ctx is
// cancelled. It applies the session's current state first so a restore that
// finished before Run started is not missed.
func (r *Router) Run(ctx context.Context) {
	sub := r.sessions.Subscribe(ctx)
	defer sub.Close()

	r.Apply(ctx, r.sessions.State())

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-sub.Updates():
			if !ok {
				return
			}
			r.Apply(ctx, st)
		}
	}
}

// Apply advances the machine for a single session state observation and
// publishes the resulting stack. Observations that do not warrant a
// transition, such as updates while the restore is still loading, leave the
// stack untouched.
func (r *Router) Apply(ctx context.Context, st session.State) {
	switch r.machine.Current() {
	case StateInitializing:
		if st.Loading {
			break
		}
		_ = r.machine.Fire(ctx, EventRestored, st)
	case StateUnauthenticated:
		if st.IsAuthenticated() {
			_ = r.machine.Fire(ctx, EventLogin, st)
		}
	case StateAuthenticated:
		// Covers both explicit logout and a 401 invalidating the session.
		if !st.IsAuthenticated() {
			_ = r.machine.Fire(ctx, EventLogout, st)
		}
	}

	if next := stackFor(r.machine.Current()); next != r.stack.Get() {
		r.stack.Set(next)
	}
}

func stackFor(s statemachine.State) Stack {
	switch s {
	case StateAuthenticated:
		return StackMain
	case StateUnauthenticated:
		return StackLogin
	default:
		return StackSpinner
	}
}
