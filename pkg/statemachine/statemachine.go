package statemachine

import (
	"context"
	"sync"
)

// State identifies a state in the machine.
type State string

// Event identifies an event that can trigger a transition.
type Event string

// Guard decides whether a transition may proceed based on runtime conditions.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Action runs side effects after a state change. An action error is returned
// from Fire but does not roll the state back.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Transition defines a state change triggered by an event.
type Transition struct {
	From   State
	To     State
	Event  Event
	Guard  Guard  // optional, must pass for the transition to proceed
	Action Action // optional, executed after the state change
}

// Machine is a thread-safe finite state machine.
// Transition lookup is O(1) on the from-state/event pair.
type Machine struct {
	mu          sync.RWMutex
	initial     State
	current     State
	transitions map[State]map[Event][]Transition
}

// New creates a machine starting in initial.
func New(initial State) *Machine {
	return &Machine{
		initial:     initial,
		current:     initial,
		transitions: make(map[State]map[Event][]Transition),
	}
}

// Current returns the machine's current state.
func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// AddTransition registers a transition. Multiple transitions may share a
// from/event pair; guards pick the winner at Fire time, in registration order.
func (m *Machine) AddTransition(from, to State, event Event, guard Guard, action Action) error {
	if from == "" || to == "" || event == "" {
		return ErrInvalidTransition
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.transitions[from]; !ok {
		m.transitions[from] = make(map[Event][]Transition)
	}

	m.transitions[from][event] = append(m.transitions[from][event], Transition{
		From:   from,
		To:     to,
		Event:  event,
		Guard:  guard,
		Action: action,
	})
	return nil
}

// Fire triggers event against the current state. The first transition whose
// guard passes (or that has no guard) wins. data is handed to guards and
// actions untouched.
func (m *Machine) Fire(ctx context.Context, event Event, data any) error {
	if event == "" {
		return ErrInvalidEvent
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	candidates, ok := m.transitions[m.current][event]
	if !ok || len(candidates) == 0 {
		return &ErrNoTransition{State: m.current, Event: event}
	}

	for _, tr := range candidates {
		if tr.Guard != nil && !tr.Guard(ctx, m.current, event, data) {
			continue
		}

		from := m.current
		m.current = tr.To

		if tr.Action != nil {
			return tr.Action(ctx, from, tr.To, event, data)
		}
		return nil
	}

	return &ErrRejected{State: m.current, Event: event}
}

// CanFire reports whether Fire would succeed for event without changing state.
func (m *Machine) CanFire(ctx context.Context, event Event, data any) bool {
	if event == "" {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, tr := range m.transitions[m.current][event] {
		if tr.Guard == nil || tr.Guard(ctx, m.current, event, data) {
			return true
		}
	}
	return false
}

// Reset returns the machine to its initial state.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}
