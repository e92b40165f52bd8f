package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("statemachine: from, to, and event must be non-empty")
	ErrInvalidEvent      = errors.New("statemachine: event must be non-empty")
)

// ErrNoTransition indicates no transition exists for the current state and
// the fired event.
type ErrNoTransition struct {
	State State
	Event Event
}

func (e *ErrNoTransition) Error() string {
	return fmt.Sprintf("statemachine: no transition from state %q for event %q", e.State, e.Event)
}

// ErrRejected indicates every candidate transition was blocked by its guard.
type ErrRejected struct {
	State State
	Event Event
}

func (e *ErrRejected) Error() string {
	return fmt.Sprintf("statemachine: transition from state %q for event %q rejected by guards", e.State, e.Event)
}

func IsNoTransition(err error) bool {
	var e *ErrNoTransition
	return errors.As(err, &e)
}

func IsRejected(err error) bool {
	var e *ErrRejected
	return errors.As(err, &e)
}
