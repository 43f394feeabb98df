package order

import (
	"errors"
	"fmt"
)

var (
	// ErrNoOpTransition classifies requests where the requested status equals
	// the current one. Surfaced to callers as a client error, never retried.
	ErrNoOpTransition = errors.New("no-op transition")

	// ErrUnknownStatus classifies a current status with no entry in the
	// transition graph. This is a data-corruption guard: every status of the
	// closed enumeration has an entry, including terminal ones.
	ErrUnknownStatus = errors.New("unknown current status")

	// ErrInvalidTransition classifies requests rejected by the transition
	// policy (graph membership plus cancellation override).
	ErrInvalidTransition = errors.New("invalid status transition")
)

// InvalidTransitionError carries the specific from/to pair of a rejected
// transition. The message is surfaced verbatim to callers.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the pair.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change status from '%s' to '%s'", e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ValidateTransition decides whether an item may move from current to
// requested. The policy has two tiers and must be applied in this order:
//
//  1. A request for the current status is a no-op and is rejected.
//  2. A current status outside the transition graph is corrupt data.
//  3. Cancellation is a cross-cutting escape hatch: it is accepted from any
//     non-terminal status, bypassing the graph.
//  4. Otherwise the request is accepted iff requested is a direct successor
//     of current in the declared graph.
//
// Terminal statuses have empty successor sets, so no transition out of them
// is ever accepted, including to Cancelled (tier 3 excludes them explicitly).
func ValidateTransition(current, requested Status) error {
	if requested == current {
		return fmt.Errorf("%w: status is already '%s'", ErrNoOpTransition, current)
	}

	if _, ok := transitionGraph()[current]; !ok {
		return fmt.Errorf("%w: '%s'", ErrUnknownStatus, current)
	}

	if requested == Cancelled && !current.IsTerminal() {
		return nil
	}

	if !current.canReach(requested) {
		return NewInvalidTransitionError(current, requested)
	}

	return nil
}
