package compliance

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition signals a state-machine precondition violation,
	// for example completing an inspection that was never started.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInvalidState signals an idempotency violation, for example
	// resolving an already-resolved violation.
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrNotFound signals that a referenced entity id does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrSequenceExhausted signals that identifier allocation could not
	// find a free slot after bounded retries.
	ErrSequenceExhausted = errors.New("sequence allocation exhausted")

	// ErrConstraintViolation signals a uniqueness rule break, for example
	// a second certificate for the same inspection.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrInvalidValue signals an unrecognized enum value on input.
	ErrInvalidValue = errors.New("invalid value")
)

// TransitionError carries enough context for a caller to explain a rejected
// transition: which entity, which state it was in, which state was requested.
type TransitionError struct {
	Entity string
	Ref    string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s %s cannot transition from %s to %s", e.Entity, e.Ref, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// NewTransitionError builds a TransitionError; errors.Is against
// ErrInvalidTransition matches it.
func NewTransitionError(entity, ref, from, to string) error {
	return &TransitionError{Entity: entity, Ref: ref, From: from, To: to}
}
