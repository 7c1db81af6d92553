package order

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound is wrapped by the not-found error of the order repository.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidTransition is returned when a status change violates the lifecycle.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrOrderAlreadyCompleted is returned by Complete on an order that is already completed.
	ErrOrderAlreadyCompleted = errors.New("order already completed")
)

// InvalidTransitionError describes a rejected status change.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	if e.From.IsTerminal() {
		return fmt.Sprintf("%s: %s is terminal, cannot move to %s", ErrInvalidTransition, e.From, e.To)
	}
	return fmt.Sprintf("%s: %s cannot move to %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
