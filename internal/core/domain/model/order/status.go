package order

import (
	"fmt"
	"slices"

	"tokenorders/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	pending ──> confirmed ──> preparing ──> ready ──> fulfilled
//	   │            │             │           │
//	   └────────────┴─────────────┴───────────┴─────> cancelled
//
// Status values are persisted as their string form.
type Status string

const (
	Pending   Status = "pending"
	Confirmed Status = "confirmed"
	Preparing Status = "preparing"
	Ready     Status = "ready"
	Fulfilled Status = "fulfilled"
	Cancelled Status = "cancelled"
)

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, Preparing, Ready, Fulfilled, Cancelled}
}

func getForwardSuccessors() map[Status]Status {
	//nolint:exhaustive // terminal statuses have no forward successor
	return map[Status]Status{
		Pending:   Confirmed,
		Confirmed: Preparing,
		Preparing: Ready,
		Ready:     Fulfilled,
	}
}

// ParseStatus converts a persisted or user-supplied value into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate rejects values outside the six lifecycle states.
func (s Status) Validate() error {
	if !slices.Contains(AllStatuses(), s) {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no transition out of s is permitted.
func (s Status) IsTerminal() bool {
	return s == Fulfilled || s == Cancelled
}

// Successors returns the statuses s may move to, in lifecycle order.
func (s Status) Successors() []Status {
	if s.Validate() != nil || s.IsTerminal() {
		return nil
	}
	return []Status{getForwardSuccessors()[s], Cancelled}
}

// CanTransitionTo reports whether target is an allowed successor of s.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(s.Successors(), target)
}

// TransitionTo returns target when the move is allowed and an
// InvalidTransitionError otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransitionTo(target) {
		return "", NewInvalidTransitionError(s, target)
	}
	return target, nil
}
