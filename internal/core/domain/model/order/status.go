package order

import (
	"fmt"
	"slices"

	"kitchenpos/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Preparing ──> Ready ──> Delivered ──> Paid
//	   │            │           │           │
//	   └────────────┴─────┬─────┴───────────┘
//	                      v
//	                  Cancelled
//
// Ready -> Delivered also happens automatically once the delivery grace period elapses.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of every order taken by a waiter.
	Pending

	// Preparing means the kitchen has started on the order.
	Preparing

	// Ready means the kitchen has finished and the order waits to be served.
	Ready

	// Delivered means the order reached the table or the take-away counter.
	Delivered

	// Paid is a final state: the bill is settled.
	Paid

	// Cancelled is a final state reachable from every non-terminal status.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Preparing: "preparing",
		Ready:     "ready",
		Delivered: "delivered",
		Paid:      "paid",
		Cancelled: "cancelled",
	}
}

// getAllowedTransitions returns the transition table. Statuses absent from the
// map, or mapped to an empty list, have no outgoing transitions.
func getAllowedTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and Unknown statuses have no outgoing edges
	return map[Status][]Status{
		Pending:   {Preparing, Cancelled},
		Preparing: {Ready, Cancelled},
		Ready:     {Delivered, Cancelled},
		Delivered: {Paid, Cancelled},
	}
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Preparing, Ready, Delivered, Paid, Cancelled}
}

// ParseStatus converts the wire name of a status ("pending", "ready", ...) into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the known lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Paid || s == Cancelled
}

// CanTransitionTo reports whether the transition table allows s -> target.
func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(getAllowedTransitions()[s], target)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(data []byte) error {
	parsed, err := ParseStatus(string(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
