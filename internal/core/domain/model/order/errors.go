package order

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrInvalidTransition is the sentinel wrapped by every InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid transition")
)

// InvalidTransitionError reports a status change forbidden by the transition table.
// It carries what a caller needs to render a precise message.
type InvalidTransitionError struct {
	OrderID string
	From    Status
	To      Status
}

func NewInvalidTransitionError(orderID string, from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{
		OrderID: orderID,
		From:    from,
		To:      to,
	}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: order %s cannot move from %s to %s", ErrInvalidTransition, e.OrderID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
