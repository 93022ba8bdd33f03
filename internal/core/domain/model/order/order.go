package order

import (
	"errors"
	"fmt"
	"math"
	"time"

	"kitchenpos/internal/core/domain/model/kernel"
	"kitchenpos/internal/pkg/errs"
)

// Totals is the monetary summary of an order.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Total    float64 `json:"total"`
}

// Promo is the promotion snapshot frozen on an order when it is created.
// Source is empty when no promotion was active.
type Promo struct {
	Applied   bool
	Discount  float64
	Source    string
	Type      string
	Timestamp time.Time
}

// TransitionMeta carries optional data attached to a status change.
type TransitionMeta struct {
	CancelReason string
}

// Order represents one customer transaction from creation to payment or cancellation.
// It is the aggregate root of the lifecycle engine.
//
// Order follows these invariants:
//   - Must have a valid identifier, creation time and table
//   - Must have at least one valid line item
//   - Total equals the submitted total minus the promo discount, floored at zero
//   - Status only changes through ChangeStatus and never leaves Paid or Cancelled
//   - Promo fields never change after construction
type Order struct {
	id           kernel.UUID
	createdAt    time.Time
	status       Status
	table        Table
	items        []LineItem
	totals       Totals
	notes        string
	promo        Promo
	paidAt       *time.Time
	cancelledAt  *time.Time
	cancelReason string

	isConstructed bool
}

// NewOrder creates a Pending order. totals holds the amounts submitted by the waiter
// terminal; when promo carries a positive discount the stored total is reduced by it
// and floored at zero.
//
// Example:
//
//	table, _ := order.NewTable("7")
//	o, err := order.NewOrder(kernel.NewUUID(), now, table, items, order.Totals{Subtotal: 270, Total: 270}, "", order.Promo{})
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	createdAt time.Time,
	table Table,
	items []LineItem,
	totals Totals,
	notes string,
	promo Promo,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCreatedAt(createdAt),
		o.setTable(table),
		o.setItems(items),
		o.setPromo(promo),
		o.setTotals(totals),
	); err != nil {
		return nil, err
	}

	if o.promo.Discount > 0 {
		o.totals.Total = math.Max(0, o.totals.Total-o.promo.Discount)
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Table() Table {
	return o.table
}

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	return cloneItems(o.items)
}

func (o *Order) Totals() Totals {
	return o.totals
}

func (o *Order) Notes() string {
	return o.notes
}

func (o *Order) Promo() Promo {
	return o.promo
}

func (o *Order) PaidAt() *time.Time {
	return copyTime(o.paidAt)
}

func (o *Order) CancelledAt() *time.Time {
	return copyTime(o.cancelledAt)
}

func (o *Order) CancelReason() string {
	return o.cancelReason
}

// ChangeStatus moves the order to target.
//
// Returns:
//   - (false, nil) when target equals the current status; nothing is mutated
//   - (true, nil) on a successful transition; Paid stamps paidAt, Cancelled stamps
//     cancelledAt and records meta.CancelReason when present
//   - (false, error) when target is not a valid status or the transition table forbids
//     the move; the order is left untouched
func (o *Order) ChangeStatus(target Status, meta TransitionMeta, now time.Time) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}
	if target == o.status {
		return false, nil
	}
	if !o.status.CanTransitionTo(target) {
		return false, NewInvalidTransitionError(o.id.String(), o.status, target)
	}

	o.status = target
	switch target {
	case Paid:
		o.paidAt = &now
	case Cancelled:
		o.cancelledAt = &now
		if meta.CancelReason != "" {
			o.cancelReason = meta.CancelReason
		}
	default:
	}

	return true, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

func (o *Order) setTable(table Table) error {
	if err := table.Validate(); err != nil {
		return err
	}
	o.table = table
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	problems := make([]error, 0, len(items))
	for i, item := range items {
		problems = append(problems, item.Validate(i))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	o.items = cloneItems(items)
	return nil
}

func (o *Order) setTotals(totals Totals) error {
	if !isFinite(totals.Total) {
		return errs.NewValueIsInvalidErrorWithCause("totals.total", fmt.Errorf("%v is not a finite amount", totals.Total))
	}
	if !isFinite(totals.Subtotal) {
		return errs.NewValueIsInvalidErrorWithCause("totals.subtotal", fmt.Errorf("%v is not a finite amount", totals.Subtotal))
	}
	o.totals = totals
	return nil
}

func (o *Order) setPromo(promo Promo) error {
	if !isPrice(promo.Discount) {
		return errs.NewValueIsInvalidErrorWithCause("promoDiscount", fmt.Errorf("%v is not a finite non-negative amount", promo.Discount))
	}
	if promo.Applied != (promo.Discount > 0) {
		return errs.NewValueIsInvalidErrorWithCause("promoApplied", errors.New("must be set exactly when a discount exists"))
	}
	o.promo = promo
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
