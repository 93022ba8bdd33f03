package commands

import (
	"errors"
	"fmt"
	"math"

	"kitchenpos/internal/core/domain/model/order"
	"kitchenpos/internal/pkg/errs"
	"kitchenpos/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents an order submitted by a waiter terminal.
//
// Example:
//
//	total := 270.0
//	cmd, err := NewCreateOrderCommand("7", items, nil, &total, "sin cebolla")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	table  order.Table
	items  []order.LineItem
	totals order.Totals
	notes  string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates a raw order payload.
// table may be a decoded JSON number or string. total is mandatory and must be finite;
// when subtotal is nil it is computed as the sum of unitPrice * qty.
func NewCreateOrderCommand(
	table any,
	items []order.LineItem,
	subtotal *float64,
	total *float64,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItems(items),
		cmd.setTotals(subtotal, total),
		cmd.setTable(table),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Table() order.Table {
	return c.table
}

// Items returns the submitted line items.
func (c CreateOrderCommand) Items() []order.LineItem {
	return append([]order.LineItem(nil), c.items...)
}

func (c CreateOrderCommand) Totals() order.Totals {
	return c.totals
}

func (c CreateOrderCommand) Notes() string {
	return c.notes
}

func (c *CreateOrderCommand) setTable(raw any) error {
	table, err := order.TableFromValue(raw)
	if err != nil {
		return err
	}
	c.table = table
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.LineItem) error {
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

	c.items = append([]order.LineItem(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setTotals(subtotal, total *float64) error {
	if total == nil {
		return errs.NewValueIsRequiredError("totals.total")
	}
	if math.IsNaN(*total) || math.IsInf(*total, 0) {
		return errs.NewValueIsInvalidErrorWithCause("totals.total", fmt.Errorf("%v is not a finite amount", *total))
	}

	c.totals.Total = *total
	if subtotal != nil {
		c.totals.Subtotal = *subtotal
		return nil
	}

	for _, item := range c.items {
		c.totals.Subtotal += item.LineTotal()
	}
	return nil
}
