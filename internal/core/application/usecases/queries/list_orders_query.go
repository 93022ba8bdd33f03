// Package queries contains read-only operations over orders, the promotion and the menu.
// Queries never open a unit of work and never change state.
package queries

import (
	"errors"

	"kitchenpos/internal/core/domain/model/order"
	"kitchenpos/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves orders, optionally restricted to one status.
//
// Example:
//
//	query, err := NewListOrdersQuery("ready")
//	if err != nil {
//	    return err // unknown status
//	}
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	status order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery builds the query. An empty status lists every order; any other
// value must be a known status name.
func NewListOrdersQuery(status string) (ListOrdersQuery, error) {
	query := ListOrdersQuery{guard: guard.NewConstructorGuard()}
	if status == "" {
		return query, nil
	}

	parsed, err := order.ParseStatus(status)
	if err != nil {
		return ListOrdersQuery{}, err
	}
	query.status = parsed
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status returns the filter and whether one is set.
func (q ListOrdersQuery) Status() (order.Status, bool) {
	return q.status, q.status != order.Unknown
}
