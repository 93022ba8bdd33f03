package filestore

import (
	"context"
	"fmt"
	"slices"

	"kitchenpos/internal/core/domain/model/kernel"
	"kitchenpos/internal/core/domain/model/order"
	"kitchenpos/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over orders.json.
type OrderRepository struct {
	uow *UnitOfWork
}

// Add appends a new order to the collection.
func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.withOrders(ctx, true, func(orders *[]order.Snapshot) error {
		if indexOf(*orders, aggregate.ID()) >= 0 {
			return errs.NewStorageError(OrdersFile, fmt.Errorf("order %s already exists", aggregate.ID()))
		}
		*orders = append(*orders, aggregate.Snapshot())
		return nil
	})
}

// Update replaces the stored record of an existing order.
func (r *OrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.withOrders(ctx, true, func(orders *[]order.Snapshot) error {
		idx := indexOf(*orders, aggregate.ID())
		if idx < 0 {
			return errs.NewObjectNotFoundError("orderID", aggregate.ID().String())
		}
		(*orders)[idx] = aggregate.Snapshot()
		return nil
	})
}

// Get retrieves an order by ID.
func (r *OrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var found *order.Order
	err := r.uow.withOrders(ctx, false, func(orders *[]order.Snapshot) error {
		idx := indexOf(*orders, id)
		if idx < 0 {
			return errs.NewObjectNotFoundError("orderID", id.String())
		}
		o, err := order.RestoreOrder((*orders)[idx])
		if err != nil {
			return errs.NewStorageError(OrdersFile, err)
		}
		found = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// GetAll retrieves every order, oldest first.
func (r *OrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, func(order.Snapshot) bool { return true })
}

// GetAllInStatus retrieves the orders in status, oldest first.
func (r *OrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	return r.find(ctx, func(s order.Snapshot) bool { return s.Status == status })
}

func (r *OrderRepository) find(ctx context.Context, match func(order.Snapshot) bool) ([]*order.Order, error) {
	var result []*order.Order
	err := r.uow.withOrders(ctx, false, func(orders *[]order.Snapshot) error {
		result = make([]*order.Order, 0, len(*orders))
		for _, snapshot := range *orders {
			if !match(snapshot) {
				continue
			}
			o, err := order.RestoreOrder(snapshot)
			if err != nil {
				r.uow.store.logger.Error("skipping unreadable order record", "id", snapshot.ID.String(), "error", err)
				continue
			}
			result = append(result, o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(result, func(a, b *order.Order) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	return result, nil
}

func indexOf(orders []order.Snapshot, id kernel.UUID) int {
	return slices.IndexFunc(orders, func(s order.Snapshot) bool { return s.ID.IsEqual(id) })
}
