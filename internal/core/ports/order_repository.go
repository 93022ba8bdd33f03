// Package ports defines the contracts between the lifecycle engine and the outside world:
// durable stores, the menu source, observers, the delivery timer and metrics.
// Adapters under internal/adapters implement them; the engine depends only on these interfaces.
package ports

import (
	"context"

	"kitchenpos/internal/core/domain/model/kernel"
	"kitchenpos/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	// Inside an active unit of work the order stays locked until Commit or Rollback.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves every order sorted by creation time, oldest first.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetAllInStatus retrieves the orders in status sorted by creation time, oldest first.
	//
	// Example:
	//   ready, err := repo.GetAllInStatus(ctx, order.Ready)
	//   if err != nil {
	//       return fmt.Errorf("failed to load ready orders: %w", err)
	//   }
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
