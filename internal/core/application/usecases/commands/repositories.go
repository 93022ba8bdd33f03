// Package commands contains business operations that modify order or promotion state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, persistence,
// then post-commit side effects (observer broadcast, delivery timer, metrics).
package commands

import (
	"context"

	"kitchenpos/internal/core/domain/model/order"
	"kitchenpos/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PromoRepoFactory provides access to promo state repository within a transaction.
	PromoRepoFactory interface {
		PromoStateRepository() ports.PromoStateRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used by status transitions, manual and automatic.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PromoUoW manages transactions for promotion override changes.
	PromoUoW interface {
		TxManager
		PromoRepoFactory
	}

	// PromoUoWFactory creates new promo unit of work instances.
	PromoUoWFactory interface {
		Create() PromoUoW
	}

	// UoW manages transactions that read the promotion state and write an order.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   state, err := uow.PromoStateRepository().Get(ctx)
	//   err = uow.OrderRepository().Add(ctx, o)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		PromoRepoFactory
	}

	// UoWFactory creates new unit of work instances for order creation.
	UoWFactory interface {
		Create() UoW
	}
)

// syncDeliveryTimer keeps the automatic delivery timer in line with the persisted status:
// armed while the order is ready, absent otherwise.
func syncDeliveryTimer(scheduler ports.DeliveryScheduler, o *order.Order) {
	if o.Status() == order.Ready {
		scheduler.Arm(o.ID())
		return
	}
	scheduler.Cancel(o.ID())
}
