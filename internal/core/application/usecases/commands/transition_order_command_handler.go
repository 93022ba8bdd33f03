package commands

import (
	"context"

	"kitchenpos/internal/core/domain/model/kernel"
	"kitchenpos/internal/core/domain/model/order"
	"kitchenpos/internal/core/ports"
)

// TransitionOrderCommandHandler applies a manual status change requested by a client.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *OrderLocks
	clock      kernel.Clock
	publisher  ports.EventPublisher
	scheduler  ports.DeliveryScheduler
	metrics    ports.LifecycleMetrics
}

func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locks *OrderLocks,
	clock kernel.Clock,
	publisher ports.EventPublisher,
	scheduler ports.DeliveryScheduler,
	metrics ports.LifecycleMetrics,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		clock:      clock,
		publisher:  publisher,
		scheduler:  scheduler,
		metrics:    metrics,
	}
}

// Handle loads the order under the unit of work and changes its status.
//
// Returns:
//   - the unchanged order and no event when it is already in the target status
//   - errs.ObjectNotFoundError when the order does not exist
//   - order.InvalidTransitionError when the transition table forbids the move
//
// After a successful commit it publishes "updated" and arms or cancels the delivery timer,
// still holding the order lock so observers and the timer follow the commit order.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	unlock := h.locks.Lock(cmd.OrderID())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	from := o.Status()
	changed, err := o.ChangeStatus(cmd.Target(), order.TransitionMeta{CancelReason: cmd.CancelReason()}, h.clock.Now())
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, order.EventUpdated, o.Snapshot())
	h.metrics.OrderTransitioned(from, o.Status(), false)
	syncDeliveryTimer(h.scheduler, o)

	return o, nil
}
