package commands

import (
	"context"
	"errors"

	"kitchenpos/internal/core/domain/model/kernel"
	"kitchenpos/internal/core/domain/model/order"
	"kitchenpos/internal/core/ports"
	"kitchenpos/internal/pkg/errs"
)

// DeliverReadyOrderCommandHandler performs the automatic ready -> delivered move.
// The status check and the write happen inside one unit of work, so an order changed
// by a client in the meantime is left alone.
type DeliverReadyOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *OrderLocks
	clock      kernel.Clock
	publisher  ports.EventPublisher
	metrics    ports.LifecycleMetrics
}

func NewDeliverReadyOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locks *OrderLocks,
	clock kernel.Clock,
	publisher ports.EventPublisher,
	metrics ports.LifecycleMetrics,
) DeliverReadyOrderCommandHandler {
	return DeliverReadyOrderCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		clock:      clock,
		publisher:  publisher,
		metrics:    metrics,
	}
}

// Handle returns true when the order was delivered. A missing order, or one that is no
// longer ready, is a silent no-op reported as false with a nil error.
func (h *DeliverReadyOrderCommandHandler) Handle(ctx context.Context, cmd DeliverReadyOrderCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	unlock := h.locks.Lock(cmd.OrderID())
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if o.Status() != order.Ready {
		return false, nil
	}

	if _, err = o.ChangeStatus(order.Delivered, order.TransitionMeta{}, h.clock.Now()); err != nil {
		return false, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	h.publisher.Publish(ctx, order.EventUpdated, o.Snapshot())
	h.metrics.OrderTransitioned(order.Ready, order.Delivered, true)

	return true, nil
}
