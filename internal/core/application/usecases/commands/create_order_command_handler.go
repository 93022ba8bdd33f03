package commands

import (
	"context"
	"fmt"

	"kitchenpos/internal/core/domain/model/kernel"
	"kitchenpos/internal/core/domain/model/order"
	"kitchenpos/internal/core/domain/model/promo"
	"kitchenpos/internal/core/domain/services"
	"kitchenpos/internal/core/ports"
	"kitchenpos/internal/pkg/errs"
)

// CreateOrderCommandHandler registers a new Pending order, freezing the promotion that
// is in force at the moment of the request.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, locks, menu, policy, clock, hub, scheduler, metrics)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	locks      *OrderLocks
	catalog    ports.CatalogProvider
	policy     *promo.Policy
	calculator services.PromoDiscountCalculator
	clock      kernel.Clock
	publisher  ports.EventPublisher
	scheduler  ports.DeliveryScheduler
	metrics    ports.LifecycleMetrics
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	locks *OrderLocks,
	catalog ports.CatalogProvider,
	policy *promo.Policy,
	clock kernel.Clock,
	publisher ports.EventPublisher,
	scheduler ports.DeliveryScheduler,
	metrics ports.LifecycleMetrics,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		catalog:    catalog,
		policy:     policy,
		calculator: services.NewPromoDiscountCalculator(policy.EligibleCategory()),
		clock:      clock,
		publisher:  publisher,
		scheduler:  scheduler,
		metrics:    metrics,
	}
}

// Handle validates the items against the menu, evaluates the promotion, persists the
// order and then notifies observers.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	menu, err := h.catalog.GetMenu(ctx)
	if err != nil {
		return nil, err
	}
	for i, item := range cmd.Items() {
		if _, ok := menu.ProductByID(item.ProductID); !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].productId", i),
				fmt.Errorf("product %q is not on the menu", item.ProductID),
			)
		}
	}

	id := kernel.NewUUID()
	unlock := h.locks.Lock(id)
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	state, err := uow.PromoStateRepository().Get(ctx)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	evaluation := h.policy.Evaluate(state, now)

	discount := 0.0
	if evaluation.Active {
		discount = h.calculator.Calculate(cmd.Items(), menu)
	}

	created, err := order.NewOrder(
		id,
		now,
		cmd.Table(),
		cmd.Items(),
		cmd.Totals(),
		cmd.Notes(),
		order.Promo{
			Applied:   discount > 0,
			Discount:  discount,
			Source:    evaluation.Source,
			Type:      evaluation.Type,
			Timestamp: now,
		},
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publisher.Publish(ctx, order.EventCreated, created.Snapshot())
	h.metrics.OrderCreated(created.Promo().Applied, created.Promo().Discount)
	syncDeliveryTimer(h.scheduler, created)

	return created, nil
}
