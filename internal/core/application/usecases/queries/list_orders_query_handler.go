package queries

import (
	"context"

	"kitchenpos/internal/core/domain/model/order"
	"kitchenpos/internal/core/ports"
)

// ListOrdersQueryHandler reads orders straight from the repository, outside any unit of work.
type ListOrdersQueryHandler struct {
	orderRepo ports.OrderRepository
}

func NewListOrdersQueryHandler(orderRepo ports.OrderRepository) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orderRepo: orderRepo}
}

// Handle returns the matching orders as snapshots, oldest first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]order.Snapshot, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		orders []*order.Order
		err    error
	)
	if status, ok := query.Status(); ok {
		orders, err = h.orderRepo.GetAllInStatus(ctx, status)
	} else {
		orders, err = h.orderRepo.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	snapshots := make([]order.Snapshot, 0, len(orders))
	for _, o := range orders {
		snapshots = append(snapshots, o.Snapshot())
	}
	return snapshots, nil
}
