package ports

import "kitchenpos/internal/core/domain/model/order"

// LifecycleMetrics records business counters for the order lifecycle.
type LifecycleMetrics interface {
	OrderCreated(promoApplied bool, discount float64)
	OrderTransitioned(from, to order.Status, automatic bool)
}
