package ports

import "kitchenpos/internal/core/domain/model/kernel"

// DeliveryScheduler keeps at most one pending ready -> delivered timer per order.
type DeliveryScheduler interface {
	// Arm replaces any pending timer for id with a fresh one.
	Arm(id kernel.UUID)

	// Cancel discards the pending timer for id. It is safe when none exists.
	Cancel(id kernel.UUID)

	// Pending reports whether a timer for id is armed.
	Pending(id kernel.UUID) bool
}
