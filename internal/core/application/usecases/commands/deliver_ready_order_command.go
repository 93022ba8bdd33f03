package commands

import (
	"errors"

	"kitchenpos/internal/core/domain/model/kernel"
	"kitchenpos/internal/pkg/guard"
)

var ErrDeliverReadyOrderCommandIsNotConstructed = errors.New(
	"DeliverReadyOrderCommand must be created via NewDeliverReadyOrderCommand constructor",
)

// DeliverReadyOrderCommand is issued by the delivery timer once the grace period of a
// ready order has elapsed.
type DeliverReadyOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeliverReadyOrderCommand(orderID kernel.UUID) (DeliverReadyOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DeliverReadyOrderCommand{}, err
	}

	return DeliverReadyOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverReadyOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverReadyOrderCommandIsNotConstructed)
}

func (c DeliverReadyOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
