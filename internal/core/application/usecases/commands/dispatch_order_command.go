package commands

import (
	"errors"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand asks the dispatcher to find a courier for one order
// announced on the stream.
type DispatchOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDispatchOrderCommand parses the order id carried by a stream entry.
// An error here marks the entry as poison: there is nothing to act on.
func NewDispatchOrderCommand(orderID string) (DispatchOrderCommand, error) {
	id, err := kernel.ParseUUID(orderID)
	if err != nil {
		return DispatchOrderCommand{}, err
	}
	return DispatchOrderCommand{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

func (c DispatchOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
