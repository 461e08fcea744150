package commands

import (
	"errors"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/guard"
)

var ErrSetCourierActiveCommandIsNotConstructed = errors.New(
	"SetCourierActiveCommand must be created via NewSetCourierActiveCommand constructor",
)

// SetCourierActiveCommand toggles whether a courier may receive new orders.
type SetCourierActiveCommand struct {
	courierID kernel.UUID
	active    bool

	guard guard.ConstructorGuard
}

func NewSetCourierActiveCommand(courierID string, active bool) (SetCourierActiveCommand, error) {
	id, err := kernel.ParseUUID(courierID)
	if err != nil {
		return SetCourierActiveCommand{}, err
	}
	return SetCourierActiveCommand{courierID: id, active: active, guard: guard.NewConstructorGuard()}, nil
}

func (c SetCourierActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierActiveCommandIsNotConstructed)
}

func (c SetCourierActiveCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c SetCourierActiveCommand) Active() bool {
	return c.active
}
