package commands

import (
	"errors"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand asks to assign a specific order to a specific courier.
// It is the operator path; the dispatch worker uses DispatchOrderCommand.
//
// Example:
//
//	cmd, err := NewAssignOrderCommand(req.OrderID, req.CourierID)
//	if err != nil {
//	    return err // 400: blank or malformed id
//	}
//	err = handler.Handle(ctx, cmd)
type AssignOrderCommand struct {
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand parses both identifiers. Blank values fail with
// *errs.ValueIsRequiredError, malformed ones with *errs.ValueIsInvalidError.
func NewAssignOrderCommand(orderID, courierID string) (AssignOrderCommand, error) {
	oid, orderErr := kernel.ParseUUID(orderID)
	cid, courierErr := kernel.ParseUUID(courierID)
	if err := errors.Join(orderErr, courierErr); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		orderID:   oid,
		courierID: cid,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}
