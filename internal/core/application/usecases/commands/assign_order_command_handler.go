package commands

import (
	"context"
	"fmt"

	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/pkg/errs"
)

// AssignmentConflict is the subject of the conflict returned when the
// engine refuses an assignment that passed the pre-checks.
const AssignmentConflict = "assignment"

// AssignOrderCommandHandler serves operator assignments.
//
// It first reads the courier and the order to produce precise errors
// (not found, inactive courier, order not NEW) and then runs the
// AssignmentEngine, which re-checks everything under row locks. A refusal
// from the engine after passing the pre-checks means a concurrent writer won
// and is reported as a conflict too.
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	engine     AssignmentEngine
}

func NewAssignOrderCommandHandler(uowFactory UoWFactory, engine AssignmentEngine) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle returns *errs.ObjectNotFoundError for an unknown order or courier
// and *errs.ConflictError when the assignment is not possible.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.precheck(ctx, cmd); err != nil {
		return err
	}

	result, err := h.engine.Assign(ctx, cmd.OrderID(), cmd.CourierID())
	if err != nil {
		return err
	}
	if result != AssignmentApplied {
		return errs.NewConflictErrorWithCause(AssignmentConflict, fmt.Errorf("assign failed: %s", result))
	}

	return nil
}

func (h AssignOrderCommandHandler) precheck(ctx context.Context, cmd AssignOrderCommand) error {
	uow := h.uowFactory.Create()

	c, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if err = c.CanTakeOrder(); err != nil {
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if o.Status() != order.New {
		return order.NewTransitionConflict("assign", o.Status())
	}

	return nil
}
