package commands

import (
	"context"
	"errors"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/pkg/errs"
)

// AssignmentResult is the business outcome of one atomic assignment attempt.
type AssignmentResult int

const (
	// AssignmentApplied means the order is ASSIGNED to the courier and the
	// courier's load grew by one, both committed together.
	AssignmentApplied AssignmentResult = iota + 1
	// AssignmentOrderNotAssignable means the order is missing or no longer NEW.
	AssignmentOrderNotAssignable
	// AssignmentCourierUnavailable means the courier is missing or inactive.
	AssignmentCourierUnavailable
)

func (r AssignmentResult) String() string {
	switch r {
	case AssignmentApplied:
		return "applied"
	case AssignmentOrderNotAssignable:
		return "order_not_assignable"
	case AssignmentCourierUnavailable:
		return "courier_unavailable"
	default:
		return "unknown"
	}
}

// AssignmentEngine commits "order NEW -> ASSIGNED plus courier load +1" as
// one all-or-nothing unit. It is the single source of truth for assignment;
// both the dispatch worker and the synchronous API go through it.
//
// Inside one transaction it:
//  1. locks the order row and requires status NEW,
//  2. locks the courier row and requires it to be active,
//  3. writes the order with a compare-and-swap on status NEW,
//  4. increments and writes the courier load,
//  5. commits.
//
// Any business guard failing rolls the transaction back, so no partial state
// is ever visible. Two concurrent attempts on the same order serialise on the
// order row lock and the loser observes a non-NEW status.
type AssignmentEngine struct {
	uowFactory UoWFactory
}

// NewAssignmentEngine creates an engine running on uowFactory.
func NewAssignmentEngine(uowFactory UoWFactory) AssignmentEngine {
	return AssignmentEngine{uowFactory: uowFactory}
}

// Assign attempts the assignment. A non-nil error means infrastructure
// failure (the outcome is unknown and the attempt may be retried); business
// refusals are reported through the result with a nil error.
func (e AssignmentEngine) Assign(ctx context.Context, orderID, courierID kernel.UUID) (AssignmentResult, error) {
	uow := e.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return AssignmentOrderNotAssignable, nil
	}
	if err != nil {
		return 0, err
	}
	if o.Status() != order.New {
		return AssignmentOrderNotAssignable, nil
	}

	c, err := courierRepo.GetForUpdate(ctx, courierID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return AssignmentCourierUnavailable, nil
	}
	if err != nil {
		return 0, err
	}
	if err = c.TakeOrder(); err != nil {
		return AssignmentCourierUnavailable, nil //nolint:nilerr // inactive courier is an outcome
	}

	if err = o.Assign(courierID); err != nil {
		return 0, err
	}

	swapped, err := orderRepo.UpdateIfStatus(ctx, o, order.New)
	if err != nil {
		return 0, err
	}
	if !swapped {
		return AssignmentOrderNotAssignable, nil
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return AssignmentApplied, nil
}
