package commands

import (
	"context"
	"errors"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/pkg/errs"
)

// DispatchOutcome tells the stream consumer what to do with the entry.
type DispatchOutcome int

const (
	// DispatchAssigned: the order was assigned; acknowledge.
	DispatchAssigned DispatchOutcome = iota + 1
	// DispatchSkipped: the order is gone or no longer NEW; acknowledge, a
	// retry can never succeed.
	DispatchSkipped
	// DispatchDeferred: no courier could take the order right now; leave the
	// entry pending so it is redelivered later.
	DispatchDeferred
)

func (o DispatchOutcome) String() string {
	switch o {
	case DispatchAssigned:
		return "assigned"
	case DispatchSkipped:
		return "skipped"
	case DispatchDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// ShouldAck reports whether the stream entry can be retired.
func (o DispatchOutcome) ShouldAck() bool {
	return o == DispatchAssigned || o == DispatchSkipped
}

// DispatchResult is the outcome plus the chosen courier when assigned.
type DispatchResult struct {
	Outcome   DispatchOutcome
	CourierID kernel.UUID
}

// maxCourierPicks bounds re-selection when the picked courier is deactivated
// between selection and locking.
const maxCourierPicks = 3

// DispatchOrderCommandHandler assigns an announced order to the least loaded
// active courier.
//
// Selection is an unlocked read; the AssignmentEngine re-validates under row
// locks. If the picked courier turns out to be unavailable the handler picks
// again, up to maxCourierPicks times, and then defers.
//
// Errors are infrastructure failures only; the caller backs off and retries.
type DispatchOrderCommandHandler struct {
	uowFactory UoWFactory
	engine     AssignmentEngine
}

func NewDispatchOrderCommandHandler(uowFactory UoWFactory, engine AssignmentEngine) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

func (h DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) (DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchResult{}, err
	}

	uow := h.uowFactory.Create()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return DispatchResult{Outcome: DispatchSkipped}, nil
	}
	if err != nil {
		return DispatchResult{}, err
	}
	if o.Status() != order.New {
		return DispatchResult{Outcome: DispatchSkipped}, nil
	}

	for range maxCourierPicks {
		c, err := uow.CourierRepository().GetLeastLoadedActive(ctx)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return DispatchResult{Outcome: DispatchDeferred}, nil
		}
		if err != nil {
			return DispatchResult{}, err
		}

		result, err := h.engine.Assign(ctx, cmd.OrderID(), c.ID())
		if err != nil {
			return DispatchResult{}, err
		}

		switch result {
		case AssignmentApplied:
			return DispatchResult{Outcome: DispatchAssigned, CourierID: c.ID()}, nil
		case AssignmentOrderNotAssignable:
			return DispatchResult{Outcome: DispatchSkipped}, nil
		case AssignmentCourierUnavailable:
			continue
		}
	}

	return DispatchResult{Outcome: DispatchDeferred}, nil
}
