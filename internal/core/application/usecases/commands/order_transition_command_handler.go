package commands

import (
	"context"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"
)

// transition mutates a locked order and reports whether one unit of load
// must be released on the order's courier.
type transition func(o *order.Order) (releaseLoad bool, err error)

// OrderLifecycleHandler applies start, complete and cancel.
//
// Each call locks the order row, applies the domain transition, persists it
// with a compare-and-swap on the status read under the lock and, when the
// transition ends the courier's responsibility, locks the courier row and
// releases one unit of load (floored at zero). Invalid transitions return
// *errs.ConflictError and leave the row unchanged.
type OrderLifecycleHandler struct {
	uowFactory UoWFactory
}

func NewOrderLifecycleHandler(uowFactory UoWFactory) OrderLifecycleHandler {
	return OrderLifecycleHandler{uowFactory: uowFactory}
}

// HandleStart applies ASSIGNED -> IN_PROGRESS.
func (h OrderLifecycleHandler) HandleStart(ctx context.Context, cmd StartOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.apply(ctx, cmd.OrderID(), func(o *order.Order) (bool, error) {
		return false, o.Start()
	})
}

// HandleComplete applies IN_PROGRESS -> DELIVERED and releases the courier's load.
func (h OrderLifecycleHandler) HandleComplete(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.apply(ctx, cmd.OrderID(), func(o *order.Order) (bool, error) {
		if err := o.Complete(); err != nil {
			return false, err
		}
		return true, nil
	})
}

// HandleCancel applies any non-terminal -> CANCELLED and releases the
// courier's load when the order was ASSIGNED or IN_PROGRESS.
func (h OrderLifecycleHandler) HandleCancel(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	return h.apply(ctx, cmd.OrderID(), func(o *order.Order) (bool, error) {
		prior, err := o.Cancel()
		if err != nil {
			return false, err
		}
		return prior.HoldsCourierLoad(), nil
	})
}

func (h OrderLifecycleHandler) apply(ctx context.Context, orderID kernel.UUID, fn transition) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}

	expected := o.Status()
	releaseLoad, err := fn(o)
	if err != nil {
		return err
	}

	swapped, err := orderRepo.UpdateIfStatus(ctx, o, expected)
	if err != nil {
		return err
	}
	if !swapped {
		return order.NewTransitionConflict("update", expected)
	}

	if releaseLoad && o.CourierID() != nil {
		courierRepo := uow.CourierRepository()

		c, err := courierRepo.GetForUpdate(ctx, *o.CourierID())
		if err != nil {
			return err
		}
		if c.ReleaseOrder() {
			if err = courierRepo.Update(ctx, c); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}
