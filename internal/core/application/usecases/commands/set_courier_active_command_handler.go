package commands

import (
	"context"
)

// SetCourierActiveCommandHandler activates or deactivates a courier.
//
// The courier row is locked for the change, so a deactivation waits for an
// in-flight assignment on the same courier and every later assignment
// observes the new flag.
type SetCourierActiveCommandHandler struct {
	uowFactory CourierUoWFactory
}

func NewSetCourierActiveCommandHandler(uowFactory CourierUoWFactory) SetCourierActiveCommandHandler {
	return SetCourierActiveCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns *errs.ObjectNotFoundError for an unknown courier.
func (h SetCourierActiveCommandHandler) Handle(ctx context.Context, cmd SetCourierActiveCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CourierRepository()

	c, err := repo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	c.SetActive(cmd.Active())

	if err = repo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
