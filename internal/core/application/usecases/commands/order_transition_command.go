package commands

import (
	"errors"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/guard"
)

var (
	ErrStartOrderCommandIsNotConstructed = errors.New(
		"StartOrderCommand must be created via NewStartOrderCommand constructor",
	)
	ErrCompleteOrderCommandIsNotConstructed = errors.New(
		"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
	)
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
)

// orderRef is the payload shared by the lifecycle commands.
type orderRef struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func newOrderRef(orderID string) (orderRef, error) {
	id, err := kernel.ParseUUID(orderID)
	if err != nil {
		return orderRef{}, err
	}
	return orderRef{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

// OrderID returns the order the command targets.
func (r orderRef) OrderID() kernel.UUID {
	return r.orderID
}

// StartOrderCommand moves an ASSIGNED order to IN_PROGRESS.
type StartOrderCommand struct{ orderRef }

func NewStartOrderCommand(orderID string) (StartOrderCommand, error) {
	ref, err := newOrderRef(orderID)
	return StartOrderCommand{ref}, err
}

func (c StartOrderCommand) Validate() error {
	return c.guard.Validate(ErrStartOrderCommandIsNotConstructed)
}

// CompleteOrderCommand moves an IN_PROGRESS order to DELIVERED.
type CompleteOrderCommand struct{ orderRef }

func NewCompleteOrderCommand(orderID string) (CompleteOrderCommand, error) {
	ref, err := newOrderRef(orderID)
	return CompleteOrderCommand{ref}, err
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// CancelOrderCommand moves any non-terminal order to CANCELLED.
type CancelOrderCommand struct{ orderRef }

func NewCancelOrderCommand(orderID string) (CancelOrderCommand, error) {
	ref, err := newOrderRef(orderID)
	return CancelOrderCommand{ref}, err
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}
