// Package commands contains the write use cases of the dispatch platform:
// order intake, courier registry changes, the assignment engine and the
// order lifecycle transitions. Every handler runs its store work in one unit
// of work and reports business failures as typed errors or outcomes.
package commands

import (
	"context"

	"fooddispatch/internal/core/ports"
)

// A unit of work is one Postgres transaction. Handlers ask for the narrowest
// view that covers the rows they write.
type (
	// TxManager opens and closes the transaction. Rollback after Commit is a
	// no-op, so handlers defer it unconditionally.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory exposes the orders table bound to the open transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory exposes the couriers table bound to the open transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// OrderUoW is used by intake, which inserts a NEW order and nothing else.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW is used by the registry: registration and the active flag.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW manages transactions that touch both an order and its courier.
	// Handlers lock the order row before the courier row so that concurrent
	// units never wait on each other in opposite order.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   c, err := uow.CourierRepository().GetForUpdate(ctx, courierID)
	//   err = o.Assign(c.ID())
	//   err = c.TakeOrder()
	//   // UpdateIfStatus(o, order.New), then Update(c)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CourierRepoFactory
		OrderRepoFactory
	}

	// UoWFactory returns a fresh UoW for each command.
	UoWFactory interface {
		Create() UoW
	}
)
