// Package ports defines the contracts between the application core and its
// adapters: repositories bound to a unit of work and the order event stream.
package ports

import (
	"context"

	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a newly registered courier.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Get reads a courier without locking it.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetForUpdate reads a courier and holds its row lock until the
	// surrounding transaction ends, serialising load changes and
	// deactivation of the same courier.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetLeastLoadedActive returns the active courier with the smallest load,
	// ties broken by earliest registration. It fails with
	// *errs.ObjectNotFoundError when no courier is active.
	//
	// The result is advisory: callers must re-check it under GetForUpdate.
	GetLeastLoadedActive(ctx context.Context) (*courier.Courier, error)

	// Update persists is_active and current_load of an existing courier.
	Update(ctx context.Context, aggregate *courier.Courier) error
}
