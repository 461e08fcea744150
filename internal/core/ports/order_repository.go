package ports

import (
	"context"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Lookups of unknown IDs fail with *errs.ObjectNotFoundError.
type OrderRepository interface {
	// Add persists a new order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get reads an order without locking it.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate reads an order and holds its row lock until the surrounding
	// transaction ends. Outside a transaction it behaves like Get.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateIfStatus writes status, courier and updated_at of aggregate only if
	// the stored status still equals expected. It reports whether a row was
	// changed; false means another writer moved the order first.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) (bool, error)
}
