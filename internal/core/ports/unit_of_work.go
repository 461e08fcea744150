package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per business operation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after
// Begin run inside the transaction and see its row locks.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. It is safe to defer after
	// a successful Commit; the error is then gorm.ErrInvalidTransaction.
	Rollback(ctx context.Context) error

	// CourierRepository returns a repository bound to the current transaction.
	CourierRepository() CourierRepository

	// OrderRepository returns a repository bound to the current transaction.
	OrderRepository() OrderRepository
}
