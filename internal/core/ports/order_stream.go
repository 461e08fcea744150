package ports

import (
	"context"

	"fooddispatch/internal/core/domain/model/kernel"
)

// StreamEntry is one "order created" notification read from the stream.
// OrderID is the raw payload value; it may be empty or malformed.
type StreamEntry struct {
	ID      string
	OrderID string
}

// OrderStream is the consumer-group side of the order event stream.
// Delivery is at least once: an entry stays pending until acknowledged.
type OrderStream interface {
	// EnsureGroup creates the stream and the consumer group if missing.
	EnsureGroup(ctx context.Context) error

	// ReadNew blocks for a bounded time and returns up to a batch of entries
	// never delivered to the group before. An empty result is not an error.
	ReadNew(ctx context.Context) ([]StreamEntry, error)

	// ClaimStale transfers to this consumer entries that have been pending
	// longer than the configured idle time, whoever held them.
	ClaimStale(ctx context.Context) ([]StreamEntry, error)

	// Ack retires entries from the group's pending list.
	Ack(ctx context.Context, ids ...string) error
}

// OrderEventPublisher appends "order created" notifications to the stream.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, orderID kernel.UUID) error
}
