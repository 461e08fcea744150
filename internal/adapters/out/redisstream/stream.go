// Package redisstream implements the order event stream on Redis Streams:
// a publisher appending "order created" entries and a consumer-group reader
// with explicit acknowledgement and reclaim of stale pending entries.
package redisstream

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/ports"
	"fooddispatch/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// Resource names the stream backend in UnavailableError values.
const Resource = "redis"

// OrderIDField is the entry field carrying the order id.
const OrderIDField = "order_id"

// Config describes one stream and the consumer identity reading it.
type Config struct {
	Stream   string
	Group    string
	Consumer string

	// BatchSize bounds entries returned by one read or claim.
	BatchSize int64
	// Block is how long ReadNew waits for new entries.
	Block time.Duration
	// ClaimMinIdle is how long an entry must stay pending before ClaimStale
	// takes it over.
	ClaimMinIdle time.Duration
	// MaxLen trims the stream approximately on every append.
	MaxLen int64
}

var (
	_ ports.OrderStream         = (*Stream)(nil)
	_ ports.OrderEventPublisher = (*Stream)(nil)
)

// Stream is both ends of the order event stream.
type Stream struct {
	client redis.UniversalClient
	cfg    Config
}

func NewStream(client redis.UniversalClient, cfg Config) *Stream {
	return &Stream{client: client, cfg: cfg}
}

// EnsureGroup creates the consumer group, and the stream with it, reading
// from the beginning. An existing group is left untouched.
func (s *Stream) EnsureGroup(ctx context.Context) error {
	err := s.client.XGroupCreateMkStream(ctx, s.cfg.Stream, s.cfg.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return classify(fmt.Errorf("create group %s on %s: %w", s.cfg.Group, s.cfg.Stream, err))
	}
	return nil
}

// ReadNew reads entries never delivered to the group.
func (s *Stream) ReadNew(ctx context.Context) ([]ports.StreamEntry, error) {
	streams, err := s.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    s.cfg.Group,
		Consumer: s.cfg.Consumer,
		Streams:  []string{s.cfg.Stream, ">"},
		Count:    s.cfg.BatchSize,
		Block:    s.cfg.Block,
	}).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(fmt.Errorf("read group %s: %w", s.cfg.Group, err))
	}

	var entries []ports.StreamEntry
	for _, st := range streams {
		entries = append(entries, toEntries(st.Messages)...)
	}
	return entries, nil
}

// ClaimStale takes over entries pending longer than ClaimMinIdle. It walks
// the whole pending list in pages of BatchSize.
func (s *Stream) ClaimStale(ctx context.Context) ([]ports.StreamEntry, error) {
	var entries []ports.StreamEntry
	start := "0-0"

	for {
		messages, next, err := s.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   s.cfg.Stream,
			Group:    s.cfg.Group,
			Consumer: s.cfg.Consumer,
			MinIdle:  s.cfg.ClaimMinIdle,
			Start:    start,
			Count:    s.cfg.BatchSize,
		}).Result()
		if err != nil {
			return entries, classify(fmt.Errorf("autoclaim on %s: %w", s.cfg.Stream, err))
		}

		entries = append(entries, toEntries(messages)...)
		if next == "0-0" || next == "" || next == start {
			return entries, nil
		}
		start = next
	}
}

// Ack retires entries from the pending list.
func (s *Stream) Ack(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.client.XAck(ctx, s.cfg.Stream, s.cfg.Group, ids...).Err(); err != nil {
		return classify(fmt.Errorf("ack %d entries: %w", len(ids), err))
	}
	return nil
}

// PublishOrderCreated appends {order_id} to the stream.
func (s *Stream) PublishOrderCreated(ctx context.Context, orderID kernel.UUID) error {
	err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.cfg.Stream,
		MaxLen: s.cfg.MaxLen,
		Approx: true,
		Values: map[string]any{OrderIDField: orderID.String()},
	}).Err()
	if err != nil {
		return classify(fmt.Errorf("publish order %s: %w", orderID, err))
	}
	return nil
}

// Ping checks the connection.
func (s *Stream) Ping(ctx context.Context) error {
	return classify(s.client.Ping(ctx).Err())
}

func toEntries(messages []redis.XMessage) []ports.StreamEntry {
	entries := make([]ports.StreamEntry, 0, len(messages))
	for _, m := range messages {
		entry := ports.StreamEntry{ID: m.ID}
		if v, ok := m.Values[OrderIDField].(string); ok {
			entry.OrderID = strings.TrimSpace(v)
		}
		entries = append(entries, entry)
	}
	return entries
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errs.NewUnavailableError(Resource, err)
}
