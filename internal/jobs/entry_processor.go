package jobs

import (
	"context"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/ports"
	"fooddispatch/internal/metrics"

	"go.uber.org/zap"
)

// DispatchHandler assigns one announced order.
type DispatchHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchOrderCommand) (commands.DispatchResult, error)
}

// DispatchRecorder receives per-entry counters.
type DispatchRecorder interface {
	RecordDispatchEntry(outcome string)
	RecordOrderAssigned()
	RecordEntriesClaimed(n int)
}

// EntryProcessor applies the per-entry decision shared by the worker and
// the reclaim job.
type EntryProcessor struct {
	stream   ports.OrderStream
	handler  DispatchHandler
	recorder DispatchRecorder
	logger   *zap.Logger
}

func NewEntryProcessor(
	stream ports.OrderStream,
	handler DispatchHandler,
	recorder DispatchRecorder,
	logger *zap.Logger,
) *EntryProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntryProcessor{
		stream:   stream,
		handler:  handler,
		recorder: recorder,
		logger:   logger,
	}
}

// Process handles entries in order. It returns the first infrastructure
// error; entries before it are settled, the failing one and those after it
// stay pending.
func (p *EntryProcessor) Process(ctx context.Context, entries []ports.StreamEntry) error {
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.processOne(ctx, entry); err != nil {
			p.recorder.RecordDispatchEntry(metrics.OutcomeError)
			return err
		}
	}
	return nil
}

func (p *EntryProcessor) processOne(ctx context.Context, entry ports.StreamEntry) error {
	log := p.logger.With(zap.String("entry_id", entry.ID), zap.String("order_id", entry.OrderID))

	cmd, err := commands.NewDispatchOrderCommand(entry.OrderID)
	if err != nil {
		log.Warn("dropping malformed stream entry", zap.Error(err))
		p.recorder.RecordDispatchEntry(metrics.OutcomePoison)
		return p.stream.Ack(ctx, entry.ID)
	}

	res, err := p.handler.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	p.recorder.RecordDispatchEntry(res.Outcome.String())

	switch res.Outcome {
	case commands.DispatchAssigned:
		p.recorder.RecordOrderAssigned()
		log.Info("order assigned", zap.String("courier_id", res.CourierID.String()))
	case commands.DispatchSkipped:
		log.Debug("order no longer awaits dispatch")
	case commands.DispatchDeferred:
		log.Debug("no courier available, leaving entry pending")
	}

	if !res.Outcome.ShouldAck() {
		return nil
	}
	return p.stream.Ack(ctx, entry.ID)
}
