package jobs

import (
	"context"
	"time"

	"fooddispatch/internal/core/ports"
	"fooddispatch/internal/pkg/logger"

	"go.uber.org/zap"
)

// DispatchWorker is the long-running stream consumer. It never stops on a
// failure; only cancellation of the context passed to Run ends it.
type DispatchWorker struct {
	stream    ports.OrderStream
	processor *EntryProcessor
	backoff   time.Duration
	logger    *zap.Logger
}

func NewDispatchWorker(
	stream ports.OrderStream,
	processor *EntryProcessor,
	backoff time.Duration,
	l *zap.Logger,
) *DispatchWorker {
	return &DispatchWorker{
		stream:    stream,
		processor: processor,
		backoff:   backoff,
		logger:    logger.Component(l, "dispatch_worker"),
	}
}

// Run consumes until ctx is cancelled and then returns nil. After a failed
// read the consumer group is ensured again before the next read.
func (w *DispatchWorker) Run(ctx context.Context) error {
	w.logger.Info("dispatch worker started")
	defer w.logger.Info("dispatch worker stopped")

	groupReady := false
	for ctx.Err() == nil {
		if !groupReady {
			if err := w.stream.EnsureGroup(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				w.logger.Error("cannot create consumer group", zap.Error(err))
				w.wait(ctx)
				continue
			}
			groupReady = true
		}

		entries, err := w.stream.ReadNew(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.logger.Error("stream read failed", zap.Error(err))
			groupReady = false
			w.wait(ctx)
			continue
		}

		if len(entries) == 0 {
			continue
		}

		if err = w.processor.Process(ctx, entries); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.logger.Error("dispatch batch interrupted", zap.Int("entries", len(entries)), zap.Error(err))
			w.wait(ctx)
		}
	}

	return nil
}

// wait sleeps for the backoff and reports false when ctx ended first.
func (w *DispatchWorker) wait(ctx context.Context) bool {
	timer := time.NewTimer(w.backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
