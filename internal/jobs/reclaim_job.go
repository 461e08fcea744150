package jobs

import (
	"context"
	"sync"
	"time"

	"fooddispatch/internal/core/ports"
	"fooddispatch/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReclaimJob periodically takes over stale pending entries and processes
// them again.
type ReclaimJob struct {
	stream    ports.OrderStream
	processor *EntryProcessor
	interval  time.Duration
	cron      *cron.Cron
	logger    *zap.Logger

	mu  sync.Mutex
	ctx context.Context
}

func NewReclaimJob(
	stream ports.OrderStream,
	processor *EntryProcessor,
	interval time.Duration,
	l *zap.Logger,
) *ReclaimJob {
	l = logger.Component(l, "reclaim_job")
	return &ReclaimJob{
		stream:    stream,
		processor: processor,
		interval:  interval,
		cron:      newScheduler(l),
		logger:    l,
		ctx:       context.Background(),
	}
}

func (j *ReclaimJob) Name() string { return "reclaim" }

// Start schedules the job. Runs stop early once ctx is cancelled.
func (j *ReclaimJob) Start(ctx context.Context) error {
	j.mu.Lock()
	j.ctx = ctx
	j.mu.Unlock()

	if _, err := j.cron.AddFunc(every(j.interval), func() { j.runOnce(j.baseContext()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("reclaim job started", zap.Duration("interval", j.interval))
	return nil
}

// Stop unschedules the job and waits for a running pass to finish.
func (j *ReclaimJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("reclaim job stopped")
}

func (j *ReclaimJob) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	entries, err := j.stream.ClaimStale(ctx)
	if len(entries) > 0 {
		j.processor.recorder.RecordEntriesClaimed(len(entries))
		j.logger.Info("reclaimed pending entries", zap.Int("entries", len(entries)))
	}
	if err != nil && ctx.Err() == nil {
		j.logger.Error("claim of pending entries failed", zap.Error(err))
		if gerr := j.stream.EnsureGroup(ctx); gerr != nil {
			j.logger.Error("cannot create consumer group", zap.Error(gerr))
		}
	}
	if len(entries) == 0 {
		return
	}

	if err = j.processor.Process(ctx, entries); err != nil && ctx.Err() == nil {
		j.logger.Error("reclaimed batch interrupted", zap.Error(err))
	}
}

func (j *ReclaimJob) baseContext() context.Context {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.ctx
}
