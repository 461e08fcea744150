package jobs

import (
	"context"
	"sync"
	"time"

	"fooddispatch/internal/core/application/usecases/queries"
	"fooddispatch/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// KPIReader reads the store counters.
type KPIReader interface {
	Handle(ctx context.Context, query queries.GetKPIQuery) (queries.KPI, error)
}

// GaugeRecorder receives the active counts.
type GaugeRecorder interface {
	SetActiveCounts(orders, couriers int64)
}

// GaugeJob refreshes the active orders and couriers gauges.
type GaugeJob struct {
	reader   KPIReader
	recorder GaugeRecorder
	interval time.Duration
	cron     *cron.Cron
	logger   *zap.Logger

	mu  sync.Mutex
	ctx context.Context
}

func NewGaugeJob(reader KPIReader, recorder GaugeRecorder, interval time.Duration, l *zap.Logger) *GaugeJob {
	l = logger.Component(l, "gauge_job")
	return &GaugeJob{
		reader:   reader,
		recorder: recorder,
		interval: interval,
		cron:     newScheduler(l),
		logger:   l,
		ctx:      context.Background(),
	}
}

func (j *GaugeJob) Name() string { return "gauges" }

func (j *GaugeJob) Start(ctx context.Context) error {
	j.mu.Lock()
	j.ctx = ctx
	j.mu.Unlock()

	if _, err := j.cron.AddFunc(every(j.interval), func() { j.runOnce(j.baseContext()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("gauge job started", zap.Duration("interval", j.interval))
	return nil
}

func (j *GaugeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("gauge job stopped")
}

func (j *GaugeJob) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, j.interval)
	defer cancel()

	kpi, err := j.reader.Handle(ctx, queries.NewGetKPIQuery())
	if err != nil {
		j.logger.Warn("gauge refresh failed", zap.Error(err))
		return
	}
	j.recorder.SetActiveCounts(kpi.ActiveOrders(), kpi.ActiveCouriers)
}

func (j *GaugeJob) baseContext() context.Context {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.ctx
}
