package jobs

import (
	"context"
	"fmt"

	"fooddispatch/internal/pkg/logger"

	"go.uber.org/zap"
)

// Job is a scheduled background task.
type Job interface {
	Name() string
	Start(ctx context.Context) error
	Stop()
}

// JobManager starts and stops the scheduled jobs as a group.
type JobManager struct {
	jobs    []Job
	started []Job
	logger  *zap.Logger
}

func NewJobManager(l *zap.Logger, jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs, logger: logger.Component(l, "job_manager")}
}

// StartAll starts every job. If one fails, the jobs already started are
// stopped again and the error is returned.
func (jm *JobManager) StartAll(ctx context.Context) error {
	for _, job := range jm.jobs {
		if err := job.Start(ctx); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", job.Name(), err)
		}
		jm.started = append(jm.started, job)
	}
	jm.logger.Info("jobs started", zap.Int("count", len(jm.started)))
	return nil
}

// StopAll stops the started jobs in reverse order and waits for running
// passes to finish.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}
