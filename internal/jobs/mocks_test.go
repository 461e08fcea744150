package jobs

import (
	"context"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/application/usecases/queries"
	"fooddispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockStream struct{ mock.Mock }

func (m *MockStream) EnsureGroup(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStream) ReadNew(ctx context.Context) ([]ports.StreamEntry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]ports.StreamEntry)
	return entries, args.Error(1)
}

func (m *MockStream) ClaimStale(ctx context.Context) ([]ports.StreamEntry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]ports.StreamEntry)
	return entries, args.Error(1)
}

func (m *MockStream) Ack(ctx context.Context, ids ...string) error {
	args := make([]any, 0, len(ids)+1)
	args = append(args, ctx)
	for _, id := range ids {
		args = append(args, id)
	}
	return m.Called(args...).Error(0)
}

type MockDispatchHandler struct{ mock.Mock }

func (m *MockDispatchHandler) Handle(ctx context.Context, cmd commands.DispatchOrderCommand) (commands.DispatchResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.DispatchResult), args.Error(1)
}

type MockRecorder struct{ mock.Mock }

func (m *MockRecorder) RecordDispatchEntry(outcome string) { m.Called(outcome) }
func (m *MockRecorder) RecordOrderAssigned()               { m.Called() }
func (m *MockRecorder) RecordEntriesClaimed(n int)         { m.Called(n) }
func (m *MockRecorder) SetActiveCounts(orders, couriers int64) {
	m.Called(orders, couriers)
}

type MockKPIReader struct{ mock.Mock }

func (m *MockKPIReader) Handle(ctx context.Context, query queries.GetKPIQuery) (queries.KPI, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.KPI), args.Error(1)
}

type MockJob struct{ mock.Mock }

func (m *MockJob) Name() string                    { return m.Called().String(0) }
func (m *MockJob) Start(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockJob) Stop()                           { m.Called() }
