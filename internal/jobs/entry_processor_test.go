package jobs

import (
	"context"
	"errors"
	"testing"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/ports"
	"fooddispatch/internal/metrics"
	"fooddispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func forOrder(id kernel.UUID) any {
	return mock.MatchedBy(func(cmd commands.DispatchOrderCommand) bool {
		return cmd.OrderID().Equals(id)
	})
}

func newProcessorMocks() (*MockStream, *MockDispatchHandler, *MockRecorder, *EntryProcessor) {
	stream := new(MockStream)
	handler := new(MockDispatchHandler)
	recorder := new(MockRecorder)
	return stream, handler, recorder, NewEntryProcessor(stream, handler, recorder, nil)
}

func TestEntryProcessor_PoisonEntriesAreAcked(t *testing.T) {
	ctx := context.Background()
	stream, handler, recorder, p := newProcessorMocks()

	stream.On("Ack", ctx, "1-0").Return(nil).Once()
	stream.On("Ack", ctx, "2-0").Return(nil).Once()
	recorder.On("RecordDispatchEntry", metrics.OutcomePoison).Twice()

	err := p.Process(ctx, []ports.StreamEntry{
		{ID: "1-0", OrderID: ""},
		{ID: "2-0", OrderID: "not-a-uuid"},
	})

	require.NoError(t, err)
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	stream.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestEntryProcessor_AckDependsOnOutcome(t *testing.T) {
	ctx := context.Background()
	stream, handler, recorder, p := newProcessorMocks()

	assigned, skipped, deferred := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	courierID := kernel.NewUUID()

	handler.On("Handle", ctx, forOrder(assigned)).
		Return(commands.DispatchResult{Outcome: commands.DispatchAssigned, CourierID: courierID}, nil).Once()
	handler.On("Handle", ctx, forOrder(skipped)).
		Return(commands.DispatchResult{Outcome: commands.DispatchSkipped}, nil).Once()
	handler.On("Handle", ctx, forOrder(deferred)).
		Return(commands.DispatchResult{Outcome: commands.DispatchDeferred}, nil).Once()

	stream.On("Ack", ctx, "1-0").Return(nil).Once()
	stream.On("Ack", ctx, "2-0").Return(nil).Once()

	recorder.On("RecordDispatchEntry", "assigned").Once()
	recorder.On("RecordDispatchEntry", "skipped").Once()
	recorder.On("RecordDispatchEntry", "deferred").Once()
	recorder.On("RecordOrderAssigned").Once()

	err := p.Process(ctx, []ports.StreamEntry{
		{ID: "1-0", OrderID: assigned.String()},
		{ID: "2-0", OrderID: skipped.String()},
		{ID: "3-0", OrderID: deferred.String()},
	})

	require.NoError(t, err)
	stream.AssertNotCalled(t, "Ack", ctx, "3-0")
	stream.AssertExpectations(t)
	handler.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestEntryProcessor_InfrastructureErrorStopsBatch(t *testing.T) {
	ctx := context.Background()
	stream, handler, recorder, p := newProcessorMocks()

	first, second, third := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	dbErr := errs.NewUnavailableError("postgres", errors.New("connection refused"))

	handler.On("Handle", ctx, forOrder(first)).
		Return(commands.DispatchResult{Outcome: commands.DispatchAssigned, CourierID: kernel.NewUUID()}, nil).Once()
	handler.On("Handle", ctx, forOrder(second)).
		Return(commands.DispatchResult{}, dbErr).Once()

	stream.On("Ack", ctx, "1-0").Return(nil).Once()
	recorder.On("RecordDispatchEntry", "assigned").Once()
	recorder.On("RecordOrderAssigned").Once()
	recorder.On("RecordDispatchEntry", metrics.OutcomeError).Once()

	err := p.Process(ctx, []ports.StreamEntry{
		{ID: "1-0", OrderID: first.String()},
		{ID: "2-0", OrderID: second.String()},
		{ID: "3-0", OrderID: third.String()},
	})

	require.ErrorIs(t, err, errs.ErrUnavailable)
	handler.AssertNotCalled(t, "Handle", ctx, forOrder(third))
	stream.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestEntryProcessor_AckFailureIsReported(t *testing.T) {
	ctx := context.Background()
	stream, _, recorder, p := newProcessorMocks()

	ackErr := errs.NewUnavailableError("redis", errors.New("i/o timeout"))
	stream.On("Ack", ctx, "1-0").Return(ackErr).Once()
	recorder.On("RecordDispatchEntry", metrics.OutcomePoison).Once()
	recorder.On("RecordDispatchEntry", metrics.OutcomeError).Once()

	err := p.Process(ctx, []ports.StreamEntry{{ID: "1-0"}})

	require.ErrorIs(t, err, ackErr)
	recorder.AssertExpectations(t)
}

func TestEntryProcessor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stream, handler, _, p := newProcessorMocks()

	err := p.Process(ctx, []ports.StreamEntry{{ID: "1-0", OrderID: kernel.NewUUID().String()}})

	assert.ErrorIs(t, err, context.Canceled)
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	stream.AssertNotCalled(t, "Ack", mock.Anything, mock.Anything)
}
