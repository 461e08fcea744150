package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/application/usecases/queries"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReclaimJob_ProcessesClaimedEntries(t *testing.T) {
	ctx := context.Background()
	stream, handler, recorder, p := newProcessorMocks()
	orderID := kernel.NewUUID()

	stream.On("ClaimStale", ctx).
		Return([]ports.StreamEntry{{ID: "7-0", OrderID: orderID.String()}}, nil).Once()
	stream.On("Ack", ctx, "7-0").Return(nil).Once()
	handler.On("Handle", ctx, forOrder(orderID)).
		Return(commands.DispatchResult{Outcome: commands.DispatchSkipped}, nil).Once()
	recorder.On("RecordEntriesClaimed", 1).Once()
	recorder.On("RecordDispatchEntry", "skipped").Once()

	NewReclaimJob(stream, p, time.Second, nil).runOnce(ctx)

	stream.AssertExpectations(t)
	handler.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestReclaimJob_NothingToClaim(t *testing.T) {
	ctx := context.Background()
	stream, handler, _, p := newProcessorMocks()
	stream.On("ClaimStale", ctx).Return(nil, nil).Once()

	NewReclaimJob(stream, p, time.Second, nil).runOnce(ctx)

	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	stream.AssertNotCalled(t, "EnsureGroup", mock.Anything)
	stream.AssertExpectations(t)
}

func TestReclaimJob_RecreatesGroupAfterFailedClaim(t *testing.T) {
	ctx := context.Background()
	stream, handler, _, p := newProcessorMocks()
	stream.On("ClaimStale", ctx).
		Return(nil, errors.New("NOGROUP No such key 'orders:new' or consumer group")).Once()
	stream.On("EnsureGroup", ctx).Return(nil).Once()

	NewReclaimJob(stream, p, time.Second, nil).runOnce(ctx)

	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	stream.AssertExpectations(t)
}

func TestReclaimJob_StartAndStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, _, _, p := newProcessorMocks()
	claimed := make(chan struct{}, 1)
	stream.On("ClaimStale", mock.Anything).
		Return(nil, nil).
		Run(func(mock.Arguments) {
			select {
			case claimed <- struct{}{}:
			default:
			}
		})

	job := NewReclaimJob(stream, p, time.Second, nil)
	require.NoError(t, job.Start(ctx))

	select {
	case <-claimed:
	case <-time.After(5 * time.Second):
		t.Fatal("reclaim job never ran")
	}
	job.Stop()
}

func TestGaugeJob_RefreshesGauges(t *testing.T) {
	ctx := context.Background()
	reader := new(MockKPIReader)
	recorder := new(MockRecorder)

	reader.On("Handle", mock.Anything, mock.AnythingOfType("queries.GetKPIQuery")).
		Return(queries.KPI{NewOrders: 2, AssignedOrders: 3, InProgressOrders: 1, DeliveredOrders: 9, ActiveCouriers: 4}, nil).Once()
	recorder.On("SetActiveCounts", int64(6), int64(4)).Once()

	NewGaugeJob(reader, recorder, time.Second, nil).runOnce(ctx)

	reader.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestGaugeJob_KeepsGaugesOnFailure(t *testing.T) {
	reader := new(MockKPIReader)
	recorder := new(MockRecorder)
	reader.On("Handle", mock.Anything, mock.Anything).Return(queries.KPI{}, errors.New("down")).Once()

	NewGaugeJob(reader, recorder, time.Second, nil).runOnce(context.Background())

	recorder.AssertNotCalled(t, "SetActiveCounts", mock.Anything, mock.Anything)
}

func TestJobManager_StartAllStopsStartedOnFailure(t *testing.T) {
	ctx := context.Background()
	first, second := new(MockJob), new(MockJob)

	first.On("Start", ctx).Return(nil).Once()
	first.On("Stop").Once()
	second.On("Start", ctx).Return(errors.New("bad schedule")).Once()
	second.On("Name").Return("gauges")

	err := NewJobManager(nil, first, second).StartAll(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gauges")
	first.AssertExpectations(t)
	second.AssertNotCalled(t, "Stop")
}

func TestJobManager_StopAllInReverseOrder(t *testing.T) {
	ctx := context.Background()
	first, second := new(MockJob), new(MockJob)
	var stopped []string

	first.On("Start", ctx).Return(nil).Once()
	second.On("Start", ctx).Return(nil).Once()
	first.On("Stop").Run(func(mock.Arguments) { stopped = append(stopped, "first") }).Once()
	second.On("Stop").Run(func(mock.Arguments) { stopped = append(stopped, "second") }).Once()

	jm := NewJobManager(nil, first, second)
	require.NoError(t, jm.StartAll(ctx))
	jm.StopAll()
	jm.StopAll()

	assert.Equal(t, []string{"second", "first"}, stopped)
}
