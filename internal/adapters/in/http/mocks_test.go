package http

import (
	"context"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/application/usecases/queries"
	"fooddispatch/internal/core/domain/model/courier"

	"github.com/stretchr/testify/mock"
)

type MockOrderCreator struct{ mock.Mock }

func (m *MockOrderCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CreateOrderResult), args.Error(1)
}

type MockCourierCreator struct{ mock.Mock }

func (m *MockCourierCreator) Handle(ctx context.Context, cmd commands.CreateCourierCommand) (*courier.Courier, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

type MockCourierActivator struct{ mock.Mock }

func (m *MockCourierActivator) Handle(ctx context.Context, cmd commands.SetCourierActiveCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockOrderAssigner struct{ mock.Mock }

func (m *MockOrderAssigner) Handle(ctx context.Context, cmd commands.AssignOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockOrderLifecycle struct{ mock.Mock }

func (m *MockOrderLifecycle) HandleStart(ctx context.Context, cmd commands.StartOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockOrderLifecycle) HandleComplete(ctx context.Context, cmd commands.CompleteOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

func (m *MockOrderLifecycle) HandleCancel(ctx context.Context, cmd commands.CancelOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockOrdersReader struct{ mock.Mock }

func (m *MockOrdersReader) Handle(ctx context.Context, query queries.GetOrdersQuery) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.OrderView), args.Error(1)
}

type MockCouriersReader struct{ mock.Mock }

func (m *MockCouriersReader) Handle(ctx context.Context, query queries.GetCouriersQuery) ([]queries.CourierView, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.CourierView), args.Error(1)
}

type MockKPIReader struct{ mock.Mock }

func (m *MockKPIReader) Handle(ctx context.Context, query queries.GetKPIQuery) (queries.KPI, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.KPI), args.Error(1)
}

type MockTimeseriesReader struct{ mock.Mock }

func (m *MockTimeseriesReader) Handle(ctx context.Context, query queries.GetOrdersTimeseriesQuery) ([]queries.TimeseriesPoint, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.TimeseriesPoint), args.Error(1)
}
