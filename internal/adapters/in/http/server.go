package http

import (
	"context"
	"net/http"
	"time"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/application/usecases/queries"
	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Use cases served over HTTP.
type (
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error)
	}
	CourierCreator interface {
		Handle(ctx context.Context, cmd commands.CreateCourierCommand) (*courier.Courier, error)
	}
	CourierActivator interface {
		Handle(ctx context.Context, cmd commands.SetCourierActiveCommand) error
	}
	OrderAssigner interface {
		Handle(ctx context.Context, cmd commands.AssignOrderCommand) error
	}
	OrderLifecycle interface {
		HandleStart(ctx context.Context, cmd commands.StartOrderCommand) error
		HandleComplete(ctx context.Context, cmd commands.CompleteOrderCommand) error
		HandleCancel(ctx context.Context, cmd commands.CancelOrderCommand) error
	}
	OrdersReader interface {
		Handle(ctx context.Context, query queries.GetOrdersQuery) ([]queries.OrderView, error)
	}
	CouriersReader interface {
		Handle(ctx context.Context, query queries.GetCouriersQuery) ([]queries.CourierView, error)
	}
	KPIReader interface {
		Handle(ctx context.Context, query queries.GetKPIQuery) (queries.KPI, error)
	}
	TimeseriesReader interface {
		Handle(ctx context.Context, query queries.GetOrdersTimeseriesQuery) ([]queries.TimeseriesPoint, error)
	}
)

// Recorder counts business events seen by the API.
type Recorder interface {
	RecordOrderCreated(published bool)
	RecordOrderAssigned()
	RecordCourierCreated()
}

// Handlers bundles the use cases the server delegates to.
type Handlers struct {
	CreateOrder      OrderCreator
	CreateCourier    CourierCreator
	SetCourierActive CourierActivator
	AssignOrder      OrderAssigner
	Lifecycle        OrderLifecycle
	Orders           OrdersReader
	Couriers         CouriersReader
	KPI              KPIReader
	Timeseries       TimeseriesReader
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	handlers Handlers
	recorder Recorder
	service  string
	now      func() time.Time
}

var _ ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, recorder Recorder, serviceName string) *Server {
	return &Server{
		handlers: handlers,
		recorder: recorder,
		service:  serviceName,
		now:      time.Now,
	}
}

// GetHealth handles GET /health. It does not touch the store or the stream.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, Health{Status: "ok", Service: s.service})
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	d := details{missing: "customer_name/address/phone are required"}

	cmd, err := commands.NewCreateOrderCommand(body.CustomerName, body.Address, body.Phone, body.Items)
	if err != nil {
		return toAPIError(err, d)
	}

	res, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return toAPIError(err, d)
	}
	s.recorder.RecordOrderCreated(res.Published)

	return ctx.JSON(http.StatusCreated, OrderCreated{
		ID:        res.Order.ID().String(),
		Status:    res.Order.Status().String(),
		CreatedAt: res.Order.CreatedAt(),
	})
}

// ListOrders handles GET /orders.
func (s *Server) ListOrders(ctx echo.Context, params ListOrdersParams) error {
	var statuses string
	if params.Status != nil {
		statuses = *params.Status
	}
	var limit int
	if params.Limit != nil {
		limit = *params.Limit
	}

	query, err := queries.NewGetOrdersQuery(statuses, limit)
	if err != nil {
		return toAPIError(err, details{})
	}

	return s.listOrders(ctx, query)
}

// CreateCourier handles POST /couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var body NewCourier
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	d := details{missing: "name is required"}

	cmd, err := commands.NewCreateCourierCommand(body.Name)
	if err != nil {
		return toAPIError(err, d)
	}

	c, err := s.handlers.CreateCourier.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return toAPIError(err, d)
	}
	s.recorder.RecordCourierCreated()

	return ctx.JSON(http.StatusCreated, CourierCreated{
		ID:        c.ID().String(),
		Name:      c.Name(),
		CreatedAt: c.CreatedAt(),
	})
}

// ListCouriers handles GET /couriers.
func (s *Server) ListCouriers(ctx echo.Context) error {
	return s.listCouriers(ctx, queries.NewGetAllCouriersQuery())
}

// SetCourierActive handles PATCH /couriers/{courier_id}/active.
func (s *Server) SetCourierActive(ctx echo.Context, courierID string) error {
	var body CourierActivity
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	if body.IsActive == nil {
		return toAPIError(errs.NewValueIsRequiredError("is_active"), details{missing: "is_active is required"})
	}

	cmd, err := commands.NewSetCourierActiveCommand(courierID, *body.IsActive)
	if err != nil {
		return toAPIError(err, details{})
	}

	if err = s.handlers.SetCourierActive.Handle(ctx.Request().Context(), cmd); err != nil {
		return toAPIError(err, details{})
	}

	return ctx.JSON(http.StatusOK, Ok{Ok: true})
}

// AssignOrder handles POST /dispatch/assign.
func (s *Server) AssignOrder(ctx echo.Context) error {
	var body AssignRequest
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	d := details{
		missing: "order_id and courier_id required",
		conflict: func(ce *errs.ConflictError) string {
			switch ce.Subject {
			case courier.AvailabilityConflict:
				return "Courier is inactive"
			case order.StatusConflict:
				return "Order must be NEW"
			default:
				return "Assign failed"
			}
		},
	}

	cmd, err := commands.NewAssignOrderCommand(body.OrderID, body.CourierID)
	if err != nil {
		return toAPIError(err, d)
	}

	if err = s.handlers.AssignOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return toAPIError(err, d)
	}
	s.recorder.RecordOrderAssigned()

	return ctx.JSON(http.StatusOK, Ok{Ok: true})
}

// StartOrder handles POST /dispatch/start.
func (s *Server) StartOrder(ctx echo.Context) error {
	return s.transition(ctx, "Order must be ASSIGNED", func(c context.Context, id string) error {
		cmd, err := commands.NewStartOrderCommand(id)
		if err != nil {
			return err
		}
		return s.handlers.Lifecycle.HandleStart(c, cmd)
	})
}

// CompleteOrder handles POST /dispatch/complete.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	return s.transition(ctx, "Order must be IN_PROGRESS", func(c context.Context, id string) error {
		cmd, err := commands.NewCompleteOrderCommand(id)
		if err != nil {
			return err
		}
		return s.handlers.Lifecycle.HandleComplete(c, cmd)
	})
}

// CancelOrder handles POST /dispatch/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	return s.transition(ctx, "Order not cancellable", func(c context.Context, id string) error {
		cmd, err := commands.NewCancelOrderCommand(id)
		if err != nil {
			return err
		}
		return s.handlers.Lifecycle.HandleCancel(c, cmd)
	})
}

// GetKPI handles GET /analytics/kpi.
func (s *Server) GetKPI(ctx echo.Context) error {
	kpi, err := s.handlers.KPI.Handle(ctx.Request().Context(), queries.NewGetKPIQuery())
	if err != nil {
		return toAPIError(err, details{})
	}
	return ctx.JSON(http.StatusOK, toKPI(kpi))
}

// GetRecentOrders handles GET /analytics/orders/recent.
func (s *Server) GetRecentOrders(ctx echo.Context) error {
	query, err := queries.NewGetOrdersQuery("", queries.DefaultOrdersLimit)
	if err != nil {
		return toAPIError(err, details{})
	}
	return s.listOrders(ctx, query)
}

// GetCouriersLoad handles GET /analytics/couriers/load.
func (s *Server) GetCouriersLoad(ctx echo.Context) error {
	return s.listCouriers(ctx, queries.NewGetCouriersLoadQuery())
}

// GetOrdersTimeseries handles GET /analytics/timeseries/orders.
func (s *Server) GetOrdersTimeseries(ctx echo.Context) error {
	points, err := s.handlers.Timeseries.Handle(ctx.Request().Context(), queries.NewGetOrdersTimeseriesQuery(s.now()))
	if err != nil {
		return toAPIError(err, details{})
	}
	return ctx.JSON(http.StatusOK, toSeries(points))
}

func (s *Server) transition(ctx echo.Context, conflict string, apply func(context.Context, string) error) error {
	var body OrderRef
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	d := details{
		missing:  "order_id required",
		conflict: func(*errs.ConflictError) string { return conflict },
	}

	if err := apply(ctx.Request().Context(), body.OrderID); err != nil {
		return toAPIError(err, d)
	}

	return ctx.JSON(http.StatusOK, Ok{Ok: true})
}

func (s *Server) listOrders(ctx echo.Context, query queries.GetOrdersQuery) error {
	views, err := s.handlers.Orders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return toAPIError(err, details{})
	}
	return ctx.JSON(http.StatusOK, toOrders(views))
}

func (s *Server) listCouriers(ctx echo.Context, query queries.GetCouriersQuery) error {
	views, err := s.handlers.Couriers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return toAPIError(err, details{})
	}
	return ctx.JSON(http.StatusOK, toCouriers(views))
}
