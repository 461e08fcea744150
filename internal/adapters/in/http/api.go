package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	// Status is a comma separated list of statuses.
	Status *string `form:"status,omitempty" json:"status,omitempty"`
	Limit  *int    `form:"limit,omitempty" json:"limit,omitempty"`
}

// ServerInterface represents all server handlers of openapi.yaml.
type ServerInterface interface {
	// (GET /health)
	GetHealth(ctx echo.Context) error
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// (GET /orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (POST /couriers)
	CreateCourier(ctx echo.Context) error
	// (GET /couriers)
	ListCouriers(ctx echo.Context) error
	// (PATCH /couriers/{courier_id}/active)
	SetCourierActive(ctx echo.Context, courierID string) error
	// (POST /dispatch/assign)
	AssignOrder(ctx echo.Context) error
	// (POST /dispatch/start)
	StartOrder(ctx echo.Context) error
	// (POST /dispatch/complete)
	CompleteOrder(ctx echo.Context) error
	// (POST /dispatch/cancel)
	CancelOrder(ctx echo.Context) error
	// (GET /analytics/kpi)
	GetKPI(ctx echo.Context) error
	// (GET /analytics/orders/recent)
	GetRecentOrders(ctx echo.Context) error
	// (GET /analytics/couriers/load)
	GetCouriersLoad(ctx echo.Context) error
	// (GET /analytics/timeseries/orders)
	GetOrdersTimeseries(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams

	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateCourier(ctx echo.Context) error {
	return w.Handler.CreateCourier(ctx)
}

func (w *ServerInterfaceWrapper) ListCouriers(ctx echo.Context) error {
	return w.Handler.ListCouriers(ctx)
}

func (w *ServerInterfaceWrapper) SetCourierActive(ctx echo.Context) error {
	var courierID string

	err := runtime.BindStyledParameterWithOptions("simple", "courier_id", ctx.Param("courier_id"), &courierID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter courier_id: %s", err))
	}

	return w.Handler.SetCourierActive(ctx, courierID)
}

func (w *ServerInterfaceWrapper) AssignOrder(ctx echo.Context) error {
	return w.Handler.AssignOrder(ctx)
}

func (w *ServerInterfaceWrapper) StartOrder(ctx echo.Context) error {
	return w.Handler.StartOrder(ctx)
}

func (w *ServerInterfaceWrapper) CompleteOrder(ctx echo.Context) error {
	return w.Handler.CompleteOrder(ctx)
}

func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	return w.Handler.CancelOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetKPI(ctx echo.Context) error {
	return w.Handler.GetKPI(ctx)
}

func (w *ServerInterfaceWrapper) GetRecentOrders(ctx echo.Context) error {
	return w.Handler.GetRecentOrders(ctx)
}

func (w *ServerInterfaceWrapper) GetCouriersLoad(ctx echo.Context) error {
	return w.Handler.GetCouriersLoad(ctx)
}

func (w *ServerInterfaceWrapper) GetOrdersTimeseries(ctx echo.Context) error {
	return w.Handler.GetOrdersTimeseries(ctx)
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET("/health", wrapper.GetHealth)
	router.POST("/orders", wrapper.CreateOrder)
	router.GET("/orders", wrapper.ListOrders)
	router.POST("/couriers", wrapper.CreateCourier)
	router.GET("/couriers", wrapper.ListCouriers)
	router.PATCH("/couriers/:courier_id/active", wrapper.SetCourierActive)
	router.POST("/dispatch/assign", wrapper.AssignOrder)
	router.POST("/dispatch/start", wrapper.StartOrder)
	router.POST("/dispatch/complete", wrapper.CompleteOrder)
	router.POST("/dispatch/cancel", wrapper.CancelOrder)
	router.GET("/analytics/kpi", wrapper.GetKPI)
	router.GET("/analytics/orders/recent", wrapper.GetRecentOrders)
	router.GET("/analytics/couriers/load", wrapper.GetCouriersLoad)
	router.GET("/analytics/timeseries/orders", wrapper.GetOrdersTimeseries)
}
