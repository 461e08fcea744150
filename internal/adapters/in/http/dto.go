package http

import (
	"encoding/json"
	"time"

	"fooddispatch/internal/core/application/usecases/queries"
)

// Request bodies.

type NewOrder struct {
	CustomerName string          `json:"customer_name"`
	Address      string          `json:"address"`
	Phone        string          `json:"phone"`
	Items        json.RawMessage `json:"items,omitempty"`
}

type NewCourier struct {
	Name string `json:"name"`
}

type CourierActivity struct {
	IsActive *bool `json:"is_active"`
}

type AssignRequest struct {
	OrderID   string `json:"order_id"`
	CourierID string `json:"courier_id"`
}

type OrderRef struct {
	OrderID string `json:"order_id"`
}

// Responses.

type Error struct {
	Detail string `json:"detail"`
}

type Ok struct {
	Ok bool `json:"ok"`
}

type Health struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type OrderCreated struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type CourierCreated struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID                string          `json:"id"`
	CustomerName      string          `json:"customer_name"`
	Address           string          `json:"address"`
	Phone             string          `json:"phone"`
	Items             json.RawMessage `json:"items"`
	Status            string          `json:"status"`
	AssignedCourierID *string         `json:"assigned_courier_id"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type Orders struct {
	Orders []Order `json:"orders"`
}

type Courier struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	IsActive    bool      `json:"is_active"`
	CurrentLoad int       `json:"current_load"`
	CreatedAt   time.Time `json:"created_at"`
}

type Couriers struct {
	Couriers []Courier `json:"couriers"`
}

type KPI struct {
	TotalOrders      int64 `json:"total_orders"`
	NewOrders        int64 `json:"new_orders"`
	AssignedOrders   int64 `json:"assigned_orders"`
	InProgressOrders int64 `json:"in_progress_orders"`
	DeliveredOrders  int64 `json:"delivered_orders"`
	CancelledOrders  int64 `json:"cancelled_orders"`
	ActiveCouriers   int64 `json:"active_couriers"`
}

type Point struct {
	TS    time.Time `json:"ts"`
	Value int64     `json:"value"`
}

type Series struct {
	Series []Point `json:"series"`
}

func toOrders(views []queries.OrderView) Orders {
	out := Orders{Orders: make([]Order, 0, len(views))}
	for _, v := range views {
		out.Orders = append(out.Orders, Order{
			ID:                v.ID,
			CustomerName:      v.CustomerName,
			Address:           v.Address,
			Phone:             v.Phone,
			Items:             v.Items,
			Status:            v.Status,
			AssignedCourierID: v.AssignedCourierID,
			CreatedAt:         v.CreatedAt,
			UpdatedAt:         v.UpdatedAt,
		})
	}
	return out
}

func toCouriers(views []queries.CourierView) Couriers {
	out := Couriers{Couriers: make([]Courier, 0, len(views))}
	for _, v := range views {
		out.Couriers = append(out.Couriers, Courier{
			ID:          v.ID,
			Name:        v.Name,
			IsActive:    v.IsActive,
			CurrentLoad: v.CurrentLoad,
			CreatedAt:   v.CreatedAt,
		})
	}
	return out
}

func toKPI(k queries.KPI) KPI {
	return KPI{
		TotalOrders:      k.TotalOrders,
		NewOrders:        k.NewOrders,
		AssignedOrders:   k.AssignedOrders,
		InProgressOrders: k.InProgressOrders,
		DeliveredOrders:  k.DeliveredOrders,
		CancelledOrders:  k.CancelledOrders,
		ActiveCouriers:   k.ActiveCouriers,
	}
}

func toSeries(points []queries.TimeseriesPoint) Series {
	out := Series{Series: make([]Point, 0, len(points))}
	for _, p := range points {
		out.Series = append(out.Series, Point{TS: p.Minute, Value: p.Count})
	}
	return out
}
