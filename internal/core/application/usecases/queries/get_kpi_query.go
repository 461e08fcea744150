package queries

import (
	"errors"

	"fooddispatch/internal/pkg/guard"
)

var ErrGetKPIQueryIsNotConstructed = errors.New(
	"GetKPIQuery must be created via NewGetKPIQuery constructor",
)

// GetKPIQuery counts orders per status and active couriers.
type GetKPIQuery struct {
	guard guard.ConstructorGuard
}

func NewGetKPIQuery() GetKPIQuery {
	return GetKPIQuery{guard: guard.NewConstructorGuard()}
}

func (q GetKPIQuery) Validate() error {
	return q.guard.Validate(ErrGetKPIQueryIsNotConstructed)
}

// KPI is the dashboard headline.
type KPI struct {
	TotalOrders      int64
	NewOrders        int64
	AssignedOrders   int64
	InProgressOrders int64
	DeliveredOrders  int64
	CancelledOrders  int64
	ActiveCouriers   int64
}

// ActiveOrders counts orders that are not yet delivered or cancelled.
func (k KPI) ActiveOrders() int64 {
	return k.NewOrders + k.AssignedOrders + k.InProgressOrders
}
