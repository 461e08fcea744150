package queries

import (
	"context"

	"fooddispatch/internal/adapters/out/postgres/dberrs"
	"fooddispatch/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type statusCount struct {
	Status string
	Count  int64
}

// GetKPIQueryHandler aggregates order and courier counters.
type GetKPIQueryHandler struct {
	db *gorm.DB
}

func NewGetKPIQueryHandler(db *gorm.DB) GetKPIQueryHandler {
	return GetKPIQueryHandler{db: db}
}

func (h GetKPIQueryHandler) Handle(ctx context.Context, query GetKPIQuery) (KPI, error) {
	if err := query.Validate(); err != nil {
		return KPI{}, err
	}

	db := h.db.WithContext(ctx)

	var counts []statusCount
	if err := db.Raw(`SELECT status, COUNT(*) AS count FROM orders GROUP BY status`).Scan(&counts).Error; err != nil {
		return KPI{}, dberrs.Classify(err)
	}

	var kpi KPI
	for _, c := range counts {
		kpi.TotalOrders += c.Count

		st, err := order.ParseStatus(c.Status)
		if err != nil {
			continue
		}
		switch st {
		case order.New:
			kpi.NewOrders = c.Count
		case order.Assigned:
			kpi.AssignedOrders = c.Count
		case order.InProgress:
			kpi.InProgressOrders = c.Count
		case order.Delivered:
			kpi.DeliveredOrders = c.Count
		case order.Cancelled:
			kpi.CancelledOrders = c.Count
		case order.Unknown:
		}
	}

	if err := db.Raw(`SELECT COUNT(*) FROM couriers WHERE is_active = TRUE`).Scan(&kpi.ActiveCouriers).Error; err != nil {
		return KPI{}, dberrs.Classify(err)
	}

	return kpi, nil
}
