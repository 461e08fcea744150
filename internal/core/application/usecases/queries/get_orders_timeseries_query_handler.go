package queries

import (
	"context"

	"fooddispatch/internal/adapters/out/postgres/dberrs"

	"gorm.io/gorm"
)

// GetOrdersTimeseriesQueryHandler reads the per-minute order series.
type GetOrdersTimeseriesQueryHandler struct {
	db *gorm.DB
}

func NewGetOrdersTimeseriesQueryHandler(db *gorm.DB) GetOrdersTimeseriesQueryHandler {
	return GetOrdersTimeseriesQueryHandler{db: db}
}

func (h GetOrdersTimeseriesQueryHandler) Handle(ctx context.Context, query GetOrdersTimeseriesQuery) ([]TimeseriesPoint, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	points := make([]TimeseriesPoint, 0)
	err := h.db.WithContext(ctx).Raw(`
		SELECT date_trunc('minute', created_at) AS minute, COUNT(*) AS count
		FROM orders
		WHERE created_at >= ?
		GROUP BY minute
		ORDER BY minute ASC`, query.Since()).Scan(&points).Error
	if err != nil {
		return nil, dberrs.Classify(err)
	}

	for i := range points {
		points[i].Minute = points[i].Minute.UTC()
	}
	return points, nil
}
