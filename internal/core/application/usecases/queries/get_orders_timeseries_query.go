package queries

import (
	"errors"
	"time"

	"fooddispatch/internal/pkg/guard"
)

// TimeseriesWindow is how far back the order series reaches.
const TimeseriesWindow = 60 * time.Minute

var ErrGetOrdersTimeseriesQueryIsNotConstructed = errors.New(
	"GetOrdersTimeseriesQuery must be created via NewGetOrdersTimeseriesQuery constructor",
)

// GetOrdersTimeseriesQuery counts orders created per minute over the window
// ending at a given instant. Minutes without orders are omitted.
type GetOrdersTimeseriesQuery struct {
	until time.Time

	guard guard.ConstructorGuard
}

func NewGetOrdersTimeseriesQuery(until time.Time) GetOrdersTimeseriesQuery {
	return GetOrdersTimeseriesQuery{until: until.UTC(), guard: guard.NewConstructorGuard()}
}

func (q GetOrdersTimeseriesQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersTimeseriesQueryIsNotConstructed)
}

func (q GetOrdersTimeseriesQuery) Since() time.Time {
	return q.until.Add(-TimeseriesWindow)
}

// TimeseriesPoint is one minute bucket.
type TimeseriesPoint struct {
	Minute time.Time
	Count  int64
}
