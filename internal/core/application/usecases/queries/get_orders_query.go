// Package queries contains read operations for the dashboard, the registry
// and the gauges. Handlers run plain SQL through gorm and return read models
// instead of aggregates.
package queries

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/pkg/guard"
)

const (
	DefaultOrdersLimit = 50
	MaxOrdersLimit     = 200
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists orders newest first, optionally filtered by status.
//
// Example:
//
//	q, err := NewGetOrdersQuery("NEW,ASSIGNED", 20)
//	if err != nil {
//	    return err // unknown status
//	}
//	orders, err := handler.Handle(ctx, q)
type GetOrdersQuery struct {
	statuses []order.Status
	limit    int

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery parses a comma-separated status filter (empty means
// every status) and clamps limit to [1, MaxOrdersLimit]; a non-positive
// limit selects DefaultOrdersLimit.
func NewGetOrdersQuery(statuses string, limit int) (GetOrdersQuery, error) {
	q := GetOrdersQuery{
		limit: clampLimit(limit, DefaultOrdersLimit, MaxOrdersLimit),
		guard: guard.NewConstructorGuard(),
	}

	for _, part := range strings.Split(statuses, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		st, err := order.ParseStatus(part)
		if err != nil {
			return GetOrdersQuery{}, err
		}
		q.statuses = append(q.statuses, st)
	}

	return q, nil
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

func (q GetOrdersQuery) Statuses() []order.Status {
	return q.statuses
}

func (q GetOrdersQuery) Limit() int {
	return q.limit
}

// OrderView is the read model of one order.
type OrderView struct {
	ID                string
	CustomerName      string
	Address           string
	Phone             string
	Items             json.RawMessage
	Status            string
	AssignedCourierID *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func clampLimit(limit, def, maxLimit int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, maxLimit)
}
