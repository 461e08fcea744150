package queries

import (
	"context"
	"encoding/json"
	"time"

	"fooddispatch/internal/adapters/out/postgres/dberrs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type orderRow struct {
	ID                uuid.UUID
	CustomerName      string
	Address           string
	Phone             string
	ItemsJSON         string
	Status            string
	AssignedCourierID *uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (r orderRow) view() OrderView {
	v := OrderView{
		ID:           r.ID.String(),
		CustomerName: r.CustomerName,
		Address:      r.Address,
		Phone:        r.Phone,
		Items:        json.RawMessage(r.ItemsJSON),
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if !json.Valid(v.Items) {
		v.Items = json.RawMessage("[]")
	}
	if r.AssignedCourierID != nil {
		id := r.AssignedCourierID.String()
		v.AssignedCourierID = &id
	}
	return v
}

// GetOrdersQueryHandler reads orders for intake listings and the dashboard.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []orderRow
	tx := h.db.WithContext(ctx)

	if statuses := query.Statuses(); len(statuses) > 0 {
		names := make([]string, 0, len(statuses))
		for _, st := range statuses {
			names = append(names, st.String())
		}
		tx = tx.Raw(`
			SELECT id, customer_name, address, phone, items_json, status,
			       assigned_courier_id, created_at, updated_at
			FROM orders
			WHERE status = ANY(?)
			ORDER BY created_at DESC
			LIMIT ?`, pq.Array(names), query.Limit())
	} else {
		tx = tx.Raw(`
			SELECT id, customer_name, address, phone, items_json, status,
			       assigned_courier_id, created_at, updated_at
			FROM orders
			ORDER BY created_at DESC
			LIMIT ?`, query.Limit())
	}

	if err := tx.Scan(&rows).Error; err != nil {
		return nil, dberrs.Classify(err)
	}

	views := make([]OrderView, 0, len(rows))
	for _, r := range rows {
		views = append(views, r.view())
	}
	return views, nil
}
