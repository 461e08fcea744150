package queries

import (
	"context"
	"time"

	"fooddispatch/internal/adapters/out/postgres/dberrs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type courierRow struct {
	ID          uuid.UUID
	Name        string
	IsActive    bool
	CurrentLoad int
	CreatedAt   time.Time
}

// GetCouriersQueryHandler reads couriers for the registry and the load board.
type GetCouriersQueryHandler struct {
	db *gorm.DB
}

func NewGetCouriersQueryHandler(db *gorm.DB) GetCouriersQueryHandler {
	return GetCouriersQueryHandler{db: db}
}

func (h GetCouriersQueryHandler) Handle(ctx context.Context, query GetCouriersQuery) ([]CourierView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orderBy := "created_at DESC"
	if query.order == busiestFirst {
		orderBy = "current_load DESC, name ASC"
	}

	var rows []courierRow
	err := h.db.WithContext(ctx).
		Table("couriers").
		Select("id, name, is_active, current_load, created_at").
		Order(orderBy).
		Limit(query.limit).
		Scan(&rows).Error
	if err != nil {
		return nil, dberrs.Classify(err)
	}

	views := make([]CourierView, 0, len(rows))
	for _, r := range rows {
		views = append(views, CourierView{
			ID:          r.ID.String(),
			Name:        r.Name,
			IsActive:    r.IsActive,
			CurrentLoad: r.CurrentLoad,
			CreatedAt:   r.CreatedAt,
		})
	}
	return views, nil
}
