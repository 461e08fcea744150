// Package orderrepo persists order aggregates in the orders table.
package orderrepo

import (
	"time"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row layout of the orders table. Status is stored by name
// and the basket as JSON text. Timestamps are owned by the aggregate, so
// GORM must not touch them.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerName      string     `gorm:"type:text;not null"`
	Address           string     `gorm:"type:text;not null"`
	Phone             string     `gorm:"type:text;not null"`
	ItemsJSON         string     `gorm:"column:items_json;type:text;not null"`
	Status            string     `gorm:"type:text;not null;index:idx_orders_status"`
	AssignedCourierID *uuid.UUID `gorm:"type:uuid;index:idx_orders_assigned_courier_id"`
	CreatedAt         time.Time  `gorm:"type:timestamptz;not null;autoCreateTime:false;index:idx_orders_created_at"`
	UpdatedAt         time.Time  `gorm:"type:timestamptz;not null;autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := o.CourierID(); id != nil {
		raw := id.Value()
		courierID = &raw
	}

	return OrderDTO{
		ID:                o.ID().Value(),
		CustomerName:      o.CustomerName(),
		Address:           o.Address(),
		Phone:             o.Phone(),
		ItemsJSON:         o.Items().String(),
		Status:            o.Status().String(),
		AssignedCourierID: courierID,
		CreatedAt:         o.CreatedAt().UTC(),
		UpdatedAt:         o.UpdatedAt().UTC(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items, err := order.NewItems([]byte(dto.ItemsJSON))
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.AssignedCourierID != nil {
		id := kernel.UUIDFrom(*dto.AssignedCourierID)
		courierID = &id
	}

	return order.RestoreOrder(order.Snapshot{
		ID:           kernel.UUIDFrom(dto.ID),
		CustomerName: dto.CustomerName,
		Address:      dto.Address,
		Phone:        dto.Phone,
		Items:        items,
		Status:       status,
		CourierID:    courierID,
		CreatedAt:    dto.CreatedAt.UTC(),
		UpdatedAt:    dto.UpdatedAt.UTC(),
	})
}
