// Package courierrepo persists courier aggregates in the couriers table.
package courierrepo

import (
	"time"

	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO is the row layout of the couriers table. The composite index
// serves the least-loaded lookup.
type CourierDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:text;not null"`
	IsActive    bool      `gorm:"not null;index:idx_couriers_pick,priority:1"`
	CurrentLoad int       `gorm:"not null;check:chk_couriers_current_load,current_load >= 0;index:idx_couriers_pick,priority:2"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;autoCreateTime:false;index:idx_couriers_pick,priority:3"`
}

func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(c *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:          c.ID().Value(),
		Name:        c.Name(),
		IsActive:    c.IsActive(),
		CurrentLoad: c.CurrentLoad(),
		CreatedAt:   c.CreatedAt().UTC(),
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	return courier.RestoreCourier(
		kernel.UUIDFrom(dto.ID),
		dto.Name,
		dto.IsActive,
		dto.CurrentLoad,
		dto.CreatedAt.UTC(),
	)
}
