package courierrepo

import (
	"context"
	"errors"

	"fooddispatch/internal/adapters/out/postgres/dberrs"
	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCourierRepository implements ports.CourierRepository using GORM.
type GormCourierRepository struct {
	db *gorm.DB
}

func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// Add inserts a new courier row.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return dberrs.Classify(r.db.WithContext(ctx).Create(&dto).Error)
}

// Update writes is_active and current_load of an existing courier.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"is_active":    dto.IsActive,
			"current_load": dto.CurrentLoad,
		})
	if result.Error != nil {
		return dberrs.Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courier", aggregate.ID().String())
	}

	return nil
}

// Get reads a courier by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate reads a courier with SELECT ... FOR UPDATE.
func (r *GormCourierRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// GetLeastLoadedActive picks the active courier with the lowest load; the
// oldest registration wins a tie and the ID makes the order total.
func (r *GormCourierRepository) GetLeastLoadedActive(ctx context.Context) (*courier.Courier, error) {
	var dto CourierDTO
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("current_load ASC, created_at ASC, id ASC").
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", "least loaded active")
		}
		return nil, dberrs.Classify(err)
	}

	return toDomain(dto)
}

func (r *GormCourierRepository) get(db *gorm.DB, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := db.Take(&dto, "id = ?", id.Value()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, dberrs.Classify(err)
	}

	return toDomain(dto)
}
