package postgres

import (
	"context"
	"fmt"

	"fooddispatch/internal/adapters/out/postgres/courierrepo"
	"fooddispatch/internal/adapters/out/postgres/dberrs"
	"fooddispatch/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or extends the couriers and orders tables with their
// indexes. It is idempotent and runs at startup.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&courierrepo.CourierDTO{}, &orderrepo.OrderDTO{}); err != nil {
		return fmt.Errorf("migrate schema: %w", dberrs.Classify(err))
	}
	return nil
}
