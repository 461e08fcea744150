package commands_test

import (
	"testing"
	"time"

	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func orderIn(t *testing.T, status order.Status, courierID *kernel.UUID) *order.Order {
	t.Helper()
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	o, err := order.RestoreOrder(order.Snapshot{
		ID:           kernel.NewUUID(),
		CustomerName: "Alice",
		Address:      "1 Main St",
		Phone:        "+15550100",
		Status:       status,
		CourierID:    courierID,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	})
	require.NoError(t, err)
	return o
}

func courierWith(t *testing.T, active bool, load int) *courier.Courier {
	t.Helper()
	c, err := courier.RestoreCourier(kernel.NewUUID(), "Dana", active, load, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return c
}
