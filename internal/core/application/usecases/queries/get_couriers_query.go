package queries

import (
	"errors"
	"time"

	"fooddispatch/internal/pkg/guard"
)

const (
	MaxCouriersListed   = 200
	CouriersLoadListing = 50
)

var ErrGetCouriersQueryIsNotConstructed = errors.New(
	"GetCouriersQuery must be created via NewGetAllCouriersQuery or NewGetCouriersLoadQuery",
)

type couriersOrder int

const (
	newestFirst couriersOrder = iota + 1
	busiestFirst
)

// GetCouriersQuery lists couriers either for the registry (newest first,
// up to MaxCouriersListed) or for the load board (highest load first, then
// by name, up to CouriersLoadListing).
type GetCouriersQuery struct {
	order couriersOrder
	limit int

	guard guard.ConstructorGuard
}

// NewGetAllCouriersQuery builds the registry listing.
func NewGetAllCouriersQuery() GetCouriersQuery {
	return GetCouriersQuery{order: newestFirst, limit: MaxCouriersListed, guard: guard.NewConstructorGuard()}
}

// NewGetCouriersLoadQuery builds the load board listing.
func NewGetCouriersLoadQuery() GetCouriersQuery {
	return GetCouriersQuery{order: busiestFirst, limit: CouriersLoadListing, guard: guard.NewConstructorGuard()}
}

func (q GetCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetCouriersQueryIsNotConstructed)
}

// CourierView is the read model of one courier.
type CourierView struct {
	ID          string
	Name        string
	IsActive    bool
	CurrentLoad int
	CreatedAt   time.Time
}
