package courier

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/errs"
	"fooddispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when a courier is registered without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using a zero-value Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")
)

// AvailabilityConflict is the subject of conflicts raised for an inactive courier.
const AvailabilityConflict = "courier"

// Courier is the aggregate root for a delivery courier and its active load.
//
// The load is the number of orders currently assigned to the courier in
// status ASSIGNED or IN_PROGRESS. It is a counter, not a list: which orders
// make up the load is recorded on the orders themselves.
//
// Business rules:
//   - Courier must have a valid UUID and a non-empty name
//   - Load never drops below zero; releasing an empty courier is a no-op
//   - Only an active courier can take an order
//   - A courier is never deleted, only deactivated
//
// Example usage:
//
//	c, err := courier.NewCourier("Dana")
//	if err != nil {
//	    return err
//	}
//	if err := c.TakeOrder(); err != nil {
//	    // inactive courier: *errs.ConflictError
//	}
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// isActive tells whether the courier may receive new orders
	isActive bool
	// currentLoad counts orders in ASSIGNED or IN_PROGRESS held by the courier
	currentLoad int
	// createdAt is the registration time, the tie-breaker for selection
	createdAt time.Time
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier registers a courier that is active and carries no orders.
//
// Parameters:
//   - name: Human-readable name; surrounding whitespace is trimmed
//
// Returns:
//   - *Courier: A courier with a fresh ID, active, with load 0
//   - error: ErrNameIsRequired if name is blank
//
// Example:
//
//	c, err := courier.NewCourier("Dana")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(c.IsActive(), c.CurrentLoad()) // true 0
func NewCourier(name string) (*Courier, error) {
	c := &Courier{
		id:        kernel.NewUUID(),
		isActive:  true,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := c.setName(name); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier from persistent storage.
//
// Parameters:
//   - id: Unique identifier of the courier
//   - name: Human-readable name
//   - isActive: Whether the courier accepts new orders
//   - currentLoad: Persisted load; must not be negative
//   - createdAt: Registration time
//
// Returns:
//   - *Courier: Restored aggregate
//   - error: Aggregated validation errors for every invalid field
//
// Example:
//
//	c, err := courier.RestoreCourier(id, "Dana", true, 2, createdAt)
//	if err != nil {
//	    return fmt.Errorf("restore courier: %w", err)
//	}
func RestoreCourier(id kernel.UUID, name string, isActive bool, currentLoad int, createdAt time.Time) (*Courier, error) {
	c := &Courier{
		isActive:  isActive,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setLoad(currentLoad),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks that the courier was built by a constructor.
//
// Returns:
//   - error: ErrCourierIsNotConstructed for a nil or zero-value courier
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the unique identifier of the courier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the human-readable name of the courier.
func (c *Courier) Name() string {
	return c.name
}

// IsActive reports whether the courier may receive new orders.
func (c *Courier) IsActive() bool {
	return c.isActive
}

// CurrentLoad returns the number of orders the courier currently holds.
func (c *Courier) CurrentLoad() int {
	return c.currentLoad
}

// CreatedAt returns the registration time.
func (c *Courier) CreatedAt() time.Time {
	return c.createdAt
}

// CanTakeOrder checks whether the courier may be assigned a new order.
//
// Returns:
//   - error: *errs.ConflictError when the courier is inactive, nil otherwise
//
// Example:
//
//	if err := c.CanTakeOrder(); err != nil {
//	    return err // surfaced as 409 by the HTTP adapter
//	}
func (c *Courier) CanTakeOrder() error {
	if !c.isActive {
		return errs.NewConflictErrorWithCause(AvailabilityConflict, fmt.Errorf("courier %s is inactive", c.id))
	}
	return nil
}

// TakeOrder increments the load by one for a newly assigned order.
//
// Returns:
//   - error: *errs.ConflictError when the courier is inactive; load is unchanged
//
// State changes:
//   - currentLoad increases by exactly one
func (c *Courier) TakeOrder() error {
	if err := c.CanTakeOrder(); err != nil {
		return err
	}
	c.currentLoad++
	return nil
}

// ReleaseOrder decrements the load by one when an order is delivered or
// cancelled after assignment. The load is floored at zero, so releasing more
// orders than were taken leaves the courier at zero rather than failing.
// Inactive couriers may still release orders.
//
// Returns:
//   - bool: false when the load was already zero and nothing changed
func (c *Courier) ReleaseOrder() bool {
	if c.currentLoad == 0 {
		return false
	}
	c.currentLoad--
	return true
}

// Activate lets the courier receive new orders again.
func (c *Courier) Activate() {
	c.isActive = true
}

// Deactivate stops new assignments; orders already held are unaffected.
func (c *Courier) Deactivate() {
	c.isActive = false
}

// SetActive activates or deactivates the courier.
func (c *Courier) SetActive(active bool) {
	if active {
		c.Activate()
		return
	}
	c.Deactivate()
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setLoad(load int) error {
	if load < 0 {
		return errs.NewValueIsInvalidErrorWithCause("current_load", fmt.Errorf("%d is negative", load))
	}
	c.currentLoad = load
	return nil
}
