package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/errs"
	"fooddispatch/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned by Validate for a zero-value Order.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root for a customer order and its delivery lifecycle.
//
// Invariants:
//   - status is always a valid Status
//   - courierID is set iff the order reached ASSIGNED at some point; it is
//     kept as history after cancellation
//   - updatedAt advances on every status transition
//
// Transition methods only change the in-memory aggregate. Persisting a
// transition is a conditional write keyed on the status the order had when
// it was read, see ports.OrderRepository.UpdateIfStatus.
type Order struct {
	id           kernel.UUID
	customerName string
	address      string
	phone        string
	items        Items
	status       Status
	courierID    *kernel.UUID
	createdAt    time.Time
	updatedAt    time.Time

	guard guard.ConstructorGuard
}

// Snapshot carries the persisted state of an order for RestoreOrder.
type Snapshot struct {
	ID           kernel.UUID
	CustomerName string
	Address      string
	Phone        string
	Items        Items
	Status       Status
	CourierID    *kernel.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewOrder creates an order in status NEW.
//
// Parameters:
//   - customerName, address, phone: contact details; surrounding whitespace
//     is trimmed and each must be non-empty afterwards
//   - items: the basket, see NewItems
//
// Returns:
//   - *Order: the new aggregate with a fresh ID
//   - error: joined *errs.ValueIsRequiredError values naming every blank field
//
// Example:
//
//	items, _ := order.NewItems([]byte(`[{"sku":"pizza","qty":1}]`))
//	o, err := order.NewOrder("Alice", "1 Main St", "+100000000", items)
func NewOrder(customerName, address, phone string, items Items) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		id:        kernel.NewUUID(),
		items:     items,
		status:    New,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setRequired(&o.customerName, "customer_name", customerName),
		setRequired(&o.address, "address", address),
		setRequired(&o.phone, "phone", phone),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an aggregate from storage and checks that the
// persisted state satisfies the aggregate invariants.
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := errors.Join(s.ID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	if s.CourierID != nil {
		if err := s.CourierID.Validate(); err != nil {
			return nil, err
		}
	}
	if err := validateCourierForStatus(s.Status, s.CourierID != nil); err != nil {
		return nil, err
	}

	return &Order{
		id:           s.ID,
		customerName: s.CustomerName,
		address:      s.Address,
		phone:        s.Phone,
		items:        s.Items,
		status:       s.Status,
		courierID:    s.CourierID,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate returns ErrOrderIsNotConstructed unless the order came from a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID         { return o.id }
func (o *Order) CustomerName() string    { return o.customerName }
func (o *Order) Address() string         { return o.address }
func (o *Order) Phone() string           { return o.phone }
func (o *Order) Items() Items            { return o.items }
func (o *Order) Status() Status          { return o.status }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) UpdatedAt() time.Time    { return o.updatedAt }
func (o *Order) CourierID() *kernel.UUID { return o.courierID }

// Assign moves a NEW order to ASSIGNED and records the courier.
//
// Returns:
//   - *errs.ValueIsRequiredError when courierID is zero
//   - *errs.ConflictError when the order is not NEW
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	next, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.courierID = &courierID
	o.moveTo(next)
	return nil
}

// Start moves an ASSIGNED order to IN_PROGRESS.
func (o *Order) Start() error {
	next, err := o.status.Start()
	if err != nil {
		return err
	}
	o.moveTo(next)
	return nil
}

// Complete moves an IN_PROGRESS order to DELIVERED. The caller releases one
// unit of load on CourierID().
func (o *Order) Complete() error {
	next, err := o.status.Complete()
	if err != nil {
		return err
	}
	o.moveTo(next)
	return nil
}

// Cancel moves a non-terminal order to CANCELLED and returns the status it
// had before. When prior.HoldsCourierLoad() the caller releases one unit of
// load on CourierID(); the courier reference itself is kept.
func (o *Order) Cancel() (prior Status, err error) {
	next, err := o.status.Cancel()
	if err != nil {
		return Unknown, err
	}
	prior = o.status
	o.moveTo(next)
	return prior, nil
}

func (o *Order) moveTo(next Status) {
	o.status = next
	now := time.Now().UTC()
	if !now.After(o.updatedAt) {
		now = o.updatedAt.Add(time.Microsecond)
	}
	o.updatedAt = now
}

func setRequired(dst *string, name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*dst = value
	return nil
}

func validateCourierForStatus(s Status, hasCourier bool) error {
	switch {
	case s == New && hasCourier:
		return errs.NewValueIsInvalidErrorWithCause("assigned_courier_id", fmt.Errorf("%s order cannot have a courier", s))
	case (s.HoldsCourierLoad() || s == Delivered) && !hasCourier:
		return errs.NewValueIsInvalidErrorWithCause("assigned_courier_id", fmt.Errorf("%s order must have a courier", s))
	}
	return nil
}
