package commands

import (
	"errors"
	"strings"

	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/pkg/errs"
	"fooddispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents an intake request for a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("Alice", "1 Main St", "+15550100", []byte(`[{"sku":"pizza"}]`))
//	if err != nil {
//	    return err // 400
//	}
//	res, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerName string
	address      string
	phone        string
	items        order.Items

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates contact fields (trimmed, non-empty) and
// the items array. All failures are reported together.
func NewCreateOrderCommand(customerName, address, phone string, items []byte) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		setTrimmed(&cmd.customerName, "customer_name", customerName),
		setTrimmed(&cmd.address, "address", address),
		setTrimmed(&cmd.phone, "phone", phone),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerName() string { return c.customerName }
func (c CreateOrderCommand) Address() string      { return c.address }
func (c CreateOrderCommand) Phone() string        { return c.phone }
func (c CreateOrderCommand) Items() order.Items   { return c.items }

func (c *CreateOrderCommand) setItems(raw []byte) error {
	items, err := order.NewItems(raw)
	if err != nil {
		return err
	}
	c.items = items
	return nil
}

func setTrimmed(dst *string, name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*dst = value
	return nil
}
