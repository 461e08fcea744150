package commands

import (
	"errors"

	"fooddispatch/internal/pkg/guard"
)

var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand registers a courier by name.
type CreateCourierCommand struct {
	name string

	guard guard.ConstructorGuard
}

func NewCreateCourierCommand(name string) (CreateCourierCommand, error) {
	cmd := CreateCourierCommand{guard: guard.NewConstructorGuard()}
	if err := setTrimmed(&cmd.name, "name", name); err != nil {
		return CreateCourierCommand{}, err
	}
	return cmd, nil
}

func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

func (c CreateCourierCommand) Name() string {
	return c.name
}
