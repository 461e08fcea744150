package commands_test

import (
	"errors"
	"testing"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/kernel"
	"fooddispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func courierMocks() (*MockCourierUoWFactory, *MockUoW, *MockCourierRepository) {
	factory := new(MockCourierUoWFactory)
	uow := new(MockUoW)
	repo := new(MockCourierRepository)
	factory.On("Create").Return(uow).Once()
	uow.On("CourierRepository").Return(repo).Maybe()
	return factory, uow, repo
}

func TestNewCreateCourierCommand(t *testing.T) {
	cmd, err := commands.NewCreateCourierCommand("  Dana ")
	require.NoError(t, err)
	assert.Equal(t, "Dana", cmd.Name())

	_, err = commands.NewCreateCourierCommand("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	var zero commands.CreateCourierCommand
	require.ErrorIs(t, zero.Validate(), commands.ErrCreateCourierCommandIsNotConstructed)
}

func TestCreateCourierCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewCreateCourierCommand("Dana")
	require.NoError(t, err)
	factory, uow, repo := courierMocks()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	// Act
	c, err := commands.NewCreateCourierCommandHandler(factory).Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Dana", c.Name())
	assert.True(t, c.IsActive())
	assert.Equal(t, 0, c.CurrentLoad())
	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestCreateCourierCommandHandler_Handle_RepositoryAddErrorWithRollbackError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, _ := commands.NewCreateCourierCommand("Dana")
	repoError := errors.New("repository add failed")
	factory, uow, repo := courierMocks()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*courier.Courier")).Return(repoError).Once(),
		uow.On("Rollback", ctx).Return(errors.New("rollback failed")).Once(),
	)

	// Act
	c, err := commands.NewCreateCourierCommandHandler(factory).Handle(ctx, cmd)

	// Assert
	// Should return the original repository error, not the rollback error
	require.ErrorIs(t, err, repoError)
	assert.Nil(t, c)
	uow.AssertExpectations(t)
}

func TestCreateCourierCommandHandler_Handle_InvalidCommand(t *testing.T) {
	factory := new(MockCourierUoWFactory)

	_, err := commands.NewCreateCourierCommandHandler(factory).Handle(t.Context(), commands.CreateCourierCommand{})

	require.ErrorIs(t, err, commands.ErrCreateCourierCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestSetCourierActiveCommandHandler_Handle(t *testing.T) {
	t.Run("deactivates under row lock", func(t *testing.T) {
		ctx := t.Context()
		c, _ := courier.NewCourier("Dana")
		cmd, err := commands.NewSetCourierActiveCommand(c.ID().String(), false)
		require.NoError(t, err)
		factory, uow, repo := courierMocks()

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			repo.On("GetForUpdate", ctx, c.ID()).Return(c, nil).Once(),
			repo.On("Update", ctx, c).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		err = commands.NewSetCourierActiveCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.False(t, c.IsActive())
		uow.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("unknown courier", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		cmd, _ := commands.NewSetCourierActiveCommand(id.String(), true)
		factory, uow, repo := courierMocks()
		uow.On("Begin", ctx).Return(nil).Once()
		repo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("courier", id)).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		err := commands.NewSetCourierActiveCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := commands.NewSetCourierActiveCommand("abc", true)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
