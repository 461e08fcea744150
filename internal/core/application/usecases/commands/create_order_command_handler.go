package commands

import (
	"context"

	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/core/ports"

	"go.uber.org/zap"
)

// CreateOrderResult carries the stored order and whether its stream
// notification was appended.
type CreateOrderResult struct {
	Order     *order.Order
	Published bool
}

// CreateOrderCommandHandler stores a NEW order and announces it on the stream.
//
// The notification is appended only after the order row is committed, so the
// dispatcher never sees an id it cannot read. A failed append does not undo
// the order: it is logged, reported through Published, and the order stays
// NEW for an operator to assign.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *zap.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *zap.Logger,
) CreateOrderCommandHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	o, err := order.NewOrder(cmd.CustomerName(), cmd.Address(), cmd.Phone(), cmd.Items())
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = h.store(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	if err = h.publisher.PublishOrderCreated(ctx, o.ID()); err != nil {
		h.logger.Error("order stored but not announced",
			zap.String("order_id", o.ID().String()),
			zap.Error(err),
		)
		return CreateOrderResult{Order: o}, nil
	}

	return CreateOrderResult{Order: o, Published: true}, nil
}

func (h CreateOrderCommandHandler) store(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
