package commands

import (
	"context"
	"time"

	"tokenorders/internal/core/domain/model/order"
)

// TransitionOrderCommandHandler applies one lifecycle step under a row lock,
// so two concurrent transitions of the same order are serialised and the
// second one is validated against the first one's result.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	options    handlerOptions
}

func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory, opts ...Option) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		options:    newHandlerOptions(opts),
	}
}

// Handle returns the updated order. A transition to fulfilled marks the order
// completed but awards no tokens.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (o *order.Order, err error) {
	defer h.options.observe("transition_order", time.Now(), &err)
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := h.options.bound(ctx)
	defer cancel()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()

	o, err = orders.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.TransitionTo(cmd.Target(), h.options.now()); err != nil {
		return nil, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
