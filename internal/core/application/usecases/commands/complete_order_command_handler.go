package commands

import (
	"context"
	"time"

	"tokenorders/internal/core/domain/model/account"
	"tokenorders/internal/core/domain/model/order"
)

// CompleteOrderResult is the completed order and its owner's new balance.
type CompleteOrderResult struct {
	Order   *order.Order
	Balance int64
}

// CompleteOrderCommandHandler is complete-and-award: the order status, the
// credit and the completion counter are committed together.
//
// The order row is locked before the completed flag is read, so of two
// concurrent completions exactly one awards tokens and the other fails with
// order.ErrOrderAlreadyCompleted.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
	options    handlerOptions
}

func NewCompleteOrderCommandHandler(uowFactory UoWFactory, opts ...Option) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		options:    newHandlerOptions(opts),
	}
}

func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (res CompleteOrderResult, err error) {
	defer h.options.observe("complete_order", time.Now(), &err)
	if err = cmd.Validate(); err != nil {
		return CompleteOrderResult{}, err
	}

	ctx, cancel := h.options.bound(ctx)
	defer cancel()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CompleteOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	accounts := uow.AccountRepository()

	o, err := orders.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return CompleteOrderResult{}, err
	}

	if err = o.Complete(cmd.TokensToAward(), h.options.now()); err != nil {
		return CompleteOrderResult{}, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return CompleteOrderResult{}, err
	}

	balance, err := accounts.Credit(ctx, o.AccountID(), o.TokensAwarded())
	if err != nil {
		return CompleteOrderResult{}, err
	}

	if err = accounts.RecordMetrics(ctx, o.AccountID(), account.CompletionMetrics()); err != nil {
		return CompleteOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CompleteOrderResult{}, err
	}

	return CompleteOrderResult{Order: o, Balance: balance}, nil
}
