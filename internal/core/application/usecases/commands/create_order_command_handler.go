package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tokenorders/internal/core/domain/model/account"
	"tokenorders/internal/core/domain/model/order"
	"tokenorders/internal/core/ports"
	"tokenorders/internal/pkg/errs"
)

// ErrIdempotencyKeyReused is the cause reported when a key is presented again
// with a different amount, token spend or line count.
var ErrIdempotencyKeyReused = errors.New("idempotency key reused with a different request")

// CreateOrderResult is the committed order and the balance left after the debit.
// Replayed is set when an earlier order with the same idempotency key was
// returned and nothing was debited.
type CreateOrderResult struct {
	Order    *order.Order
	Balance  int64
	Replayed bool
}

// CreateOrderCommandHandler spends tokens and creates the order atomically:
// either the order with its items, the debit and the spend metrics are all
// committed, or none of them are.
//
// Example:
//
//	handler := commands.NewCreateOrderCommandHandler(uowFactory, commands.WithTimeout(5*time.Second))
//	res, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, account.ErrInsufficientBalance):
//	    // nothing was created
//	case err != nil:
//	    return err
//	}
//	fmt.Println(res.Order.ID(), res.Balance)
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	options    handlerOptions
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, opts ...Option) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		options:    newHandlerOptions(opts),
	}
}

// Handle runs the spend-and-create transaction. When two requests with the
// same idempotency key race, the loser's transaction is rolled back and the
// winner's order is returned as a replay.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (res CreateOrderResult, err error) {
	defer h.options.observe("create_order", time.Now(), &err)
	if err = cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	ctx, cancel := h.options.bound(ctx)
	defer cancel()

	res, err = h.create(ctx, cmd)
	if errors.Is(err, ports.ErrIdempotencyKeyConflict) {
		return h.replay(ctx, cmd)
	}
	return res, err
}

func (h CreateOrderCommandHandler) create(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	accounts := uow.AccountRepository()
	orders := uow.OrderRepository()

	if key := cmd.IdempotencyKey(); key != "" {
		existing, err := orders.FindByIdempotencyKey(ctx, cmd.AccountID(), key)
		switch {
		case err == nil:
			return h.replayed(ctx, accounts, existing, cmd)
		case !errors.Is(err, order.ErrOrderNotFound):
			return CreateOrderResult{}, err
		}
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.AccountID(),
		cmd.Amount(),
		cmd.LineItems(),
		cmd.TokensSpent(),
		h.options.now(),
		order.WithDetails(cmd.Details()),
		order.WithIdempotencyKey(cmd.IdempotencyKey()),
	)
	if err != nil {
		return CreateOrderResult{}, err
	}

	// Insert before debiting: a same-key race is settled by the unique index,
	// never by the remaining balance.
	if err = orders.Add(ctx, newOrder); err != nil {
		return CreateOrderResult{}, err
	}

	balance, err := accounts.Debit(ctx, cmd.AccountID(), cmd.TokensSpent())
	if err != nil {
		return CreateOrderResult{}, err
	}

	spend, err := account.SpendMetrics(newOrder.Amount())
	if err != nil {
		return CreateOrderResult{}, err
	}
	if err = accounts.RecordMetrics(ctx, cmd.AccountID(), spend); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{Order: newOrder, Balance: balance}, nil
}

// replay reads the order committed by a concurrent request with the same key.
func (h CreateOrderCommandHandler) replay(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	existing, err := uow.OrderRepository().FindByIdempotencyKey(ctx, cmd.AccountID(), cmd.IdempotencyKey())
	if err != nil {
		return CreateOrderResult{}, err
	}

	res, err := h.replayed(ctx, uow.AccountRepository(), existing, cmd)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}
	return res, nil
}

func (h CreateOrderCommandHandler) replayed(
	ctx context.Context,
	accounts ports.AccountRepository,
	existing *order.Order,
	cmd CreateOrderCommand,
) (CreateOrderResult, error) {
	if !existing.Amount().Equal(cmd.Amount()) ||
		existing.TokensSpent() != cmd.TokensSpent() ||
		len(existing.LineItems()) != len(cmd.LineItems()) {
		return CreateOrderResult{}, errs.NewValueIsInvalidErrorWithCause(
			"idempotencyKey",
			fmt.Errorf("%w: %s", ErrIdempotencyKeyReused, cmd.IdempotencyKey()),
		)
	}

	acc, err := accounts.Get(ctx, existing.AccountID())
	if err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{Order: existing, Balance: acc.Balance(), Replayed: true}, nil
}
