package commands

import (
	"context"
	"time"

	"tokenorders/internal/core/domain/model/account"
)

type OpenAccountCommandHandler struct {
	uowFactory AccountUoWFactory
	options    handlerOptions
}

func NewOpenAccountCommandHandler(uowFactory AccountUoWFactory, opts ...Option) OpenAccountCommandHandler {
	return OpenAccountCommandHandler{
		uowFactory: uowFactory,
		options:    newHandlerOptions(opts),
	}
}

// Handle creates the account. Opening an ID that already exists fails with a
// validation error and leaves the existing account untouched.
func (h OpenAccountCommandHandler) Handle(ctx context.Context, cmd OpenAccountCommand) (acc *account.Account, err error) {
	defer h.options.observe("open_account", time.Now(), &err)
	if err = cmd.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := h.options.bound(ctx)
	defer cancel()

	acc, err = account.NewAccount(cmd.AccountID(), h.options.now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AccountRepository().Add(ctx, acc); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return acc, nil
}
