package commands

import (
	"context"
	"time"
)

type GrantTokensCommandHandler struct {
	uowFactory AccountUoWFactory
	options    handlerOptions
}

func NewGrantTokensCommandHandler(uowFactory AccountUoWFactory, opts ...Option) GrantTokensCommandHandler {
	return GrantTokensCommandHandler{
		uowFactory: uowFactory,
		options:    newHandlerOptions(opts),
	}
}

// Handle credits the account and returns its new balance. Granted tokens
// count towards the lifetime tokens earned.
func (h GrantTokensCommandHandler) Handle(ctx context.Context, cmd GrantTokensCommand) (balance int64, err error) {
	defer h.options.observe("grant_tokens", time.Now(), &err)
	if err = cmd.Validate(); err != nil {
		return 0, err
	}

	ctx, cancel := h.options.bound(ctx)
	defer cancel()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	balance, err = uow.AccountRepository().Credit(ctx, cmd.AccountID(), cmd.Amount())
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return balance, nil
}
