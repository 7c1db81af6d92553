package commands

import (
	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/pkg/errs"
	"tokenorders/internal/pkg/guard"
)

var ErrOpenAccountCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"OpenAccountCommand must be created via NewOpenAccountCommand constructor",
)

// OpenAccountCommand registers a ledger account with a zero balance.
type OpenAccountCommand struct { //nolint:recvcheck //using for validation
	accountID kernel.UUID

	guard guard.ConstructorGuard
}

func NewOpenAccountCommand(accountID kernel.UUID) (OpenAccountCommand, error) {
	if err := accountID.Validate(); err != nil {
		return OpenAccountCommand{}, err
	}
	return OpenAccountCommand{accountID: accountID, guard: guard.NewConstructorGuard()}, nil
}

func (c OpenAccountCommand) Validate() error {
	return c.guard.Validate(ErrOpenAccountCommandIsNotConstructed)
}

func (c OpenAccountCommand) AccountID() kernel.UUID {
	return c.accountID
}
