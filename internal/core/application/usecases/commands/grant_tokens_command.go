package commands

import (
	"errors"
	"fmt"

	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/pkg/errs"
	"tokenorders/internal/pkg/guard"
)

var ErrGrantTokensCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"GrantTokensCommand must be created via NewGrantTokensCommand constructor",
)

// GrantTokensCommand credits tokens to an account outside of any order, for
// operator adjustments and promotions.
type GrantTokensCommand struct { //nolint:recvcheck //using for validation
	accountID kernel.UUID
	amount    int64

	guard guard.ConstructorGuard
}

func NewGrantTokensCommand(accountID kernel.UUID, amount int64) (GrantTokensCommand, error) {
	cmd := GrantTokensCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setAccountID(accountID),
		cmd.setAmount(amount),
	); err != nil {
		return GrantTokensCommand{}, err
	}

	return cmd, nil
}

func (c GrantTokensCommand) Validate() error {
	return c.guard.Validate(ErrGrantTokensCommandIsNotConstructed)
}

func (c GrantTokensCommand) AccountID() kernel.UUID {
	return c.accountID
}

func (c GrantTokensCommand) Amount() int64 {
	return c.amount
}

func (c *GrantTokensCommand) setAccountID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.accountID = id
	return nil
}

func (c *GrantTokensCommand) setAmount(amount int64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%d is not greater than 0", amount))
	}
	c.amount = amount
	return nil
}
