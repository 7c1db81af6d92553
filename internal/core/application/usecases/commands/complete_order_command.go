package commands

import (
	"errors"

	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/pkg/errs"
	"tokenorders/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand fulfils an order and awards tokensToAward to its owner.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	tokensToAward int64

	guard guard.ConstructorGuard
}

func NewCompleteOrderCommand(orderID kernel.UUID, tokensToAward int64) (CompleteOrderCommand, error) {
	cmd := CompleteOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTokensToAward(tokensToAward),
	); err != nil {
		return CompleteOrderCommand{}, err
	}

	return cmd, nil
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

func (c CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CompleteOrderCommand) TokensToAward() int64 {
	return c.tokensToAward
}

func (c *CompleteOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CompleteOrderCommand) setTokensToAward(tokens int64) error {
	if err := kernel.ValidateTokens("tokensToAward", tokens); err != nil {
		return err
	}
	c.tokensToAward = tokens
	return nil
}
