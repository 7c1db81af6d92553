package commands

import (
	"errors"
	"fmt"

	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/core/domain/model/order"
	"tokenorders/internal/pkg/errs"
	"tokenorders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errs.NewValueIsRequiredError(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// LineItemInput is one requested order line, before it has an identity.
type LineItemInput struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateOrderCommand asks to debit tokensSpent from an account and create an
// order for it in one step.
//
// Example:
//
//	cmd, err := commands.NewCreateOrderCommand(
//	    kernel.NewUUID(), accountID, decimal.NewFromInt(50),
//	    []commands.LineItemInput{{Name: "Sword", Quantity: 1, UnitPrice: decimal.NewFromInt(50)}},
//	    40, order.Details{}, "checkout-42",
//	)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	accountID      kernel.UUID
	amount         decimal.Decimal
	lineItems      []order.LineItem
	tokensSpent    int64
	details        order.Details
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates identifiers and builds the line items.
// Amount and detail rules are enforced again by order.NewOrder.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	accountID kernel.UUID,
	amount decimal.Decimal,
	items []LineItemInput,
	tokensSpent int64,
	details order.Details,
	idempotencyKey string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		amount:         amount,
		details:        details,
		idempotencyKey: idempotencyKey,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAccountID(accountID),
		cmd.setLineItems(items),
		cmd.setTokensSpent(tokensSpent),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) AccountID() kernel.UUID {
	return c.accountID
}

func (c CreateOrderCommand) Amount() decimal.Decimal {
	return c.amount
}

func (c CreateOrderCommand) LineItems() []order.LineItem {
	items := make([]order.LineItem, len(c.lineItems))
	copy(items, c.lineItems)
	return items
}

func (c CreateOrderCommand) TokensSpent() int64 {
	return c.tokensSpent
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

// IdempotencyKey is empty when the caller did not supply one.
func (c CreateOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setAccountID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("accountID", err)
	}
	c.accountID = id
	return nil
}

func (c *CreateOrderCommand) setLineItems(inputs []LineItemInput) error {
	if len(inputs) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}

	items := make([]order.LineItem, 0, len(inputs))
	for i, in := range inputs {
		item, err := order.NewLineItem(kernel.NewUUID(), in.Name, in.Quantity, in.UnitPrice)
		if err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lineItems[%d]", i), err)
		}
		items = append(items, item)
	}
	c.lineItems = items
	return nil
}

func (c *CreateOrderCommand) setTokensSpent(tokens int64) error {
	if err := kernel.ValidateTokens("tokensSpent", tokens); err != nil {
		return err
	}
	c.tokensSpent = tokens
	return nil
}
