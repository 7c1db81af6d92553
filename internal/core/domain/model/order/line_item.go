package order

import (
	"errors"
	"fmt"
	"strings"

	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/pkg/errs"
	"tokenorders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

const maxLineItemNameLength = 255

// LineItem is an immutable order line. The set of line items of an order is
// fixed when the order is created.
type LineItem struct {
	id        kernel.UUID
	name      string
	quantity  int
	unitPrice decimal.Decimal

	guard guard.ConstructorGuard
}

// NewLineItem validates a line: non-empty name, positive quantity and a
// non-negative unit price.
func NewLineItem(id kernel.UUID, name string, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	item := LineItem{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

func (li LineItem) ID() kernel.UUID {
	return li.id
}

func (li LineItem) Name() string {
	return li.name
}

func (li LineItem) Quantity() int {
	return li.quantity
}

func (li LineItem) UnitPrice() decimal.Decimal {
	return li.unitPrice
}

// Subtotal is quantity × unit price.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.unitPrice.Mul(decimal.NewFromInt(int64(li.quantity)))
}

func (li *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.id = id
	return nil
}

func (li *LineItem) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if len(name) > maxLineItemNameLength {
		return errs.NewValueIsOutOfRangeError("name length", len(name), 1, maxLineItemNameLength)
	}
	li.name = name
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	li.quantity = quantity
	return nil
}

func (li *LineItem) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%s is less than 0", unitPrice))
	}
	if err := validateMoney("unitPrice", unitPrice); err != nil {
		return err
	}
	li.unitPrice = unitPrice
	return nil
}
