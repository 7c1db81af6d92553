package order

import (
	"errors"
	"fmt"
	"time"

	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// MaxMoney is the largest amount or unit price an order can carry.
var MaxMoney = decimal.New(999999999999, -MoneyScale)

const (
	// MoneyScale is the number of fractional digits stored for currency amounts.
	MoneyScale = 2

	maxIdempotencyKeyLength = 128
	maxDetailLength         = 2000
)

// Details holds the free-text fields a customer may attach to an order.
type Details struct {
	DeliveryAddress     string
	Notes               string
	SpecialInstructions string
}

func (d Details) validate() error {
	return errors.Join(
		validateDetailLength("deliveryAddress", d.DeliveryAddress),
		validateDetailLength("notes", d.Notes),
		validateDetailLength("specialInstructions", d.SpecialInstructions),
	)
}

// Option configures optional order attributes at creation time.
type Option func(*Order) error

// WithDetails attaches delivery address, notes and special instructions.
func WithDetails(d Details) Option {
	return func(o *Order) error {
		if err := d.validate(); err != nil {
			return err
		}
		o.details = d
		return nil
	}
}

// WithIdempotencyKey records the caller-supplied key that identifies one
// logical creation attempt. An empty key is ignored.
func WithIdempotencyKey(key string) Option {
	return func(o *Order) error {
		if len(key) > maxIdempotencyKeyLength {
			return errs.NewValueIsOutOfRangeError("idempotencyKey length", len(key), 1, maxIdempotencyKeyLength)
		}
		o.idempotencyKey = key
		return nil
	}
}

// Order is the aggregate root of the order lifecycle.
//
// Invariants:
//   - amount is positive, tokensSpent is non-negative and never changes
//   - lineItems is non-empty and never changes
//   - tokensAwarded is zero until Complete and written exactly once
//   - completed is true iff status is Fulfilled, and then completedAt is set
type Order struct {
	id             kernel.UUID
	accountID      kernel.UUID
	amount         decimal.Decimal
	status         Status
	tokensSpent    int64
	tokensAwarded  int64
	completed      bool
	completedAt    *time.Time
	lineItems      []LineItem
	details        Details
	idempotencyKey string
	createdAt      time.Time

	isConstructed bool
}

// NewOrder validates creation input and returns a pending order.
//
// It does not touch the ledger: debiting tokensSpent from the owning account
// is done by the caller within the same unit of work.
//
// Example:
//
//	item, _ := order.NewLineItem(kernel.NewUUID(), "Sword", 1, decimal.NewFromInt(50))
//	o, err := order.NewOrder(kernel.NewUUID(), accountID, decimal.NewFromInt(50),
//	    []order.LineItem{item}, 40, time.Now())
func NewOrder(
	id kernel.UUID,
	accountID kernel.UUID,
	amount decimal.Decimal,
	lineItems []LineItem,
	tokensSpent int64,
	createdAt time.Time,
	opts ...Option,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}

	errList := []error{
		o.setID(id),
		o.setAccountID(accountID),
		o.setAmount(amount),
		o.setLineItems(lineItems),
		o.setTokensSpent(tokensSpent),
	}
	for _, opt := range opts {
		errList = append(errList, opt(o))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return o, nil
}

// State is the full persisted state of an order, used to restore it.
type State struct {
	ID             kernel.UUID
	AccountID      kernel.UUID
	Amount         decimal.Decimal
	Status         Status
	TokensSpent    int64
	TokensAwarded  int64
	Completed      bool
	CompletedAt    *time.Time
	LineItems      []LineItem
	Details        Details
	IdempotencyKey string
	CreatedAt      time.Time
}

// RestoreOrder rebuilds an order from persistence and checks that the stored
// completion columns are mutually consistent.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		status:         s.Status,
		tokensAwarded:  s.TokensAwarded,
		completed:      s.Completed,
		completedAt:    s.CompletedAt,
		details:        s.Details,
		idempotencyKey: s.IdempotencyKey,
		createdAt:      s.CreatedAt,
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setAccountID(s.AccountID),
		o.setAmount(s.Amount),
		o.setLineItems(s.LineItems),
		o.setTokensSpent(s.TokensSpent),
		s.Status.Validate(),
		kernel.ValidateTokens("tokensAwarded", s.TokensAwarded),
		validateCompletion(s),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) AccountID() kernel.UUID {
	return o.accountID
}

func (o *Order) Amount() decimal.Decimal {
	return o.amount
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) TokensSpent() int64 {
	return o.tokensSpent
}

func (o *Order) TokensAwarded() int64 {
	return o.tokensAwarded
}

func (o *Order) IsCompleted() bool {
	return o.completed
}

// CompletedAt returns nil until the order is completed.
func (o *Order) CompletedAt() *time.Time {
	if o.completedAt == nil {
		return nil
	}
	at := *o.completedAt
	return &at
}

// LineItems returns a copy of the order lines.
func (o *Order) LineItems() []LineItem {
	items := make([]LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

func (o *Order) Details() Details {
	return o.details
}

func (o *Order) IdempotencyKey() string {
	return o.idempotencyKey
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ItemsTotal sums quantity × unit price over all line items.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.lineItems {
		total = total.Add(item.Subtotal())
	}
	return total
}

// IsReconciled reports whether the line items add up to the recorded amount.
// The result is informational; creation does not require it.
func (o *Order) IsReconciled() bool {
	return o.ItemsTotal().Equal(o.amount)
}

// TransitionTo moves the order to target if the lifecycle allows it.
//
// Moving to Fulfilled this way marks the order completed at the given time but
// awards no tokens; tokens are only awarded through Complete.
func (o *Order) TransitionTo(target Status, at time.Time) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	if newStatus == Fulfilled {
		o.markCompleted(at)
	}
	return nil
}

// Complete fulfils the order and records the tokens to award.
//
// Returns ErrOrderAlreadyCompleted if the order is already completed, and an
// InvalidTransitionError if it was cancelled. Crediting the owning account
// is the caller's responsibility inside the same unit of work.
func (o *Order) Complete(tokensToAward int64, at time.Time) error {
	if o.completed {
		return ErrOrderAlreadyCompleted
	}
	if o.status == Cancelled {
		return NewInvalidTransitionError(o.status, Fulfilled)
	}
	if err := kernel.ValidateTokens("tokensToAward", tokensToAward); err != nil {
		return err
	}

	o.status = Fulfilled
	o.tokensAwarded = tokensToAward
	o.markCompleted(at)
	return nil
}

func (o *Order) markCompleted(at time.Time) {
	o.completed = true
	o.completedAt = &at
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setAccountID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("accountID", err)
	}
	o.accountID = id
	return nil
}

func (o *Order) setAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	if err := validateMoney("amount", amount); err != nil {
		return err
	}
	o.amount = amount
	return nil
}

func (o *Order) setLineItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lineItems[%d]", i), err)
		}
	}
	o.lineItems = make([]LineItem, len(items))
	copy(o.lineItems, items)
	return nil
}

func (o *Order) setTokensSpent(tokens int64) error {
	if err := kernel.ValidateTokens("tokensSpent", tokens); err != nil {
		return err
	}
	o.tokensSpent = tokens
	return nil
}

func validateCompletion(s State) error {
	if s.Completed != (s.Status == Fulfilled) {
		return errs.NewValueIsInvalidErrorWithCause(
			"completed",
			fmt.Errorf("completed=%t does not match status %s", s.Completed, s.Status),
		)
	}
	if s.Completed != (s.CompletedAt != nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"completedAt",
			errors.New("completedAt must be set iff the order is completed"),
		)
	}
	if !s.Completed && s.TokensAwarded != 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"tokensAwarded",
			fmt.Errorf("%d tokens awarded to an uncompleted order", s.TokensAwarded),
		)
	}
	return nil
}

func validateDetailLength(paramName, value string) error {
	if len(value) > maxDetailLength {
		return errs.NewValueIsOutOfRangeError(paramName+" length", len(value), 0, maxDetailLength)
	}
	return nil
}

func validateMoney(paramName string, d decimal.Decimal) error {
	if !d.Equal(d.Truncate(MoneyScale)) {
		return errs.NewValueIsInvalidErrorWithCause(
			paramName,
			fmt.Errorf("%s has more than %d fractional digits", d, MoneyScale),
		)
	}
	if d.GreaterThan(MaxMoney) {
		return errs.NewValueIsOutOfRangeError(paramName, d.String(), "0", MaxMoney.StringFixed(MoneyScale))
	}
	return nil
}
