package account

import (
	"errors"
	"fmt"

	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/pkg/errs"
	"tokenorders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrMetricsIsNotConstructed = errors.New("Metrics must be created via NewMetrics constructor")

// Metrics is a set of lifetime counter values. It is used both for an
// account's totals and for the increments applied by RecordMetrics.
type Metrics struct {
	amountSpent     decimal.Decimal
	ordersCompleted int64
	tokensEarned    int64

	guard guard.ConstructorGuard
}

// NewMetrics validates that no component is negative.
func NewMetrics(amountSpent decimal.Decimal, ordersCompleted, tokensEarned int64) (Metrics, error) {
	if err := errors.Join(
		validateNonNegativeAmount("amountSpent", amountSpent),
		kernel.ValidateTokens("ordersCompleted", ordersCompleted),
		kernel.ValidateTokens("tokensEarned", tokensEarned),
	); err != nil {
		return Metrics{}, err
	}

	return Metrics{
		amountSpent:     amountSpent,
		ordersCompleted: ordersCompleted,
		tokensEarned:    tokensEarned,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// SpendMetrics is the increment recorded when an order of the given amount is placed.
func SpendMetrics(amount decimal.Decimal) (Metrics, error) {
	return NewMetrics(amount, 0, 0)
}

// CompletionMetrics is the increment recorded when an order is completed.
// Earned tokens are counted by the ledger credit, so only the order counter moves.
func CompletionMetrics() Metrics {
	return Metrics{amountSpent: decimal.Zero, ordersCompleted: 1, guard: guard.NewConstructorGuard()}
}

func (m Metrics) Validate() error {
	return m.guard.Validate(ErrMetricsIsNotConstructed)
}

func (m Metrics) AmountSpent() decimal.Decimal {
	return m.amountSpent
}

func (m Metrics) OrdersCompleted() int64 {
	return m.ordersCompleted
}

func (m Metrics) TokensEarned() int64 {
	return m.tokensEarned
}

func validateNonNegativeAmount(paramName string, d decimal.Decimal) error {
	if d.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%s is less than 0", d.String()))
	}
	return nil
}
