package account

import (
	"errors"
	"fmt"
	"time"

	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount or RestoreAccount")

// Account is a snapshot of a ledger account.
//
// Invariants:
//   - balance is never negative
//   - lifetime counters are never negative
type Account struct {
	id        kernel.UUID
	balance   int64
	metrics   Metrics
	createdAt time.Time

	isConstructed bool
}

// NewAccount opens an account with an empty balance and zero lifetime metrics.
func NewAccount(id kernel.UUID, createdAt time.Time) (*Account, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	zero, _ := NewMetrics(decimal.Zero, 0, 0)
	return &Account{
		id:            id,
		metrics:       zero,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreAccount rebuilds an account from persisted state.
func RestoreAccount(id kernel.UUID, balance int64, metrics Metrics, createdAt time.Time) (*Account, error) {
	if err := errors.Join(
		id.Validate(),
		metrics.Validate(),
		validateBalance(balance),
	); err != nil {
		return nil, err
	}

	return &Account{
		id:            id,
		balance:       balance,
		metrics:       metrics,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (a *Account) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAccountIsNotConstructed
	}
	return nil
}

func (a *Account) ID() kernel.UUID {
	return a.id
}

func (a *Account) Balance() int64 {
	return a.balance
}

func (a *Account) Metrics() Metrics {
	return a.metrics
}

func (a *Account) CreatedAt() time.Time {
	return a.createdAt
}

func validateBalance(balance int64) error {
	if balance < 0 {
		return errs.NewValueIsInvalidErrorWithCause("balance", fmt.Errorf("%d is less than 0", balance))
	}
	return nil
}
