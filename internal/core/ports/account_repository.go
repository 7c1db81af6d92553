package ports

import (
	"context"

	"tokenorders/internal/core/domain/model/account"
	"tokenorders/internal/core/domain/model/kernel"
)

// AccountRepository is the Account Ledger. Every mutating method is a single
// atomic statement, so a caller inside a unit of work never observes a
// partially applied credit, debit or metrics update.
type AccountRepository interface {
	// Add persists a newly opened account.
	Add(ctx context.Context, aggregate *account.Account) error

	// Get returns the account snapshot or a not-found error wrapping
	// account.ErrAccountNotFound.
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)

	// Credit increases balance and lifetime tokens earned by amount (>= 0)
	// and returns the new balance.
	Credit(ctx context.Context, id kernel.UUID, amount int64) (int64, error)

	// Debit decreases balance by amount (>= 0) only if the balance covers it,
	// checking and applying in one conditional update. Returns the new
	// balance, or account.InsufficientBalanceError with nothing changed.
	Debit(ctx context.Context, id kernel.UUID, amount int64) (int64, error)

	// RecordMetrics increments the three lifetime counters by delta.
	RecordMetrics(ctx context.Context, id kernel.UUID, delta account.Metrics) error
}
