// Package ports defines the contracts between the application core and its
// storage adapters.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one store-level transaction spanning the account ledger and
// the order repository. Changes become visible only on Commit.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// AccountRepository returns the ledger bound to the current transaction.
	AccountRepository() AccountRepository

	// OrderRepository returns the order repository bound to the current transaction.
	OrderRepository() OrderRepository
}
