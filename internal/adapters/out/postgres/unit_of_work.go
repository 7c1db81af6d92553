// Package postgres implements the unit of work over GORM transactions.
//
// Every unit of work is one PostgreSQL transaction. Lock waits and single
// statements inside it are bounded by lock_timeout and statement_timeout,
// so contention surfaces as errs.ErrBusy instead of blocking the caller.
//
//	factory := postgres.NewGormUnitOfWorkFactory(db, postgres.Timeouts{Lock: time.Second})
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if _, err := uow.AccountRepository().Debit(ctx, accountID, 40); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"fmt"
	"time"

	"tokenorders/internal/adapters/out/postgres/accountrepo"
	"tokenorders/internal/adapters/out/postgres/orderrepo"
	"tokenorders/internal/adapters/out/postgres/pgerr"
	"tokenorders/internal/core/ports"

	"gorm.io/gorm"
)

// Timeouts bounds how long a transaction may wait. Zero values leave the
// server defaults in place.
type Timeouts struct {
	Lock      time.Duration
	Statement time.Duration
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	timeouts Timeouts
}

func NewGormUnitOfWorkFactory(db *gorm.DB, timeouts Timeouts) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, timeouts: timeouts}
}

// Create returns a unit of work with no transaction started. Instances are
// not safe for concurrent use; give each goroutine its own.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db, timeouts: f.timeouts}
}

// GormUnitOfWork binds the account and order repositories to one transaction.
type GormUnitOfWork struct {
	db       *gorm.DB
	tx       *gorm.DB
	timeouts Timeouts
}

// Begin starts the transaction. Calling it again while a transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return pgerr.Wrap("begin transaction", tx.Error)
	}

	if err := applyTimeouts(tx, uow.timeouts); err != nil {
		_ = tx.Rollback().Error
		return pgerr.Wrap("set transaction timeouts", err)
	}

	uow.tx = tx
	return nil
}

// Commit makes all changes of the transaction visible. A failed commit leaves
// nothing applied and is reported as a storage failure.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return pgerr.Wrap("commit transaction", err)
}

// Rollback discards the transaction. It returns gorm.ErrInvalidTransaction
// when nothing is open, which lets handlers defer it unconditionally.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// AccountRepository returns the ledger bound to the open transaction, or to
// the pool when none is open.
func (uow *GormUnitOfWork) AccountRepository() ports.AccountRepository {
	return accountrepo.NewGormAccountRepository(uow.conn())
}

// OrderRepository returns the order repository bound to the open transaction,
// or to the pool when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func applyTimeouts(tx *gorm.DB, t Timeouts) error {
	settings := []struct {
		name  string
		value time.Duration
	}{
		{"lock_timeout", t.Lock},
		{"statement_timeout", t.Statement},
	}
	for _, s := range settings {
		if s.value <= 0 {
			continue
		}
		if err := tx.Exec("SELECT set_config(?, ?, true)", s.name, milliseconds(s.value)).Error; err != nil {
			return err
		}
	}
	return nil
}

func milliseconds(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}
