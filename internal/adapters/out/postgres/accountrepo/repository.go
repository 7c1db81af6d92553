package accountrepo

import (
	"context"
	"errors"
	"time"

	"tokenorders/internal/adapters/out/postgres/pgerr"
	"tokenorders/internal/core/domain/model/account"
	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/pkg/errs"

	"gorm.io/gorm"
)

const (
	debitSQL = `UPDATE accounts
SET balance = balance - ?, updated_at = ?
WHERE id = ? AND balance >= ?
RETURNING balance`

	creditSQL = `UPDATE accounts
SET balance = balance + ?, lifetime_tokens_earned = lifetime_tokens_earned + ?, updated_at = ?
WHERE id = ?
RETURNING balance`

	recordMetricsSQL = `UPDATE accounts
SET lifetime_amount_spent = lifetime_amount_spent + ?,
    lifetime_orders_completed = lifetime_orders_completed + ?,
    lifetime_tokens_earned = lifetime_tokens_earned + ?,
    updated_at = ?
WHERE id = ?`
)

// ErrAccountExists is the cause reported when an account ID is already taken.
var ErrAccountExists = errors.New("account already exists")

type balanceRow struct {
	Balance int64
}

// GormAccountRepository implements ports.AccountRepository. Balance changes
// are single conditional statements, so concurrent debits against the same
// row serialise on the row lock taken by UPDATE and never overdraw it.
type GormAccountRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db, now: time.Now}
}

func (r *GormAccountRepository) Add(ctx context.Context, aggregate *account.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.UpdatedAt = dto.CreatedAt
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err, "") {
			return errs.NewValueIsInvalidErrorWithCause("accountID", ErrAccountExists)
		}
		return pgerr.Wrap("account.add", err)
	}
	return nil
}

func (r *GormAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AccountDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		return nil, pgerr.Wrap("account.get", err)
	}

	return toDomain(dto)
}

// Debit subtracts amount if and only if the balance covers it. When no row
// matches, a second read tells a missing account from an insufficient
// balance; nothing has been written in either case.
func (r *GormAccountRepository) Debit(ctx context.Context, id kernel.UUID, amount int64) (int64, error) {
	if err := validate(id, "amount", amount); err != nil {
		return 0, err
	}

	var rows []balanceRow
	err := r.db.WithContext(ctx).
		Raw(debitSQL, amount, r.now(), id.Bytes(), amount).
		Scan(&rows).Error
	if err != nil {
		return 0, pgerr.Wrap("account.debit", err)
	}
	if len(rows) == 1 {
		return rows[0].Balance, nil
	}

	current, err := r.balance(ctx, id)
	if err != nil {
		return 0, err
	}
	return 0, account.NewInsufficientBalanceError(id, current, amount)
}

// Credit adds amount to the balance and to the lifetime tokens earned.
func (r *GormAccountRepository) Credit(ctx context.Context, id kernel.UUID, amount int64) (int64, error) {
	if err := validate(id, "amount", amount); err != nil {
		return 0, err
	}

	var rows []balanceRow
	err := r.db.WithContext(ctx).
		Raw(creditSQL, amount, amount, r.now(), id.Bytes()).
		Scan(&rows).Error
	if err != nil {
		return 0, pgerr.Wrap("account.credit", err)
	}
	if len(rows) == 0 {
		return 0, notFound(id)
	}
	return rows[0].Balance, nil
}

func (r *GormAccountRepository) RecordMetrics(ctx context.Context, id kernel.UUID, delta account.Metrics) error {
	if err := errors.Join(id.Validate(), delta.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(recordMetricsSQL,
		delta.AmountSpent(), delta.OrdersCompleted(), delta.TokensEarned(), r.now(), id.Bytes())
	if result.Error != nil {
		return pgerr.Wrap("account.record_metrics", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound(id)
	}
	return nil
}

func (r *GormAccountRepository) balance(ctx context.Context, id kernel.UUID) (int64, error) {
	var row balanceRow
	err := r.db.WithContext(ctx).
		Model(&AccountDTO{}).
		Select("balance").
		Where("id = ?", id.Bytes()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, notFound(id)
		}
		return 0, pgerr.Wrap("account.balance", err)
	}
	return row.Balance, nil
}

func validate(id kernel.UUID, paramName string, amount int64) error {
	return errors.Join(id.Validate(), kernel.ValidateTokens(paramName, amount))
}

func notFound(id kernel.UUID) error {
	return errs.NewObjectNotFoundErrorWithCause("accountID", id.String(), account.ErrAccountNotFound)
}
