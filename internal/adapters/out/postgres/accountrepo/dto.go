// Package accountrepo persists the token ledger in the accounts table.
package accountrepo

import (
	"time"

	"tokenorders/internal/core/domain/model/account"
	"tokenorders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountDTO is one row of the accounts table. The CHECK constraints mirror
// the domain invariants so that no statement can leave a negative balance.
type AccountDTO struct {
	ID                      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Balance                 int64           `gorm:"not null;check:chk_accounts_balance,balance >= 0"`
	LifetimeTokensEarned    int64           `gorm:"not null;check:chk_accounts_tokens_earned,lifetime_tokens_earned >= 0"`
	LifetimeOrdersCompleted int64           `gorm:"not null;check:chk_accounts_orders_completed,lifetime_orders_completed >= 0"`
	LifetimeAmountSpent     decimal.Decimal `gorm:"type:numeric;not null;check:chk_accounts_amount_spent,lifetime_amount_spent >= 0"`
	CreatedAt               time.Time       `gorm:"not null"`
	UpdatedAt               time.Time       `gorm:"not null"`
}

func (AccountDTO) TableName() string {
	return "accounts"
}

func fromDomain(a *account.Account) AccountDTO {
	m := a.Metrics()
	return AccountDTO{
		ID:                      a.ID().Bytes(),
		Balance:                 a.Balance(),
		LifetimeTokensEarned:    m.TokensEarned(),
		LifetimeOrdersCompleted: m.OrdersCompleted(),
		LifetimeAmountSpent:     m.AmountSpent(),
		CreatedAt:               a.CreatedAt(),
	}
}

func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	metrics, err := account.NewMetrics(dto.LifetimeAmountSpent, dto.LifetimeOrdersCompleted, dto.LifetimeTokensEarned)
	if err != nil {
		return nil, err
	}

	return account.RestoreAccount(id, dto.Balance, metrics, dto.CreatedAt)
}
