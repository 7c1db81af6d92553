package queries

import (
	"context"
	"time"

	"tokenorders/internal/adapters/out/postgres/pgerr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetAccountQueryHandler struct {
	db *gorm.DB
}

func NewGetAccountQueryHandler(db *gorm.DB) GetAccountQueryHandler {
	return GetAccountQueryHandler{db: db}
}

func (h GetAccountQueryHandler) Handle(ctx context.Context, query GetAccountQuery) (GetAccountQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAccountQueryResponse{}, err
	}

	var row struct {
		Balance                 int64
		LifetimeTokensEarned    int64
		LifetimeOrdersCompleted int64
		LifetimeAmountSpent     decimal.Decimal
		CreatedAt               time.Time
	}
	result := h.db.WithContext(ctx).Raw(`
		SELECT
			balance,
			lifetime_tokens_earned,
			lifetime_orders_completed,
			lifetime_amount_spent,
			created_at
		FROM accounts
		WHERE id = ?
	`, query.AccountID().Bytes()).Scan(&row)
	if result.Error != nil {
		return GetAccountQueryResponse{}, pgerr.Wrap("query.account", result.Error)
	}
	if result.RowsAffected == 0 {
		return GetAccountQueryResponse{}, accountNotFound(query.AccountID())
	}

	return GetAccountQueryResponse{
		ID:                      query.AccountID(),
		Balance:                 row.Balance,
		LifetimeTokensEarned:    row.LifetimeTokensEarned,
		LifetimeOrdersCompleted: row.LifetimeOrdersCompleted,
		LifetimeAmountSpent:     row.LifetimeAmountSpent,
		CreatedAt:               row.CreatedAt,
	}, nil
}
