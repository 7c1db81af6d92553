package queries

import (
	"context"

	"tokenorders/internal/adapters/out/postgres/pgerr"
	"tokenorders/internal/core/domain/model/account"
	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetAccountBalanceQueryHandler struct {
	db *gorm.DB
}

func NewGetAccountBalanceQueryHandler(db *gorm.DB) GetAccountBalanceQueryHandler {
	return GetAccountBalanceQueryHandler{db: db}
}

// Handle returns the committed balance, or a not-found error wrapping
// account.ErrAccountNotFound.
func (h GetAccountBalanceQueryHandler) Handle(ctx context.Context, query GetAccountBalanceQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var balances []int64
	err := h.db.WithContext(ctx).
		Raw(`SELECT balance FROM accounts WHERE id = ?`, query.AccountID().Bytes()).
		Scan(&balances).Error
	if err != nil {
		return 0, pgerr.Wrap("query.account_balance", err)
	}
	if len(balances) == 0 {
		return 0, accountNotFound(query.AccountID())
	}

	return balances[0], nil
}

func accountNotFound(id kernel.UUID) error {
	return errs.NewObjectNotFoundErrorWithCause("accountID", id.String(), account.ErrAccountNotFound)
}
