package queries

import (
	"errors"
	"time"

	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetAccountQueryIsNotConstructed = errors.New(
	"GetAccountQuery must be created via NewGetAccountQuery constructor",
)

// GetAccountQuery asks for an account with its balance and lifetime metrics.
type GetAccountQuery struct {
	accountID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetAccountQuery(accountID kernel.UUID) (GetAccountQuery, error) {
	if err := accountID.Validate(); err != nil {
		return GetAccountQuery{}, err
	}
	return GetAccountQuery{accountID: accountID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAccountQuery) Validate() error {
	return q.guard.Validate(ErrGetAccountQueryIsNotConstructed)
}

func (q GetAccountQuery) AccountID() kernel.UUID {
	return q.accountID
}

// GetAccountQueryResponse is the account-with-balance view.
type GetAccountQueryResponse struct {
	ID                      kernel.UUID
	Balance                 int64
	LifetimeTokensEarned    int64
	LifetimeOrdersCompleted int64
	LifetimeAmountSpent     decimal.Decimal
	CreatedAt               time.Time
}
