// Package queries holds the read views. Handlers read through *gorm.DB
// directly and never open a unit of work.
package queries

import (
	"errors"

	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/pkg/guard"
)

var ErrGetAccountBalanceQueryIsNotConstructed = errors.New(
	"GetAccountBalanceQuery must be created via NewGetAccountBalanceQuery constructor",
)

// GetAccountBalanceQuery asks for the current token balance of an account.
type GetAccountBalanceQuery struct {
	accountID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetAccountBalanceQuery(accountID kernel.UUID) (GetAccountBalanceQuery, error) {
	if err := accountID.Validate(); err != nil {
		return GetAccountBalanceQuery{}, err
	}
	return GetAccountBalanceQuery{accountID: accountID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetAccountBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetAccountBalanceQueryIsNotConstructed)
}

func (q GetAccountBalanceQuery) AccountID() kernel.UUID {
	return q.accountID
}
