package queries

import (
	"errors"

	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/pkg/errs"
	"tokenorders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetUnreconciledOrdersQueryIsNotConstructed = errors.New(
	"GetUnreconciledOrdersQuery must be created via NewGetUnreconciledOrdersQuery constructor",
)

// GetUnreconciledOrdersQuery finds orders whose line items do not add up to
// the recorded amount, oldest first.
type GetUnreconciledOrdersQuery struct {
	limit int

	guard guard.ConstructorGuard
}

func NewGetUnreconciledOrdersQuery(limit int) (GetUnreconciledOrdersQuery, error) {
	if limit == 0 {
		limit = MaxListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return GetUnreconciledOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	return GetUnreconciledOrdersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetUnreconciledOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnreconciledOrdersQueryIsNotConstructed)
}

func (q GetUnreconciledOrdersQuery) Limit() int {
	return q.limit
}

type GetUnreconciledOrdersQueryResponse struct {
	OrderID    kernel.UUID
	AccountID  kernel.UUID
	Amount     decimal.Decimal
	ItemsTotal decimal.Decimal
}

// Difference is Amount minus ItemsTotal.
func (r GetUnreconciledOrdersQueryResponse) Difference() decimal.Decimal {
	return r.Amount.Sub(r.ItemsTotal)
}
