package queries

import (
	"errors"

	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/core/domain/model/order"
	"tokenorders/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var ErrListAccountOrdersQueryIsNotConstructed = errors.New(
	"ListAccountOrdersQuery must be created via NewListAccountOrdersQuery constructor",
)

// ListAccountOrdersQuery pages through an account's orders, newest first.
//
// Example:
//
//	q, _ := queries.NewListAccountOrdersQuery(accountID, order.Pending, 20, 0)
//	views, err := handler.Handle(ctx, q)
type ListAccountOrdersQuery struct {
	accountID kernel.UUID
	status    order.Status
	limit     int
	offset    int

	guard guard.ConstructorGuard
}

// NewListAccountOrdersQuery builds the query. An empty status lists all
// statuses; a zero limit means DefaultListLimit.
func NewListAccountOrdersQuery(
	accountID kernel.UUID,
	status order.Status,
	limit, offset int,
) (ListAccountOrdersQuery, error) {
	limit, pageErr := page(limit, offset)

	var statusErr error
	if status != "" {
		statusErr = status.Validate()
	}

	if err := errors.Join(accountID.Validate(), statusErr, pageErr); err != nil {
		return ListAccountOrdersQuery{}, err
	}

	return ListAccountOrdersQuery{
		accountID: accountID,
		status:    status,
		limit:     limit,
		offset:    offset,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q ListAccountOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListAccountOrdersQueryIsNotConstructed)
}

func (q ListAccountOrdersQuery) AccountID() kernel.UUID {
	return q.accountID
}

// Status is empty when no filter applies.
func (q ListAccountOrdersQuery) Status() order.Status {
	return q.status
}

func (q ListAccountOrdersQuery) Limit() int {
	return q.limit
}

func (q ListAccountOrdersQuery) Offset() int {
	return q.offset
}
