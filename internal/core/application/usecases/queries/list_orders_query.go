package queries

import (
	"errors"

	"tokenorders/internal/core/domain/model/order"
	"tokenorders/internal/pkg/errs"
	"tokenorders/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through the orders of every account, newest first.
// Operators use it to find orders to move along or complete.
type ListOrdersQuery struct {
	status order.Status
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery builds the query. An empty status lists all statuses;
// a zero limit means DefaultListLimit.
func NewListOrdersQuery(status order.Status, limit, offset int) (ListOrdersQuery, error) {
	limit, pageErr := page(limit, offset)

	var statusErr error
	if status != "" {
		statusErr = status.Validate()
	}

	if err := errors.Join(statusErr, pageErr); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		status: status,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Status is empty when no filter applies.
func (q ListOrdersQuery) Status() order.Status {
	return q.status
}

func (q ListOrdersQuery) Limit() int {
	return q.limit
}

func (q ListOrdersQuery) Offset() int {
	return q.offset
}

// page applies DefaultListLimit to a zero limit and checks both bounds.
func page(limit, offset int) (int, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}

	var limitErr, offsetErr error
	if limit < 1 || limit > MaxListLimit {
		limitErr = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	if offset < 0 {
		offsetErr = errs.NewValueIsInvalidError("offset")
	}
	return limit, errors.Join(limitErr, offsetErr)
}
