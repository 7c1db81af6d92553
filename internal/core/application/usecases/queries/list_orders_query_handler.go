package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle lists orders across all accounts by creation time, newest first,
// breaking ties by id.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `SELECT` + orderColumns + ` FROM orders`
	var args []any
	if status := query.Status(); status != "" {
		sql += ` WHERE status = ?`
		args = append(args, status.String())
	}
	sql += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, query.Limit(), query.Offset())

	return loadOrderViews(ctx, h.db, "query.orders", sql, args...)
}
