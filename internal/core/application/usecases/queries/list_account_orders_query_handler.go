package queries

import (
	"context"

	"tokenorders/internal/adapters/out/postgres/pgerr"

	"gorm.io/gorm"
)

type ListAccountOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListAccountOrdersQueryHandler(db *gorm.DB) ListAccountOrdersQueryHandler {
	return ListAccountOrdersQueryHandler{db: db}
}

// Handle lists orders by creation time, newest first, breaking ties by id.
// An unknown account is reported as not found rather than as an empty list.
func (h ListAccountOrdersQueryHandler) Handle(ctx context.Context, query ListAccountOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists bool
	err := h.db.WithContext(ctx).
		Raw(`SELECT EXISTS (SELECT 1 FROM accounts WHERE id = ?)`, query.AccountID().Bytes()).
		Scan(&exists).Error
	if err != nil {
		return nil, pgerr.Wrap("query.account_orders", err)
	}
	if !exists {
		return nil, accountNotFound(query.AccountID())
	}

	sql := `SELECT` + orderColumns + ` FROM orders WHERE account_id = ?`
	args := []any{query.AccountID().Bytes()}
	if status := query.Status(); status != "" {
		sql += ` AND status = ?`
		args = append(args, status.String())
	}
	sql += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, query.Limit(), query.Offset())

	return loadOrderViews(ctx, h.db, "query.account_orders", sql, args...)
}
