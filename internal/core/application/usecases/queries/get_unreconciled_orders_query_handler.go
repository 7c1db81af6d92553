package queries

import (
	"context"

	"tokenorders/internal/adapters/out/postgres/pgerr"
	"tokenorders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetUnreconciledOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetUnreconciledOrdersQueryHandler(db *gorm.DB) GetUnreconciledOrdersQueryHandler {
	return GetUnreconciledOrdersQueryHandler{db: db}
}

func (h GetUnreconciledOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnreconciledOrdersQuery,
) ([]GetUnreconciledOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.account_id,
			o.amount,
			COALESCE(SUM(li.quantity * li.unit_price), 0) AS items_total
		FROM orders o
		LEFT JOIN order_line_items li ON li.order_id = o.id
		GROUP BY o.id
		HAVING o.amount <> COALESCE(SUM(li.quantity * li.unit_price), 0)
		ORDER BY o.created_at, o.id
		LIMIT ?
	`, query.Limit()).Rows()
	if err != nil {
		return nil, pgerr.Wrap("query.unreconciled_orders", err)
	}
	defer rows.Close()

	result := make([]GetUnreconciledOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id, accountID     uuid.UUID
			amount, itemTotal decimal.Decimal
		)
		if err = rows.Scan(&id, &accountID, &amount, &itemTotal); err != nil {
			return nil, pgerr.Wrap("query.unreconciled_orders", err)
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		ownerID, idErr := kernel.UUIDFromBytes(accountID[:])
		if idErr != nil {
			return nil, idErr
		}

		result = append(result, GetUnreconciledOrdersQueryResponse{
			OrderID:    orderID,
			AccountID:  ownerID,
			Amount:     amount,
			ItemsTotal: itemTotal,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, pgerr.Wrap("query.unreconciled_orders", err)
	}

	return result, nil
}
