package queries

import (
	"context"
	"time"

	"tokenorders/internal/adapters/out/postgres/pgerr"
	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is the order-with-items read model.
type OrderView struct {
	ID             kernel.UUID
	AccountID      kernel.UUID
	Amount         decimal.Decimal
	Status         order.Status
	TokensSpent    int64
	TokensAwarded  int64
	Completed      bool
	CompletedAt    *time.Time
	Details        order.Details
	IdempotencyKey string
	CreatedAt      time.Time
	LineItems      []LineItemView

	// ItemsTotal is the sum of the line subtotals. Reconciled reports whether
	// it equals Amount; a mismatch is informational only.
	ItemsTotal decimal.Decimal
	Reconciled bool
}

type LineItemView struct {
	ID        kernel.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

const orderColumns = `
	id,
	account_id,
	amount,
	status,
	tokens_spent,
	tokens_awarded,
	completed,
	completed_at,
	delivery_address,
	notes,
	special_instructions,
	idempotency_key,
	created_at`

type orderRow struct {
	ID                  uuid.UUID
	AccountID           uuid.UUID
	Amount              decimal.Decimal
	Status              string
	TokensSpent         int64
	TokensAwarded       int64
	Completed           bool
	CompletedAt         *time.Time
	DeliveryAddress     string
	Notes               string
	SpecialInstructions string
	IdempotencyKey      *string
	CreatedAt           time.Time
}

type lineItemRow struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// loadOrderViews runs sql, which must select orderColumns, and attaches the
// line items of every returned order in a single second query.
func loadOrderViews(ctx context.Context, db *gorm.DB, op string, sql string, args ...any) ([]OrderView, error) {
	var rows []orderRow
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, pgerr.Wrap(op, err)
	}
	if len(rows) == 0 {
		return []OrderView{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var itemRows []lineItemRow
	err := db.WithContext(ctx).Raw(`
		SELECT id, order_id, name, quantity, unit_price
		FROM order_line_items
		WHERE order_id IN ?
		ORDER BY order_id, position
	`, ids).Scan(&itemRows).Error
	if err != nil {
		return nil, pgerr.Wrap(op, err)
	}

	itemsByOrder := make(map[uuid.UUID][]LineItemView, len(rows))
	for _, itemRow := range itemRows {
		item, convErr := toLineItemView(itemRow)
		if convErr != nil {
			return nil, convErr
		}
		itemsByOrder[itemRow.OrderID] = append(itemsByOrder[itemRow.OrderID], item)
	}

	views := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		view, convErr := toOrderView(row, itemsByOrder[row.ID])
		if convErr != nil {
			return nil, convErr
		}
		views = append(views, view)
	}
	return views, nil
}

func toOrderView(row orderRow, items []LineItemView) (OrderView, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return OrderView{}, err
	}
	accountID, err := kernel.UUIDFromBytes(row.AccountID[:])
	if err != nil {
		return OrderView{}, err
	}
	status, err := order.ParseStatus(row.Status)
	if err != nil {
		return OrderView{}, err
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}

	var key string
	if row.IdempotencyKey != nil {
		key = *row.IdempotencyKey
	}
	if items == nil {
		items = []LineItemView{}
	}

	return OrderView{
		ID:            id,
		AccountID:     accountID,
		Amount:        row.Amount,
		Status:        status,
		TokensSpent:   row.TokensSpent,
		TokensAwarded: row.TokensAwarded,
		Completed:     row.Completed,
		CompletedAt:   row.CompletedAt,
		Details: order.Details{
			DeliveryAddress:     row.DeliveryAddress,
			Notes:               row.Notes,
			SpecialInstructions: row.SpecialInstructions,
		},
		IdempotencyKey: key,
		CreatedAt:      row.CreatedAt,
		LineItems:      items,
		ItemsTotal:     total,
		Reconciled:     total.Equal(row.Amount),
	}, nil
}

func toLineItemView(row lineItemRow) (LineItemView, error) {
	id, err := kernel.UUIDFromBytes(row.ID[:])
	if err != nil {
		return LineItemView{}, err
	}
	return LineItemView{
		ID:        id,
		Name:      row.Name,
		Quantity:  row.Quantity,
		UnitPrice: row.UnitPrice,
		Subtotal:  row.UnitPrice.Mul(decimal.NewFromInt(int64(row.Quantity))),
	}, nil
}
