// Package orderrepo maps order aggregates to the orders and order_line_items tables.
package orderrepo

import (
	"time"

	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IdempotencyIndex is the unique index over (account_id, idempotency_key).
// NULL keys never collide, so orders created without a key are unaffected.
const IdempotencyIndex = "idx_orders_account_idempotency_key"

// OrderDTO is one row of the orders table.
type OrderDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID           uuid.UUID       `gorm:"type:uuid;not null;index:idx_orders_account_created,priority:1;uniqueIndex:idx_orders_account_idempotency_key,priority:1"`
	Amount              decimal.Decimal `gorm:"type:numeric(12,2);not null;check:chk_orders_amount,amount > 0"`
	Status              string          `gorm:"type:varchar(16);not null;index"`
	TokensSpent         int64           `gorm:"not null;check:chk_orders_tokens_spent,tokens_spent >= 0"`
	TokensAwarded       int64           `gorm:"not null;check:chk_orders_tokens_awarded,tokens_awarded >= 0"`
	Completed           bool            `gorm:"not null"`
	CompletedAt         *time.Time
	DeliveryAddress     string          `gorm:"type:text;not null"`
	Notes               string          `gorm:"type:text;not null"`
	SpecialInstructions string          `gorm:"type:text;not null"`
	IdempotencyKey      *string         `gorm:"type:varchar(128);uniqueIndex:idx_orders_account_idempotency_key,priority:2"`
	CreatedAt           time.Time       `gorm:"not null;index:idx_orders_account_created,priority:2,sort:desc"`
	UpdatedAt           time.Time       `gorm:"not null"`

	LineItems []LineItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO is one row of the order_line_items table. Position keeps the
// order in which the items were submitted.
type LineItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position  int             `gorm:"not null"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Quantity  int             `gorm:"not null;check:chk_line_items_quantity,quantity > 0"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null;check:chk_line_items_unit_price,unit_price >= 0"`
}

func (LineItemDTO) TableName() string {
	return "order_line_items"
}

func fromDomain(o *order.Order) OrderDTO {
	details := o.Details()

	var key *string
	if k := o.IdempotencyKey(); k != "" {
		key = &k
	}

	items := o.LineItems()
	itemDTOs := make([]LineItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, LineItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   o.ID().Bytes(),
			Position:  i,
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:                  o.ID().Bytes(),
		AccountID:           o.AccountID().Bytes(),
		Amount:              o.Amount(),
		Status:              o.Status().String(),
		TokensSpent:         o.TokensSpent(),
		TokensAwarded:       o.TokensAwarded(),
		Completed:           o.IsCompleted(),
		CompletedAt:         o.CompletedAt(),
		DeliveryAddress:     details.DeliveryAddress,
		Notes:               details.Notes,
		SpecialInstructions: details.SpecialInstructions,
		IdempotencyKey:      key,
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.CreatedAt(),
		LineItems:           itemDTOs,
	}
}

// ToDomain rebuilds an order aggregate from a row loaded with its line items.
// The query handlers use it to share the reconciliation arithmetic.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	accountID, err := kernel.UUIDFromBytes(dto.AccountID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.LineItems))
	for _, itemDTO := range dto.LineItems {
		itemID, idErr := kernel.UUIDFromBytes(itemDTO.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := order.NewLineItem(itemID, itemDTO.Name, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var key string
	if dto.IdempotencyKey != nil {
		key = *dto.IdempotencyKey
	}

	return order.RestoreOrder(order.State{
		ID:            id,
		AccountID:     accountID,
		Amount:        dto.Amount,
		Status:        status,
		TokensSpent:   dto.TokensSpent,
		TokensAwarded: dto.TokensAwarded,
		Completed:     dto.Completed,
		CompletedAt:   dto.CompletedAt,
		LineItems:     items,
		Details: order.Details{
			DeliveryAddress:     dto.DeliveryAddress,
			Notes:               dto.Notes,
			SpecialInstructions: dto.SpecialInstructions,
		},
		IdempotencyKey: key,
		CreatedAt:      dto.CreatedAt,
	})
}
