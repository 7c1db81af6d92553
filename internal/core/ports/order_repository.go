package ports

import (
	"context"
	"errors"

	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/core/domain/model/order"
)

// ErrIdempotencyKeyConflict is returned by OrderRepository.Add when another
// order of the same account already uses the idempotency key. The enclosing
// transaction is no longer usable and must be rolled back.
var ErrIdempotencyKeyConflict = errors.New("idempotency key already used")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and completion changes of an existing order.
	// Rows that are already completed are never overwritten; such an update
	// fails with order.ErrOrderAlreadyCompleted.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its line items, or a not-found error
	// wrapping order.ErrOrderNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get plus a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindByIdempotencyKey returns the account's order created with key,
	// or a not-found error when there is none.
	FindByIdempotencyKey(ctx context.Context, accountID kernel.UUID, key string) (*order.Order, error)
}
