package orderrepo

import (
	"context"
	"errors"
	"time"

	"tokenorders/internal/adapters/out/postgres/pgerr"
	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/core/domain/model/order"
	"tokenorders/internal/core/ports"
	"tokenorders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db, now: time.Now}
}

// Add inserts the order row and then its line items. A clash on the
// idempotency index is reported as ports.ErrIdempotencyKeyConflict.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err, IdempotencyIndex) {
			return ports.ErrIdempotencyKeyConflict
		}
		return pgerr.Wrap("order.add", err)
	}
	if err := db.Create(&dto.LineItems).Error; err != nil {
		return pgerr.Wrap("order.add_line_items", err)
	}
	return nil
}

// Update writes the mutable columns. The completed = false predicate keeps a
// completed row from ever being rewritten, whatever the caller holds in memory.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND completed = ?", dto.ID, false).
		Updates(map[string]any{
			"status":         dto.Status,
			"tokens_awarded": dto.TokensAwarded,
			"completed":      dto.Completed,
			"completed_at":   dto.CompletedAt,
			"updated_at":     r.now(),
		})
	if result.Error != nil {
		return pgerr.Wrap("order.update", result.Error)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return pgerr.Wrap("order.update", err)
	}
	if count == 0 {
		return notFound(aggregate.ID())
	}
	return order.ErrOrderAlreadyCompleted
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db, id, "order.get")
}

// GetForUpdate locks the order row with SELECT ... FOR UPDATE. The lock is
// held until the enclosing transaction commits or rolls back, and waiting for
// it is bounded by the transaction's lock_timeout.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id, "order.get_for_update")
}

func (r *GormOrderRepository) FindByIdempotencyKey(
	ctx context.Context,
	accountID kernel.UUID,
	key string,
) (*order.Order, error) {
	if err := accountID.Validate(); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, errs.NewValueIsRequiredError("idempotencyKey")
	}

	var dto OrderDTO
	err := PreloadLineItems(r.db.WithContext(ctx)).
		Take(&dto, "account_id = ? AND idempotency_key = ?", accountID.Bytes(), key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("idempotencyKey", key, order.ErrOrderNotFound)
		}
		return nil, pgerr.Wrap("order.find_by_idempotency_key", err)
	}

	return ToDomain(dto)
}

// PreloadLineItems loads line items in submission order.
func PreloadLineItems(db *gorm.DB) *gorm.DB {
	return db.Preload("LineItems", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position")
	})
}

func (r *GormOrderRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID, op string) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := PreloadLineItems(db.WithContext(ctx)).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(id)
		}
		return nil, pgerr.Wrap(op, err)
	}

	return ToDomain(dto)
}

func notFound(id kernel.UUID) error {
	return errs.NewObjectNotFoundErrorWithCause("orderID", id.String(), order.ErrOrderNotFound)
}
