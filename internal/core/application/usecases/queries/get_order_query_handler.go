package queries

import (
	"context"

	"tokenorders/internal/core/domain/model/order"
	"tokenorders/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order view, or a not-found error wrapping order.ErrOrderNotFound.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	views, err := loadOrderViews(ctx, h.db, "query.order",
		`SELECT`+orderColumns+` FROM orders WHERE id = ?`, query.OrderID().Bytes())
	if err != nil {
		return OrderView{}, err
	}
	if len(views) == 0 {
		return OrderView{}, errs.NewObjectNotFoundErrorWithCause("orderID", query.OrderID().String(), order.ErrOrderNotFound)
	}

	return views[0], nil
}
