package http

import (
	"tokenorders/internal/core/application/usecases/commands"
	"tokenorders/internal/core/application/usecases/queries"
	"tokenorders/internal/core/domain/model/order"
	"tokenorders/internal/generated/servers"

	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) servers.Money {
	return d.StringFixed(order.MoneyScale)
}

// optional leaves empty strings out of the response body.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func accountResponse(v queries.GetAccountQueryResponse) servers.Account {
	return servers.Account{
		Id:                      v.ID.Bytes(),
		Balance:                 v.Balance,
		LifetimeTokensEarned:    v.LifetimeTokensEarned,
		LifetimeOrdersCompleted: v.LifetimeOrdersCompleted,
		LifetimeAmountSpent:     money(v.LifetimeAmountSpent),
		CreatedAt:               v.CreatedAt,
	}
}

func orderViewResponse(v queries.OrderView) servers.Order {
	items := make([]servers.LineItem, len(v.LineItems))
	for i, item := range v.LineItems {
		items[i] = servers.LineItem{
			Id:        item.ID.Bytes(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: money(item.UnitPrice),
			Subtotal:  money(item.Subtotal),
		}
	}
	return servers.Order{
		Id:                  v.ID.Bytes(),
		AccountId:           v.AccountID.Bytes(),
		Amount:              money(v.Amount),
		Status:              servers.Status(v.Status),
		TokensSpent:         v.TokensSpent,
		TokensAwarded:       v.TokensAwarded,
		Completed:           v.Completed,
		CompletedAt:         v.CompletedAt,
		DeliveryAddress:     optional(v.Details.DeliveryAddress),
		Notes:               optional(v.Details.Notes),
		SpecialInstructions: optional(v.Details.SpecialInstructions),
		IdempotencyKey:      optional(v.IdempotencyKey),
		Items:               items,
		ItemsTotal:          money(v.ItemsTotal),
		Reconciled:          v.Reconciled,
		CreatedAt:           v.CreatedAt,
	}
}

func orderViewsResponse(views []queries.OrderView) []servers.Order {
	response := make([]servers.Order, len(views))
	for i, view := range views {
		response[i] = orderViewResponse(view)
	}
	return response
}

// orderResponse renders an aggregate returned by a command.
func orderResponse(o *order.Order) servers.Order {
	lineItems := o.LineItems()
	items := make([]servers.LineItem, len(lineItems))
	for i, item := range lineItems {
		items[i] = servers.LineItem{
			Id:        item.ID().Bytes(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: money(item.UnitPrice()),
			Subtotal:  money(item.Subtotal()),
		}
	}
	details := o.Details()
	return servers.Order{
		Id:                  o.ID().Bytes(),
		AccountId:           o.AccountID().Bytes(),
		Amount:              money(o.Amount()),
		Status:              servers.Status(o.Status()),
		TokensSpent:         o.TokensSpent(),
		TokensAwarded:       o.TokensAwarded(),
		Completed:           o.IsCompleted(),
		CompletedAt:         o.CompletedAt(),
		DeliveryAddress:     optional(details.DeliveryAddress),
		Notes:               optional(details.Notes),
		SpecialInstructions: optional(details.SpecialInstructions),
		IdempotencyKey:      optional(o.IdempotencyKey()),
		Items:               items,
		ItemsTotal:          money(o.ItemsTotal()),
		Reconciled:          o.IsReconciled(),
		CreatedAt:           o.CreatedAt(),
	}
}

func lineItemInputs(items []servers.NewLineItem) ([]commands.LineItemInput, error) {
	inputs := make([]commands.LineItemInput, len(items))
	for i, item := range items {
		price, err := parseMoney("unitPrice", item.UnitPrice)
		if err != nil {
			return nil, err
		}
		inputs[i] = commands.LineItemInput{Name: item.Name, Quantity: item.Quantity, UnitPrice: price}
	}
	return inputs, nil
}

// listFilter unpacks the optional status and paging parameters shared by the
// list operations.
func listFilter(status *servers.Status, limit, offset *int) (order.Status, int, int) {
	var (
		s    order.Status
		l, o int
	)
	if status != nil {
		s = order.Status(*status)
	}
	if limit != nil {
		l = *limit
	}
	if offset != nil {
		o = *offset
	}
	return s, l, o
}
