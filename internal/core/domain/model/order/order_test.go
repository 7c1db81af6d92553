package order_test

import (
	"strings"
	"testing"
	"time"

	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/core/domain/model/order"
	"tokenorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItem(t *testing.T, name string, qty int, price string) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), name, qty, decimal.RequireFromString(price))
	require.NoError(t, err)
	return item
}

func newPendingOrder(t *testing.T, tokensSpent int64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		decimal.NewFromInt(50),
		[]order.LineItem{newItem(t, "x", 1, "50")},
		tokensSpent,
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	id := kernel.NewUUID()
	accountID := kernel.NewUUID()
	items := []order.LineItem{newItem(t, "x", 1, "50")}
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("creates pending order", func(t *testing.T) {
		o, err := order.NewOrder(id, accountID, decimal.NewFromInt(50), items, 40, createdAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.True(t, o.AccountID().IsEqual(accountID))
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, int64(40), o.TokensSpent())
		assert.Equal(t, int64(0), o.TokensAwarded())
		assert.False(t, o.IsCompleted())
		assert.Nil(t, o.CompletedAt())
		assert.Len(t, o.LineItems(), 1)
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Empty(t, o.IdempotencyKey())
	})

	t.Run("applies options", func(t *testing.T) {
		details := order.Details{DeliveryAddress: "Tavern", Notes: "n", SpecialInstructions: "no onions"}

		o, err := order.NewOrder(id, accountID, decimal.NewFromInt(50), items, 0, createdAt,
			order.WithDetails(details), order.WithIdempotencyKey("req-1"))

		require.NoError(t, err)
		assert.Equal(t, details, o.Details())
		assert.Equal(t, "req-1", o.IdempotencyKey())
	})

	t.Run("reports every invalid field", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, kernel.UUID{}, decimal.Zero, nil, -1, createdAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, errs.IsValidation(err))
		for _, field := range []string{"UUID must be created", "accountID", "amount", "lineItems", "tokensSpent"} {
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("rejects sub-cent amount", func(t *testing.T) {
		_, err := order.NewOrder(id, accountID, decimal.RequireFromString("10.005"), items, 0, createdAt)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "more than 2 fractional digits")
	})

	t.Run("accepts the largest storable amount", func(t *testing.T) {
		o, err := order.NewOrder(id, accountID, order.MaxMoney, items, 0, createdAt)

		require.NoError(t, err)
		assert.Equal(t, "9999999999.99", o.Amount().StringFixed(order.MoneyScale))
	})

	t.Run("rejects amount above the storable range", func(t *testing.T) {
		_, err := order.NewOrder(id, accountID, decimal.RequireFromString("100000000000.00"), items, 0, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.True(t, errs.IsValidation(err))
		assert.False(t, errs.IsRetryable(err))
	})

	t.Run("rejects unconstructed line item", func(t *testing.T) {
		_, err := order.NewOrder(id, accountID, decimal.NewFromInt(1), []order.LineItem{{}}, 0, createdAt)

		require.ErrorIs(t, err, order.ErrLineItemIsNotConstructed)
	})

	t.Run("rejects oversized options", func(t *testing.T) {
		_, err := order.NewOrder(id, accountID, decimal.NewFromInt(1), items, 0, createdAt,
			order.WithIdempotencyKey(strings.Repeat("k", 129)),
			order.WithDetails(order.Details{Notes: strings.Repeat("n", 2001)}))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "idempotencyKey length")
		assert.Contains(t, err.Error(), "notes length")
	})

	t.Run("line items are copied", func(t *testing.T) {
		input := []order.LineItem{newItem(t, "a", 1, "50")}
		o, err := order.NewOrder(id, accountID, decimal.NewFromInt(50), input, 0, createdAt)
		require.NoError(t, err)

		input[0] = newItem(t, "b", 9, "1")
		got := o.LineItems()
		got[0] = newItem(t, "c", 9, "1")

		assert.Equal(t, "a", o.LineItems()[0].Name())
	})
}

func TestOrder_Reconciliation(t *testing.T) {
	items := []order.LineItem{newItem(t, "a", 2, "10.25"), newItem(t, "b", 1, "4.50")}

	matching, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), decimal.RequireFromString("25.00"), items, 0, time.Now())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("25").Equal(matching.ItemsTotal()))
	assert.True(t, matching.IsReconciled())

	differing, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), decimal.RequireFromString("30"), items, 0, time.Now())
	require.NoError(t, err)
	assert.False(t, differing.IsReconciled())
}

func TestOrder_TransitionTo(t *testing.T) {
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("walks the lifecycle to fulfilled without awarding tokens", func(t *testing.T) {
		o := newPendingOrder(t, 0)

		for _, s := range []order.Status{order.Confirmed, order.Preparing, order.Ready} {
			require.NoError(t, o.TransitionTo(s, at))
			assert.False(t, o.IsCompleted())
		}
		require.NoError(t, o.TransitionTo(order.Fulfilled, at))

		assert.Equal(t, order.Fulfilled, o.Status())
		assert.True(t, o.IsCompleted())
		require.NotNil(t, o.CompletedAt())
		assert.Equal(t, at, *o.CompletedAt())
		assert.Equal(t, int64(0), o.TokensAwarded())
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		o := newPendingOrder(t, 0)
		require.NoError(t, o.TransitionTo(order.Cancelled, at))

		err := o.TransitionTo(order.Pending, at)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.False(t, o.IsCompleted())
	})

	t.Run("fulfilled order cannot go back to pending", func(t *testing.T) {
		o := newPendingOrder(t, 0)
		require.NoError(t, o.Complete(5, at))

		err := o.TransitionTo(order.Pending, at)

		var transitionErr *order.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, order.Fulfilled, transitionErr.From)
		assert.Equal(t, order.Pending, transitionErr.To)
	})

	t.Run("failed transition leaves the order unchanged", func(t *testing.T) {
		o := newPendingOrder(t, 0)

		require.Error(t, o.TransitionTo(order.Ready, at))

		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_Complete(t *testing.T) {
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("completes and records award", func(t *testing.T) {
		o := newPendingOrder(t, 40)

		require.NoError(t, o.Complete(20, at))

		assert.Equal(t, order.Fulfilled, o.Status())
		assert.True(t, o.IsCompleted())
		assert.Equal(t, at, *o.CompletedAt())
		assert.Equal(t, int64(20), o.TokensAwarded())
		assert.Equal(t, int64(40), o.TokensSpent())
	})

	t.Run("second completion fails without changes", func(t *testing.T) {
		o := newPendingOrder(t, 0)
		require.NoError(t, o.Complete(20, at))

		err := o.Complete(99, at.Add(time.Hour))

		require.ErrorIs(t, err, order.ErrOrderAlreadyCompleted)
		assert.Equal(t, int64(20), o.TokensAwarded())
		assert.Equal(t, at, *o.CompletedAt())
	})

	t.Run("order fulfilled by transition cannot be completed", func(t *testing.T) {
		o := newPendingOrder(t, 0)
		for _, s := range []order.Status{order.Confirmed, order.Preparing, order.Ready, order.Fulfilled} {
			require.NoError(t, o.TransitionTo(s, at))
		}

		require.ErrorIs(t, o.Complete(10, at), order.ErrOrderAlreadyCompleted)
		assert.Equal(t, int64(0), o.TokensAwarded())
	})

	t.Run("cancelled order cannot be completed", func(t *testing.T) {
		o := newPendingOrder(t, 0)
		require.NoError(t, o.TransitionTo(order.Cancelled, at))

		require.ErrorIs(t, o.Complete(10, at), order.ErrInvalidTransition)
		assert.False(t, o.IsCompleted())
	})

	t.Run("negative award is rejected", func(t *testing.T) {
		o := newPendingOrder(t, 0)

		err := o.Complete(-1, at)

		assert.True(t, errs.IsValidation(err))
		assert.False(t, o.IsCompleted())
	})
}

func TestRestoreOrder(t *testing.T) {
	at := time.Now()
	base := order.State{
		ID:        kernel.NewUUID(),
		AccountID: kernel.NewUUID(),
		Amount:    decimal.NewFromInt(50),
		Status:    order.Preparing,
		LineItems: []order.LineItem{newItem(t, "x", 1, "50")},
		CreatedAt: at,
	}

	t.Run("restores an open order", func(t *testing.T) {
		o, err := order.RestoreOrder(base)

		require.NoError(t, err)
		assert.Equal(t, order.Preparing, o.Status())
	})

	t.Run("restores a completed order", func(t *testing.T) {
		s := base
		s.Status = order.Fulfilled
		s.Completed = true
		s.CompletedAt = &at
		s.TokensAwarded = 7

		o, err := order.RestoreOrder(s)

		require.NoError(t, err)
		assert.True(t, o.IsCompleted())
		assert.Equal(t, int64(7), o.TokensAwarded())
	})

	t.Run("rejects inconsistent completion columns", func(t *testing.T) {
		cases := map[string]func(*order.State){
			"completed without fulfilled": func(s *order.State) { s.Completed = true; s.CompletedAt = &at },
			"fulfilled without completed": func(s *order.State) { s.Status = order.Fulfilled },
			"completed without timestamp": func(s *order.State) { s.Status = order.Fulfilled; s.Completed = true },
			"award before completion":     func(s *order.State) { s.TokensAwarded = 3 },
			"unknown status":              func(s *order.State) { s.Status = "lost" },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				s := base
				mutate(&s)

				_, err := order.RestoreOrder(s)

				require.Error(t, err)
				assert.True(t, errs.IsValidation(err))
			})
		}
	})
}
