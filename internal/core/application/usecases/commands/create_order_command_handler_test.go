package commands_test

import (
	"errors"
	"testing"

	"tokenorders/internal/core/application/usecases/commands"
	"tokenorders/internal/core/domain/model/account"
	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/core/domain/model/order"
	"tokenorders/internal/core/ports"
	"tokenorders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCreateCommand(t *testing.T, accountID kernel.UUID, tokens int64, key string) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), accountID, decimal.NewFromInt(50),
		swordInput(), tokens, order.Details{Notes: "gift"}, key)
	require.NoError(t, err)
	return cmd
}

func spendOf(amount string) any {
	return mock.MatchedBy(func(m account.Metrics) bool {
		return m.AmountSpent().Equal(decimal.RequireFromString(amount)) &&
			m.OrdersCompleted() == 0 && m.TokensEarned() == 0
	})
}

// Balance 100, order spending 40: the order is pending and 60 tokens remain.
func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	accountID := kernel.NewUUID()
	cmd := newCreateCommand(t, accountID, 40, "")

	accounts := new(MockAccountRepository)
	orders := new(MockOrderRepository)
	uow := newUoW(accounts, orders)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		accounts.On("Debit", mock.Anything, accountID, int64(40)).Return(int64(60), nil).Once(),
		accounts.On("RecordMetrics", mock.Anything, accountID, spendOf("50")).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	observer := &recordingObserver{}

	h := commands.NewCreateOrderCommandHandler(factory,
		commands.WithClock(fixedClock), commands.WithObserver(observer))
	res, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(60), res.Balance)
	assert.False(t, res.Replayed)
	assert.Equal(t, cmd.OrderID(), res.Order.ID())
	assert.Equal(t, order.Pending, res.Order.Status())
	assert.Equal(t, int64(40), res.Order.TokensSpent())
	assert.Equal(t, fixedNow, res.Order.CreatedAt())
	assert.Equal(t, "gift", res.Order.Details().Notes)
	require.Len(t, observer.seen, 1)
	assert.Equal(t, "create_order", observer.seen[0].name)
	require.NoError(t, observer.seen[0].err)
	accounts.AssertExpectations(t)
	orders.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

// Balance 30, order spending 40: the insert is rolled back and nothing is committed.
func TestCreateOrderCommandHandler_Handle_InsufficientBalance(t *testing.T) {
	ctx := t.Context()
	accountID := kernel.NewUUID()
	cmd := newCreateCommand(t, accountID, 40, "")

	accounts := new(MockAccountRepository)
	orders := new(MockOrderRepository)
	uow := newUoW(accounts, orders)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	orders.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	accounts.On("Debit", mock.Anything, accountID, int64(40)).
		Return(int64(0), account.NewInsufficientBalanceError(accountID, 30, 40)).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, account.ErrInsufficientBalance)
	accounts.AssertNotCalled(t, "RecordMetrics", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_UnknownAccount(t *testing.T) {
	ctx := t.Context()
	accountID := kernel.NewUUID()
	cmd := newCreateCommand(t, accountID, 0, "")

	accounts := new(MockAccountRepository)
	orders := new(MockOrderRepository)
	uow := newUoW(accounts, orders)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	orders.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	accounts.On("Debit", mock.Anything, accountID, int64(0)).
		Return(int64(0), errs.NewObjectNotFoundErrorWithCause("accountID", accountID, account.ErrAccountNotFound)).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, account.ErrAccountNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

// A failure after the debit must not commit: the rollback undoes the debit.
func TestCreateOrderCommandHandler_Handle_MetricsFailure_RollsBack(t *testing.T) {
	ctx := t.Context()
	accountID := kernel.NewUUID()
	cmd := newCreateCommand(t, accountID, 40, "")
	storageErr := errs.NewStorageFailureError("account.record_metrics", errors.New("connection reset"))

	accounts := new(MockAccountRepository)
	orders := new(MockOrderRepository)
	uow := newUoW(accounts, orders)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	accounts.On("Debit", mock.Anything, accountID, int64(40)).Return(int64(60), nil).Once()
	orders.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	accounts.On("RecordMetrics", mock.Anything, accountID, mock.Anything).Return(storageErr).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStorageFailure)
	assert.True(t, errs.IsRetryable(err))
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	accountID := kernel.NewUUID()
	cmd := newCreateCommand(t, accountID, 40, "")

	accounts := new(MockAccountRepository)
	orders := new(MockOrderRepository)
	uow := newUoW(accounts, orders)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	accounts.On("Debit", mock.Anything, accountID, int64(40)).Return(int64(60), nil).Once()
	orders.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	accounts.On("RecordMetrics", mock.Anything, accountID, mock.Anything).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(errs.NewStorageFailureError("commit transaction", nil)).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	res, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStorageFailure)
	assert.Nil(t, res.Order)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateCommand(t, kernel.NewUUID(), 40, "")

	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(errors.New("begin error")).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	observer := &recordingObserver{}
	h := commands.NewCreateOrderCommandHandler(factory, commands.WithObserver(observer))

	_, err := h.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	assert.True(t, errs.IsValidation(err))
	factory.AssertNotCalled(t, "Create")
	require.Len(t, observer.seen, 1)
	assert.Equal(t, "create_order", observer.seen[0].name)
	require.ErrorIs(t, observer.seen[0].err, commands.ErrCreateOrderCommandIsNotConstructed)
}

// Retrying with the same key returns the first order without a second debit.
func TestCreateOrderCommandHandler_Handle_IdempotentReplay(t *testing.T) {
	ctx := t.Context()
	accountID := kernel.NewUUID()
	cmd := newCreateCommand(t, accountID, 40, "checkout-1")
	existing := pendingOrder(t, accountID, 40)

	accounts := new(MockAccountRepository)
	orders := new(MockOrderRepository)
	uow := newUoW(accounts, orders)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	orders.On("FindByIdempotencyKey", mock.Anything, accountID, "checkout-1").Return(existing, nil).Once()
	accounts.On("Get", mock.Anything, accountID).Return(restoredAccount(t, accountID, 60), nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	res, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, res.Replayed)
	assert.Same(t, existing, res.Order)
	assert.Equal(t, int64(60), res.Balance)
	accounts.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_KeyReusedWithDifferentRequest(t *testing.T) {
	ctx := t.Context()
	accountID := kernel.NewUUID()
	cmd := newCreateCommand(t, accountID, 10, "checkout-1")
	existing := pendingOrder(t, accountID, 40)

	orders := new(MockOrderRepository)
	uow := newUoW(new(MockAccountRepository), orders)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	orders.On("FindByIdempotencyKey", mock.Anything, accountID, "checkout-1").Return(existing, nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrIdempotencyKeyReused)
	assert.True(t, errs.IsValidation(err))
}

// Two requests with one key race: the loser rolls back and replays the winner.
func TestCreateOrderCommandHandler_Handle_KeyConflict_ReplaysWinner(t *testing.T) {
	ctx := t.Context()
	accountID := kernel.NewUUID()
	cmd := newCreateCommand(t, accountID, 40, "checkout-1")
	winner := pendingOrder(t, accountID, 40)
	notFound := errs.NewObjectNotFoundErrorWithCause("idempotencyKey", "checkout-1", order.ErrOrderNotFound)

	accounts1 := new(MockAccountRepository)
	orders1 := new(MockOrderRepository)
	first := newUoW(accounts1, orders1)
	first.On("Begin", mock.Anything).Return(nil).Once()
	orders1.On("FindByIdempotencyKey", mock.Anything, accountID, "checkout-1").Return(nil, notFound).Once()
	orders1.On("Add", mock.Anything, mock.Anything).Return(ports.ErrIdempotencyKeyConflict).Once()
	first.On("Rollback", mock.Anything).Return(nil).Once()

	accounts2 := new(MockAccountRepository)
	orders2 := new(MockOrderRepository)
	second := newUoW(accounts2, orders2)
	second.On("Begin", mock.Anything).Return(nil).Once()
	orders2.On("FindByIdempotencyKey", mock.Anything, accountID, "checkout-1").Return(winner, nil).Once()
	accounts2.On("Get", mock.Anything, accountID).Return(restoredAccount(t, accountID, 60), nil).Once()
	second.On("Commit", mock.Anything).Return(nil).Once()
	second.On("Rollback", mock.Anything).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(first).Once()
	factory.On("Create").Return(second).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	res, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, res.Replayed)
	assert.Same(t, winner, res.Order)
	assert.Equal(t, int64(60), res.Balance)
	first.AssertNotCalled(t, "Commit", mock.Anything)
	accounts1.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
	first.AssertExpectations(t)
	second.AssertExpectations(t)
	factory.AssertExpectations(t)
}

// The winner spent the whole balance: the loser's insert hits the key before
// any debit is attempted, so it replays instead of failing on the balance.
func TestCreateOrderCommandHandler_Handle_KeyConflict_ExactBalance_Replays(t *testing.T) {
	ctx := t.Context()
	accountID := kernel.NewUUID()
	cmd := newCreateCommand(t, accountID, 40, "checkout-1")
	winner := pendingOrder(t, accountID, 40)
	notFound := errs.NewObjectNotFoundErrorWithCause("idempotencyKey", "checkout-1", order.ErrOrderNotFound)

	accounts1 := new(MockAccountRepository)
	orders1 := new(MockOrderRepository)
	first := newUoW(accounts1, orders1)
	first.On("Begin", mock.Anything).Return(nil).Once()
	orders1.On("FindByIdempotencyKey", mock.Anything, accountID, "checkout-1").Return(nil, notFound).Once()
	orders1.On("Add", mock.Anything, mock.Anything).Return(ports.ErrIdempotencyKeyConflict).Once()
	first.On("Rollback", mock.Anything).Return(nil).Once()

	accounts2 := new(MockAccountRepository)
	orders2 := new(MockOrderRepository)
	second := newUoW(accounts2, orders2)
	second.On("Begin", mock.Anything).Return(nil).Once()
	orders2.On("FindByIdempotencyKey", mock.Anything, accountID, "checkout-1").Return(winner, nil).Once()
	accounts2.On("Get", mock.Anything, accountID).Return(restoredAccount(t, accountID, 0), nil).Once()
	second.On("Commit", mock.Anything).Return(nil).Once()
	second.On("Rollback", mock.Anything).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(first).Once()
	factory.On("Create").Return(second).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	res, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, res.Replayed)
	assert.Same(t, winner, res.Order)
	assert.Equal(t, int64(0), res.Balance)
	accounts1.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything)
}
