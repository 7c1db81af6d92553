package commands_test

import (
	"errors"
	"testing"

	"tokenorders/internal/core/application/usecases/commands"
	"tokenorders/internal/core/domain/model/account"
	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/core/domain/model/order"
	"tokenorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var completionDelta = mock.MatchedBy(func(m account.Metrics) bool {
	return m.OrdersCompleted() == 1 && m.TokensEarned() == 0 && m.AmountSpent().IsZero()
})

func TestNewCompleteOrderCommand(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewCompleteOrderCommand(id, 70)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, int64(70), cmd.TokensToAward())

	_, err = commands.NewCompleteOrderCommand(id, -1)
	assert.True(t, errs.IsValidation(err))

	require.ErrorIs(t, commands.CompleteOrderCommand{}.Validate(), commands.ErrCompleteOrderCommandIsNotConstructed)
}

// Completing with 70 tokens on a balance of 60 leaves 130.
func TestCompleteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	accountID := kernel.NewUUID()
	o := pendingOrder(t, accountID, 40)
	cmd, err := commands.NewCompleteOrderCommand(o.ID(), 70)
	require.NoError(t, err)

	accounts := new(MockAccountRepository)
	orders := new(MockOrderRepository)
	uow := newUoW(accounts, orders)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once(),
		orders.On("Update", mock.Anything, o).Return(nil).Once(),
		accounts.On("Credit", mock.Anything, accountID, int64(70)).Return(int64(130), nil).Once(),
		accounts.On("RecordMetrics", mock.Anything, accountID, completionDelta).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	observer := &recordingObserver{}

	h := commands.NewCompleteOrderCommandHandler(factory,
		commands.WithClock(fixedClock), commands.WithObserver(observer))
	res, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(130), res.Balance)
	assert.Equal(t, order.Fulfilled, res.Order.Status())
	assert.True(t, res.Order.IsCompleted())
	assert.Equal(t, int64(70), res.Order.TokensAwarded())
	require.Len(t, observer.seen, 1)
	assert.Equal(t, "complete_order", observer.seen[0].name)
	accounts.AssertExpectations(t)
	orders.AssertExpectations(t)
	uow.AssertExpectations(t)
}

// A second completion finds the order completed and changes nothing.
func TestCompleteOrderCommandHandler_Handle_AlreadyCompleted(t *testing.T) {
	ctx := t.Context()
	accountID := kernel.NewUUID()
	o := pendingOrder(t, accountID, 40)
	require.NoError(t, o.Complete(70, fixedNow))
	cmd, err := commands.NewCompleteOrderCommand(o.ID(), 70)
	require.NoError(t, err)

	accounts := new(MockAccountRepository)
	orders := new(MockOrderRepository)
	uow := newUoW(accounts, orders)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	observer := &recordingObserver{}

	h := commands.NewCompleteOrderCommandHandler(factory, commands.WithObserver(observer))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrOrderAlreadyCompleted)
	assert.Equal(t, int64(70), o.TokensAwarded())
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	accounts.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	require.Len(t, observer.seen, 1)
	require.ErrorIs(t, observer.seen[0].err, order.ErrOrderAlreadyCompleted)
}

func TestCompleteOrderCommandHandler_Handle_Cancelled(t *testing.T) {
	ctx := t.Context()
	o := pendingOrder(t, kernel.NewUUID(), 40)
	require.NoError(t, o.TransitionTo(order.Cancelled, fixedNow))
	cmd, err := commands.NewCompleteOrderCommand(o.ID(), 70)
	require.NoError(t, err)

	orders := new(MockOrderRepository)
	uow := newUoW(new(MockAccountRepository), orders)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
}

// A failed credit must not leave the order completed in storage.
func TestCompleteOrderCommandHandler_Handle_CreditFailure_RollsBack(t *testing.T) {
	ctx := t.Context()
	accountID := kernel.NewUUID()
	o := pendingOrder(t, accountID, 40)
	cmd, err := commands.NewCompleteOrderCommand(o.ID(), 70)
	require.NoError(t, err)

	accounts := new(MockAccountRepository)
	orders := new(MockOrderRepository)
	uow := newUoW(accounts, orders)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	orders.On("Update", mock.Anything, o).Return(nil).Once()
	accounts.On("Credit", mock.Anything, accountID, int64(70)).
		Return(int64(0), errs.NewBusyError("account.credit", errors.New("lock timeout"))).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrBusy)
	accounts.AssertNotCalled(t, "RecordMetrics", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.AssertExpectations(t)
}

func TestCompleteOrderCommandHandler_Handle_ZeroAward(t *testing.T) {
	ctx := t.Context()
	accountID := kernel.NewUUID()
	o := pendingOrder(t, accountID, 0)
	cmd, err := commands.NewCompleteOrderCommand(o.ID(), 0)
	require.NoError(t, err)

	accounts := new(MockAccountRepository)
	orders := new(MockOrderRepository)
	uow := newUoW(accounts, orders)
	uow.On("Begin", mock.Anything).Return(nil).Once()
	orders.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once()
	orders.On("Update", mock.Anything, o).Return(nil).Once()
	accounts.On("Credit", mock.Anything, accountID, int64(0)).Return(int64(5), nil).Once()
	accounts.On("RecordMetrics", mock.Anything, accountID, completionDelta).Return(nil).Once()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteOrderCommandHandler(factory)
	res, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(5), res.Balance)
	assert.True(t, res.Order.IsCompleted())
}
