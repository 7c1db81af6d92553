package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"tokenorders/internal/core/application/usecases/commands"
	"tokenorders/internal/core/domain/model/account"
	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/core/domain/model/order"
	"tokenorders/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAccountRepository struct{ mock.Mock }

func (m *MockAccountRepository) Add(ctx context.Context, a *account.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	acc, _ := args.Get(0).(*account.Account)
	return acc, args.Error(1)
}

func (m *MockAccountRepository) Credit(ctx context.Context, id kernel.UUID, amount int64) (int64, error) {
	args := m.Called(ctx, id, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) Debit(ctx context.Context, id kernel.UUID, amount int64) (int64, error) {
	args := m.Called(ctx, id, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) RecordMetrics(ctx context.Context, id kernel.UUID, delta account.Metrics) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) FindByIdempotencyKey(
	ctx context.Context,
	accountID kernel.UUID,
	key string,
) (*order.Order, error) {
	args := m.Called(ctx, accountID, key)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

// MockUoW satisfies UoW, AccountUoW and OrderUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) AccountRepository() ports.AccountRepository {
	args := m.Called()
	return args.Get(0).(ports.AccountRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockAccountUoWFactory struct{ mock.Mock }

func (m *MockAccountUoWFactory) Create() commands.AccountUoW {
	args := m.Called()
	return args.Get(0).(commands.AccountUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type observation struct {
	name string
	err  error
}

type recordingObserver struct {
	mu   sync.Mutex
	seen []observation
}

func (r *recordingObserver) ObserveCommand(name string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, observation{name: name, err: err})
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

// newUoW wires a unit of work mock that always hands out the given repositories.
func newUoW(accounts *MockAccountRepository, orders *MockOrderRepository) *MockUoW {
	uow := new(MockUoW)
	if accounts != nil {
		uow.On("AccountRepository").Return(accounts).Maybe()
	}
	if orders != nil {
		uow.On("OrderRepository").Return(orders).Maybe()
	}
	return uow
}

func pendingOrder(t *testing.T, accountID kernel.UUID, tokensSpent int64) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Sword", 1, decimal.NewFromInt(50))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), accountID, decimal.NewFromInt(50),
		[]order.LineItem{item}, tokensSpent, fixedNow)
	require.NoError(t, err)
	return o
}

func restoredAccount(t *testing.T, id kernel.UUID, balance int64) *account.Account {
	t.Helper()
	metrics, err := account.NewMetrics(decimal.Zero, 0, balance)
	require.NoError(t, err)
	acc, err := account.RestoreAccount(id, balance, metrics, fixedNow)
	require.NoError(t, err)
	return acc
}
