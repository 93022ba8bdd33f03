package commands_test

import (
	"context"
	"time"

	"kitchenpos/internal/core/application/usecases/commands"
	"kitchenpos/internal/core/domain/model/catalog"
	"kitchenpos/internal/core/domain/model/kernel"
	"kitchenpos/internal/core/domain/model/order"
	"kitchenpos/internal/core/domain/model/promo"
	"kitchenpos/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// Friday 2025-03-07 12:00 in Mexico City.
var offDay = time.Date(2025, time.March, 7, 18, 0, 0, 0, time.UTC)

// Thursday 2025-03-06 13:00 in Mexico City.
var promoDay = time.Date(2025, time.March, 6, 19, 0, 0, 0, time.UTC)

func fixedClock(at time.Time) kernel.Clock {
	return kernel.ClockFunc(func() time.Time { return at })
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

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockPromoStateRepository struct{ mock.Mock }

func (m *MockPromoStateRepository) Get(ctx context.Context) (promo.State, error) {
	args := m.Called(ctx)
	return args.Get(0).(promo.State), args.Error(1)
}

func (m *MockPromoStateRepository) Save(ctx context.Context, state promo.State) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

type MockTx struct{ mock.Mock }

func (m *MockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockUoW struct{ MockTx }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PromoStateRepository() ports.PromoStateRepository {
	args := m.Called()
	return args.Get(0).(ports.PromoStateRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPromoUoWFactory struct{ mock.Mock }

func (m *MockPromoUoWFactory) Create() commands.PromoUoW {
	args := m.Called()
	return args.Get(0).(commands.PromoUoW)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) GetMenu(ctx context.Context) (catalog.Menu, error) {
	args := m.Called(ctx)
	return args.Get(0).(catalog.Menu), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, event string, payload any) {
	m.Called(ctx, event, payload)
}

type MockScheduler struct{ mock.Mock }

func (m *MockScheduler) Arm(id kernel.UUID) {
	m.Called(id)
}

func (m *MockScheduler) Cancel(id kernel.UUID) {
	m.Called(id)
}

func (m *MockScheduler) Pending(id kernel.UUID) bool {
	return m.Called(id).Bool(0)
}

type MockMetrics struct{ mock.Mock }

func (m *MockMetrics) OrderCreated(promoApplied bool, discount float64) {
	m.Called(promoApplied, discount)
}

func (m *MockMetrics) OrderTransitioned(from, to order.Status, automatic bool) {
	m.Called(from, to, automatic)
}
