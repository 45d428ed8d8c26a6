package commands_test

import (
	"context"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetLatestByProduct(ctx context.Context, productID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetActiveByBuyer(ctx context.Context, buyerID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateStatusIfAvailable(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*user.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserRepository) UpdateCart(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

type MockOutbox struct{ mock.Mock }

func (m *MockOutbox) Append(ctx context.Context, events []order.Event) error {
	return m.Called(ctx, events).Error(0)
}

func (m *MockOutbox) GetUnpublished(ctx context.Context, limit int) ([]order.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Event), args.Error(1)
}

func (m *MockOutbox) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	return m.Called(ctx, ids, at).Error(0)
}

func (m *MockOutbox) MarkFailed(ctx context.Context, ids []kernel.UUID, cause error) error {
	return m.Called(ctx, ids, cause).Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events []order.Event) error {
	return m.Called(ctx, events).Error(0)
}

// MockUoW satisfies every narrowed unit of work interface.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	return m.Called().Get(0).(ports.ProductRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	return m.Called().Get(0).(ports.UserRepository)
}

func (m *MockUoW) OrderEventOutbox() ports.OrderEventOutbox {
	return m.Called().Get(0).(ports.OrderEventOutbox)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	return m.Called().Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockOutboxUoWFactory struct{ mock.Mock }

func (m *MockOutboxUoWFactory) Create() commands.OutboxUoW {
	return m.Called().Get(0).(commands.OutboxUoW)
}

// sequenceCodes hands out a fixed list of codes.
type sequenceCodes struct {
	codes []int
}

func (s *sequenceCodes) Generate() (kernel.DeliveryCode, error) {
	next := s.codes[0]
	s.codes = s.codes[1:]
	return kernel.NewDeliveryCode(next)
}
