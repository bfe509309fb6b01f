package usecase_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/agency-admin/internal/entity"
	"github.com/xavierca1/agency-admin/internal/usecase"
)

// passthroughTx runs fn directly, for tests that do not care about rollback.
type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockServiceRepository
type MockServiceRepository struct {
	mock.Mock
}

func (m *MockServiceRepository) Create(ctx context.Context, s *entity.Service) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockServiceRepository) Update(ctx context.Context, s *entity.Service) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockServiceRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockServiceRepository) FindByID(ctx context.Context, id string) (*entity.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Service), args.Error(1)
}

func (m *MockServiceRepository) List(ctx context.Context) ([]entity.Service, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.Service), args.Error(1)
}

func (m *MockServiceRepository) ReplaceSubServices(ctx context.Context, serviceID string, subs []entity.SubService) error {
	return m.Called(ctx, serviceID, subs).Error(0)
}

func (m *MockServiceRepository) CountActiveContracts(ctx context.Context, serviceID string) (int, error) {
	args := m.Called(ctx, serviceID)
	return args.Int(0), args.Error(1)
}

func (m *MockServiceRepository) DeleteInactiveContracts(ctx context.Context, serviceID string) error {
	args := m.Called(ctx, serviceID)
	return args.Error(0)
}

// MockPlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) List(ctx context.Context) ([]entity.Plan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entity.Plan), args.Error(1)
}

func (m *MockPlanRepository) ReplaceForService(ctx context.Context, serviceID string, plans []entity.Plan) error {
	return m.Called(ctx, serviceID, plans).Error(0)
}

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// MockStatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) CountClients(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountClientsCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	args := m.Called(ctx, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) CountContractsByStatus(ctx context.Context, status entity.ContractStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockStatsRepository) SumPaymentsByStatus(ctx context.Context, status entity.PaymentStatus) (decimal.Decimal, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStatsRepository) SumPaidBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStatsRepository) PendingPayments(ctx context.Context) ([]usecase.PendingPayment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]usecase.PendingPayment), args.Error(1)
}

func (m *MockStatsRepository) RecentPayments(ctx context.Context, limit int) ([]usecase.RecentPayment, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]usecase.RecentPayment), args.Error(1)
}

func (m *MockStatsRepository) ActiveContractsByService(ctx context.Context) ([]usecase.ServiceStat, error) {
	args := m.Called(ctx)
	return args.Get(0).([]usecase.ServiceStat), args.Error(1)
}
