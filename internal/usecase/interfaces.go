package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xavierca1/agency-admin/internal/entity"
)

// TxManager runs fn inside one database transaction. Repositories called
// with the ctx passed to fn join that transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	Update(ctx context.Context, c *entity.Client) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Client, error)
	FindByEmail(ctx context.Context, email string) (*entity.Client, error)
	List(ctx context.Context) ([]entity.Client, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, s *entity.Service) error
	Update(ctx context.Context, s *entity.Service) error
	Delete(ctx context.Context, id string) error
	// FindByID loads the service together with its sub-services.
	FindByID(ctx context.Context, id string) (*entity.Service, error)
	// List returns every service with sub-services and ACTIVE contract counts.
	List(ctx context.Context) ([]entity.Service, error)
	ReplaceSubServices(ctx context.Context, serviceID string, subs []entity.SubService) error
	CountActiveContracts(ctx context.Context, serviceID string) (int, error)
	DeleteInactiveContracts(ctx context.Context, serviceID string) error
}

type PlanRepository interface {
	List(ctx context.Context) ([]entity.Plan, error)
	ReplaceForService(ctx context.Context, serviceID string, plans []entity.Plan) error
}

type ContractRepository interface {
	Create(ctx context.Context, c *entity.Contract) error
	Update(ctx context.Context, c *entity.Contract) error
	FindByID(ctx context.Context, id string) (*entity.Contract, error)
	List(ctx context.Context) ([]entity.Contract, error)
	DeleteByClientID(ctx context.Context, clientID string) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	Update(ctx context.Context, p *entity.Payment) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Payment, error)
	List(ctx context.Context) ([]entity.PaymentView, error)
	DeleteByClientID(ctx context.Context, clientID string) error
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// StatsRepository answers the read-only aggregate queries of the dashboard.
type StatsRepository interface {
	CountClients(ctx context.Context) (int, error)
	CountClientsCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
	CountContractsByStatus(ctx context.Context, status entity.ContractStatus) (int, error)
	SumPaymentsByStatus(ctx context.Context, status entity.PaymentStatus) (decimal.Decimal, error)
	SumPaidBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	PendingPayments(ctx context.Context) ([]PendingPayment, error)
	RecentPayments(ctx context.Context, limit int) ([]RecentPayment, error)
	ActiveContractsByService(ctx context.Context) ([]ServiceStat, error)
}

// EventPublisher announces committed provisioning results.
type EventPublisher interface {
	PublishClientProvisioned(ctx context.Context, event ClientProvisionedEvent) error
}
