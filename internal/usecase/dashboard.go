package usecase

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xavierca1/agency-admin/internal/entity"
)

const recentPaymentsLimit = 5

type PendingPayment struct {
	ID          string          `json:"id"`
	Client      string          `json:"client"`
	Service     string          `json:"service"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"dueDate"`
	Description string          `json:"description"`
}

type RecentPayment struct {
	ID     string          `json:"id"`
	Client string          `json:"client"`
	Amount decimal.Decimal `json:"amount"`
	Status string          `json:"status"`
	Date   string          `json:"date"`
}

type ServiceStat struct {
	Service   string `json:"service"`
	Contracts int    `json:"contracts"`
}

type DashboardTotals struct {
	TotalClients    int             `json:"totalClients"`
	TotalContracts  int             `json:"totalContracts"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	PendingPayments int             `json:"pendingPayments"`
	PendingAmount   decimal.Decimal `json:"pendingAmount"`
}

type Growth struct {
	Clients int64 `json:"clients"`
	Revenue int64 `json:"revenue"`
}

type DashboardStats struct {
	Stats           DashboardTotals  `json:"stats"`
	RecentPayments  []RecentPayment  `json:"recentPayments"`
	PendingPayments []PendingPayment `json:"pendingPayments"`
	ServiceStats    []ServiceStat    `json:"serviceStats"`
	Growth          Growth           `json:"growth"`
}

type DashboardUseCase struct {
	Stats StatsRepository
	Now   func() time.Time
}

func NewDashboardUseCase(stats StatsRepository) *DashboardUseCase {
	return &DashboardUseCase{Stats: stats, Now: time.Now}
}

func (uc *DashboardUseCase) Get(ctx context.Context) (*DashboardStats, error) {
	var (
		out DashboardStats
		err error
	)

	if out.Stats.TotalClients, err = uc.Stats.CountClients(ctx); err != nil {
		return nil, wrapRepoErr("count clients", err)
	}
	if out.Stats.TotalContracts, err = uc.Stats.CountContractsByStatus(ctx, entity.ContractActive); err != nil {
		return nil, wrapRepoErr("count active contracts", err)
	}
	if out.Stats.TotalRevenue, err = uc.Stats.SumPaymentsByStatus(ctx, entity.PaymentPaid); err != nil {
		return nil, wrapRepoErr("sum paid payments", err)
	}

	pending, err := uc.Stats.PendingPayments(ctx)
	if err != nil {
		return nil, wrapRepoErr("list pending payments", err)
	}
	out.PendingPayments = pending
	out.Stats.PendingPayments = len(pending)
	out.Stats.PendingAmount = decimal.Zero
	for _, p := range pending {
		out.Stats.PendingAmount = out.Stats.PendingAmount.Add(p.Amount)
	}

	if out.RecentPayments, err = uc.Stats.RecentPayments(ctx, recentPaymentsLimit); err != nil {
		return nil, wrapRepoErr("list recent payments", err)
	}
	if out.ServiceStats, err = uc.Stats.ActiveContractsByService(ctx); err != nil {
		return nil, wrapRepoErr("group contracts by service", err)
	}

	if out.Growth, err = uc.growth(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *DashboardUseCase) growth(ctx context.Context) (Growth, error) {
	now := uc.Now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)
	nextMonth := thisMonth.AddDate(0, 1, 0)

	curClients, err := uc.Stats.CountClientsCreatedBetween(ctx, thisMonth, nextMonth)
	if err != nil {
		return Growth{}, wrapRepoErr("count clients this month", err)
	}
	prevClients, err := uc.Stats.CountClientsCreatedBetween(ctx, lastMonth, thisMonth)
	if err != nil {
		return Growth{}, wrapRepoErr("count clients last month", err)
	}
	curRevenue, err := uc.Stats.SumPaidBetween(ctx, thisMonth, nextMonth)
	if err != nil {
		return Growth{}, wrapRepoErr("sum revenue this month", err)
	}
	prevRevenue, err := uc.Stats.SumPaidBetween(ctx, lastMonth, thisMonth)
	if err != nil {
		return Growth{}, wrapRepoErr("sum revenue last month", err)
	}

	return Growth{
		Clients: GrowthPercent(decimal.NewFromInt(int64(curClients)), decimal.NewFromInt(int64(prevClients))),
		Revenue: GrowthPercent(curRevenue, prevRevenue),
	}, nil
}

// GrowthPercent is the rounded month-over-month change. A zero previous
// month counts as 100% growth when anything happened this month.
func GrowthPercent(current, previous decimal.Decimal) int64 {
	if !previous.IsPositive() {
		if current.IsPositive() {
			return 100
		}
		return 0
	}
	pct, _ := current.Sub(previous).Div(previous).Mul(hundred).Float64()
	// Math.round semantics: halves go up, also for negatives
	return int64(math.Floor(pct + 0.5))
}
