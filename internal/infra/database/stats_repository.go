package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xavierca1/agency-admin/internal/entity"
	"github.com/xavierca1/agency-admin/internal/usecase"
)

// StatsRepository runs the dashboard aggregates.
type StatsRepository struct {
	DB *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

func (r *StatsRepository) CountClients(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n)
	return n, err
}

func (r *StatsRepository) CountClientsCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM clients WHERE created_at >= $1 AND created_at < $2`, from, to).Scan(&n)
	return n, err
}

func (r *StatsRepository) CountContractsByStatus(ctx context.Context, status entity.ContractStatus) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contracts WHERE status = $1`, string(status)).Scan(&n)
	return n, err
}

func (r *StatsRepository) SumPaymentsByStatus(ctx context.Context, status entity.PaymentStatus) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = $1`, string(status)).Scan(&sum)
	return sum, err
}

// SumPaidBetween sums PAID payments whose payment date falls in [from, to).
func (r *StatsRepository) SumPaidBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE status = 'PAID' AND payment_date >= $1 AND payment_date < $2
	`
	var sum decimal.Decimal
	err := r.DB.QueryRowContext(ctx, query, from, to).Scan(&sum)
	return sum, err
}

func (r *StatsRepository) PendingPayments(ctx context.Context) ([]usecase.PendingPayment, error) {
	query := `
		SELECT p.id, cl.name, s.name, p.amount, p.due_date, p.description
		FROM payments p
		JOIN clients cl ON cl.id = p.client_id
		JOIN contracts ct ON ct.id = p.contract_id
		JOIN services s ON s.id = ct.service_id
		WHERE p.status = 'PENDING'
		ORDER BY p.due_date ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []usecase.PendingPayment{}
	for rows.Next() {
		var (
			p   usecase.PendingPayment
			due time.Time
		)
		if err := rows.Scan(&p.ID, &p.Client, &p.Service, &p.Amount, &due, &p.Description); err != nil {
			return nil, err
		}
		p.DueDate = due.Format(dateLayout)
		out = append(out, p)
	}
	return out, rows.Err()
}

const recentPaymentsQuery = `
	SELECT p.id, cl.name, p.amount, p.status, COALESCE(p.payment_date, p.due_date) AS date
	FROM payments p
	JOIN clients cl ON cl.id = p.client_id
	ORDER BY p.created_at DESC
	LIMIT $1
`

// RecentPayments returns the latest created payments. The date shown is the
// payment date, or the due date while unpaid.
func (r *StatsRepository) RecentPayments(ctx context.Context, limit int) ([]usecase.RecentPayment, error) {
	rows, err := r.DB.QueryContext(ctx, recentPaymentsQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []usecase.RecentPayment{}
	for rows.Next() {
		var (
			p    usecase.RecentPayment
			date time.Time
		)
		if err := rows.Scan(&p.ID, &p.Client, &p.Amount, &p.Status, &date); err != nil {
			return nil, err
		}
		p.Date = date.Format(dateLayout)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Grouped by id so services sharing a name are counted apart.
const activeContractsByServiceQuery = `
	SELECT s.name, COUNT(*)
	FROM contracts ct
	JOIN services s ON s.id = ct.service_id
	WHERE ct.status = 'ACTIVE'
	GROUP BY s.id, s.name
	ORDER BY COUNT(*) DESC, s.name ASC
`

func (r *StatsRepository) ActiveContractsByService(ctx context.Context) ([]usecase.ServiceStat, error) {
	rows, err := r.DB.QueryContext(ctx, activeContractsByServiceQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []usecase.ServiceStat{}
	for rows.Next() {
		var s usecase.ServiceStat
		if err := rows.Scan(&s.Service, &s.Contracts); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
