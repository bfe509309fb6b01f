package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/xavierca1/agency-admin/internal/entity"
)

const dateLayout = time.DateOnly

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, contract_id, client_id, amount, due_date, payment_date, status, payment_method, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := conn(ctx, r.DB).ExecContext(ctx, query,
		p.ID,
		p.ContractID,
		p.ClientID,
		p.Amount,
		p.DueDate,
		p.PaymentDate,
		string(p.Status),
		string(p.PaymentMethod),
		p.Description,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return translateError(err)
}

func (r *PaymentRepository) Update(ctx context.Context, p *entity.Payment) error {
	query := `
		UPDATE payments
		SET contract_id = $2, client_id = $3, amount = $4, due_date = $5, payment_date = $6,
		    status = $7, payment_method = $8, description = $9, updated_at = $10
		WHERE id = $1
	`
	res, err := conn(ctx, r.DB).ExecContext(ctx, query,
		p.ID, p.ContractID, p.ClientID, p.Amount, p.DueDate, p.PaymentDate,
		string(p.Status), string(p.PaymentMethod), p.Description, p.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	return expectAffected(res, entity.ErrPaymentNotFound)
}

func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return expectAffected(res, entity.ErrPaymentNotFound)
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*entity.Payment, error) {
	query := `
		SELECT id, contract_id, client_id, amount, due_date, payment_date, status, payment_method, description, created_at, updated_at
		FROM payments
		WHERE id = $1
	`
	var (
		p    entity.Payment
		paid sql.NullTime
	)
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.ContractID, &p.ClientID, &p.Amount, &p.DueDate, &paid,
		&p.Status, &p.PaymentMethod, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrPaymentNotFound
		}
		return nil, err
	}
	if paid.Valid {
		p.PaymentDate = &paid.Time
	}
	return &p, nil
}

// List returns payments newest first, flattened with client and service
// names and dates as YYYY-MM-DD.
func (r *PaymentRepository) List(ctx context.Context) ([]entity.PaymentView, error) {
	query := `
		SELECT p.id, p.contract_id, p.client_id, cl.name, s.name, p.amount, p.due_date, p.payment_date,
		       p.status, p.payment_method, p.description
		FROM payments p
		JOIN clients cl ON cl.id = p.client_id
		JOIN contracts ct ON ct.id = p.contract_id
		JOIN services s ON s.id = ct.service_id
		ORDER BY p.created_at DESC
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []entity.PaymentView{}
	for rows.Next() {
		var (
			v    entity.PaymentView
			due  time.Time
			paid sql.NullTime
		)
		err := rows.Scan(&v.ID, &v.ContractID, &v.ClientID, &v.ClientName, &v.ServiceName, &v.Amount,
			&due, &paid, &v.Status, &v.PaymentMethod, &v.Description)
		if err != nil {
			return nil, err
		}
		v.DueDate = due.Format(dateLayout)
		if paid.Valid {
			s := paid.Time.Format(dateLayout)
			v.PaymentDate = &s
		}
		payments = append(payments, v)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) DeleteByClientID(ctx context.Context, clientID string) error {
	_, err := conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM payments WHERE client_id = $1`, clientID)
	return translateError(err)
}

// MarkOverdue flips PENDING payments due before asOf to OVERDUE and
// returns the ids it changed.
func (r *PaymentRepository) MarkOverdue(ctx context.Context, asOf time.Time) ([]string, error) {
	query := `
		UPDATE payments
		SET status = 'OVERDUE', updated_at = NOW()
		WHERE status = 'PENDING' AND due_date < $1
		RETURNING id
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
