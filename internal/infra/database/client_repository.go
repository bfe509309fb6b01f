package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/agency-admin/internal/entity"
)

type ClientRepository struct {
	DB *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{DB: db}
}

const clientColumns = `id, name, email, phone, company, service_start_date, created_at, updated_at`

func scanClient(row interface{ Scan(...any) error }, c *entity.Client) error {
	return row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.ServiceStartDate, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ClientRepository) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := conn(ctx, r.DB).ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.Company,
		c.ServiceStartDate,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return translateError(err)
}

func (r *ClientRepository) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, company = $5, service_start_date = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := conn(ctx, r.DB).ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.ServiceStartDate, c.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	return expectAffected(res, entity.ErrClientNotFound)
}

// Delete relies on ON DELETE CASCADE for contracts and payments.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return expectAffected(res, entity.ErrClientNotFound)
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	var c entity.Client
	if err := scanClient(conn(ctx, r.DB).QueryRowContext(ctx, query, id), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE email = $1`

	var c entity.Client
	if err := scanClient(conn(ctx, r.DB).QueryRowContext(ctx, query, email), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns clients by name, each with its contracts and their service,
// sub-service and plan.
func (r *ClientRepository) List(ctx context.Context) ([]entity.Client, error) {
	db := conn(ctx, r.DB)

	rows, err := db.QueryContext(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []entity.Client
	index := map[string]int{}
	for rows.Next() {
		var c entity.Client
		if err := scanClient(rows, &c); err != nil {
			return nil, err
		}
		c.Contracts = []entity.Contract{}
		index[c.ID] = len(clients)
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	contracts, err := listContracts(ctx, db, "")
	if err != nil {
		return nil, err
	}
	for _, ct := range contracts {
		if i, ok := index[ct.ClientID]; ok {
			ct.Client = nil
			clients[i].Contracts = append(clients[i].Contracts, ct)
		}
	}
	return clients, nil
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
