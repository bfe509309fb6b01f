package database

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/xavierca1/agency-admin/internal/entity"
)

type ContractRepository struct {
	DB *sql.DB
}

func NewContractRepository(db *sql.DB) *ContractRepository {
	return &ContractRepository{DB: db}
}

func (r *ContractRepository) Create(ctx context.Context, c *entity.Contract) error {
	query := `
		INSERT INTO contracts (id, client_id, service_id, sub_service_id, plan_id, status, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := conn(ctx, r.DB).ExecContext(ctx, query,
		c.ID,
		c.ClientID,
		c.ServiceID,
		c.SubServiceID,
		c.PlanID,
		string(c.Status),
		c.StartDate,
		c.EndDate,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return translateError(err)
}

func (r *ContractRepository) Update(ctx context.Context, c *entity.Contract) error {
	query := `
		UPDATE contracts
		SET client_id = $2, service_id = $3, sub_service_id = $4, plan_id = $5,
		    status = $6, start_date = $7, end_date = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := conn(ctx, r.DB).ExecContext(ctx, query,
		c.ID, c.ClientID, c.ServiceID, c.SubServiceID, c.PlanID, string(c.Status), c.StartDate, c.EndDate, c.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	return expectAffected(res, entity.ErrContractNotFound)
}

func (r *ContractRepository) FindByID(ctx context.Context, id string) (*entity.Contract, error) {
	contracts, err := listContracts(ctx, conn(ctx, r.DB), id)
	if err != nil {
		return nil, err
	}
	if len(contracts) == 0 {
		return nil, entity.ErrContractNotFound
	}
	return &contracts[0], nil
}

func (r *ContractRepository) List(ctx context.Context) ([]entity.Contract, error) {
	return listContracts(ctx, conn(ctx, r.DB), "")
}

func (r *ContractRepository) DeleteByClientID(ctx context.Context, clientID string) error {
	_, err := conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM contracts WHERE client_id = $1`, clientID)
	return translateError(err)
}

// listContracts loads contracts newest first with client, service,
// sub-service and plan joined in. An empty id lists everything.
func listContracts(ctx context.Context, db DBTX, id string) ([]entity.Contract, error) {
	query := `
		SELECT
			ct.id, ct.client_id, ct.service_id, ct.sub_service_id, ct.plan_id,
			ct.status, ct.start_date, ct.end_date, ct.created_at, ct.updated_at,
			cl.name, cl.email, cl.company,
			s.name, s.type, s.base_price,
			ss.name, ss.price,
			p.name, p.posts_per_month, p.price
		FROM contracts ct
		JOIN clients cl ON cl.id = ct.client_id
		JOIN services s ON s.id = ct.service_id
		LEFT JOIN sub_services ss ON ss.id = ct.sub_service_id
		LEFT JOIN plans p ON p.id = ct.plan_id
		WHERE ($1 = '' OR ct.id = $1)
		ORDER BY ct.created_at DESC
	`

	rows, err := db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contracts := []entity.Contract{}
	for rows.Next() {
		var (
			c             entity.Contract
			client        entity.Client
			svc           entity.Service
			subID, planID sql.NullString
			subName       sql.NullString
			subPrice      decimal.NullDecimal
			planName      sql.NullString
			planPosts     sql.NullInt64
			planPrice     decimal.NullDecimal
			endDate       sql.NullTime
		)
		err := rows.Scan(
			&c.ID, &c.ClientID, &c.ServiceID, &subID, &planID,
			&c.Status, &c.StartDate, &endDate, &c.CreatedAt, &c.UpdatedAt,
			&client.Name, &client.Email, &client.Company,
			&svc.Name, &svc.Type, &svc.BasePrice,
			&subName, &subPrice,
			&planName, &planPosts, &planPrice,
		)
		if err != nil {
			return nil, err
		}

		client.ID = c.ClientID
		svc.ID = c.ServiceID
		c.Client = &client
		c.Service = &svc
		if endDate.Valid {
			c.EndDate = &endDate.Time
		}
		if subID.Valid {
			c.SubServiceID = &subID.String
			c.SubService = &entity.SubService{ID: subID.String, ServiceID: c.ServiceID, Name: subName.String, Price: subPrice.Decimal}
		}
		if planID.Valid {
			c.PlanID = &planID.String
			c.Plan = &entity.Plan{ID: planID.String, Name: planName.String, PostsPerMonth: int(planPosts.Int64), Price: planPrice.Decimal}
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contracts, nil
}
