package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/agency-admin/internal/entity"
)

type PlanRepository struct {
	DB *sql.DB
}

func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{DB: db}
}

// List returns every plan, cheapest first.
func (r *PlanRepository) List(ctx context.Context) ([]entity.Plan, error) {
	query := `
		SELECT id, service_id, name, description, posts_per_month, price, created_at, updated_at
		FROM plans
		ORDER BY price ASC
	`
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := []entity.Plan{}
	for rows.Next() {
		var p entity.Plan
		err := rows.Scan(&p.ID, &p.ServiceID, &p.Name, &p.Description, &p.PostsPerMonth, &p.Price, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// ReplaceForService upserts plans under serviceID and removes that
// service's plans missing from the list. Plans of other services are
// left alone.
func (r *PlanRepository) ReplaceForService(ctx context.Context, serviceID string, plans []entity.Plan) error {
	db := conn(ctx, r.DB)

	upsert := `
		INSERT INTO plans (id, service_id, name, description, posts_per_month, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description, posts_per_month = EXCLUDED.posts_per_month,
		    price = EXCLUDED.price, updated_at = EXCLUDED.updated_at
		WHERE plans.service_id = EXCLUDED.service_id
	`
	keep := make([]any, 0, len(plans)+1)
	keep = append(keep, serviceID)
	for _, p := range plans {
		_, err := db.ExecContext(ctx, upsert, p.ID, serviceID, p.Name, p.Description, p.PostsPerMonth, p.Price, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return translateError(err)
		}
		keep = append(keep, p.ID)
	}

	_, err := db.ExecContext(ctx, deleteMissingQuery("plans", len(plans)), keep...)
	return translateError(err)
}
