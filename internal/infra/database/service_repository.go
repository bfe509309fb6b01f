package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/xavierca1/agency-admin/internal/entity"
)

type ServiceRepository struct {
	DB *sql.DB
}

func NewServiceRepository(db *sql.DB) *ServiceRepository {
	return &ServiceRepository{DB: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *entity.Service) error {
	query := `
		INSERT INTO services (id, name, description, type, base_price, traffic_discount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := conn(ctx, r.DB).ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Description,
		string(s.Type),
		s.BasePrice,
		trafficDiscountArg(s.TrafficDiscount),
		s.CreatedAt,
		s.UpdatedAt,
	)
	return translateError(err)
}

func (r *ServiceRepository) Update(ctx context.Context, s *entity.Service) error {
	query := `
		UPDATE services
		SET name = $2, description = $3, type = $4, base_price = $5, traffic_discount = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := conn(ctx, r.DB).ExecContext(ctx, query,
		s.ID, s.Name, s.Description, string(s.Type), s.BasePrice, trafficDiscountArg(s.TrafficDiscount), s.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	return expectAffected(res, entity.ErrServiceNotFound)
}

func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	res, err := conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return expectAffected(res, entity.ErrServiceNotFound)
}

// DeleteInactiveContracts removes the service's contracts that are not ACTIVE;
// their payments go with them by cascade.
func (r *ServiceRepository) DeleteInactiveContracts(ctx context.Context, serviceID string) error {
	_, err := conn(ctx, r.DB).ExecContext(ctx,
		`DELETE FROM contracts WHERE service_id = $1 AND status <> 'ACTIVE'`, serviceID)
	return translateError(err)
}

func (r *ServiceRepository) FindByID(ctx context.Context, id string) (*entity.Service, error) {
	db := conn(ctx, r.DB)
	query := `
		SELECT id, name, description, type, base_price, traffic_discount, created_at, updated_at, 0
		FROM services
		WHERE id = $1
	`

	svc, err := scanService(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrServiceNotFound
		}
		return nil, err
	}

	subs, err := listSubServices(ctx, db, id)
	if err != nil {
		return nil, err
	}
	svc.SubServices = subs[id]
	if svc.SubServices == nil {
		svc.SubServices = []entity.SubService{}
	}
	return svc, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]entity.Service, error) {
	db := conn(ctx, r.DB)
	query := `
		SELECT s.id, s.name, s.description, s.type, s.base_price, s.traffic_discount, s.created_at, s.updated_at,
		       COUNT(c.id) FILTER (WHERE c.status = 'ACTIVE')
		FROM services s
		LEFT JOIN contracts c ON c.service_id = s.id
		GROUP BY s.id
		ORDER BY s.name ASC
	`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []entity.Service{}
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *svc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subs, err := listSubServices(ctx, db, "")
	if err != nil {
		return nil, err
	}
	for i := range services {
		services[i].SubServices = subs[services[i].ID]
		if services[i].SubServices == nil {
			services[i].SubServices = []entity.SubService{}
		}
	}
	return services, nil
}

// ReplaceSubServices upserts subs by id and deletes the service's
// sub-services missing from subs. Contracts pointing at a deleted
// sub-service keep their row with sub_service_id set to NULL.
func (r *ServiceRepository) ReplaceSubServices(ctx context.Context, serviceID string, subs []entity.SubService) error {
	db := conn(ctx, r.DB)

	upsert := `
		INSERT INTO sub_services (id, service_id, name, description, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description, price = EXCLUDED.price, updated_at = EXCLUDED.updated_at
		WHERE sub_services.service_id = EXCLUDED.service_id
	`
	keep := make([]any, 0, len(subs)+1)
	keep = append(keep, serviceID)
	for _, s := range subs {
		if _, err := db.ExecContext(ctx, upsert, s.ID, serviceID, s.Name, s.Description, s.Price, s.CreatedAt, s.UpdatedAt); err != nil {
			return translateError(err)
		}
		keep = append(keep, s.ID)
	}

	_, err := db.ExecContext(ctx, deleteMissingQuery("sub_services", len(subs)), keep...)
	return translateError(err)
}

func (r *ServiceRepository) CountActiveContracts(ctx context.Context, serviceID string) (int, error) {
	var n int
	err := conn(ctx, r.DB).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contracts WHERE service_id = $1 AND status = 'ACTIVE'`, serviceID).Scan(&n)
	return n, err
}

func scanService(row interface{ Scan(...any) error }) (*entity.Service, error) {
	var (
		svc      entity.Service
		discount sql.NullString
	)
	err := row.Scan(&svc.ID, &svc.Name, &svc.Description, &svc.Type, &svc.BasePrice, &discount,
		&svc.CreatedAt, &svc.UpdatedAt, &svc.ActiveContractCount)
	if err != nil {
		return nil, err
	}

	if discount.Valid && discount.String != "" && discount.String != "null" {
		svc.TrafficDiscount = &entity.TrafficDiscount{}
		if err := svc.TrafficDiscount.Scan(discount.String); err != nil {
			return nil, fmt.Errorf("service %s: %w", svc.ID, err)
		}
	}
	return &svc, nil
}

// listSubServices groups sub-services by service id, ordered by price.
// An empty serviceID loads all of them.
func listSubServices(ctx context.Context, db DBTX, serviceID string) (map[string][]entity.SubService, error) {
	query := `
		SELECT id, service_id, name, description, price, created_at, updated_at
		FROM sub_services
		WHERE ($1 = '' OR service_id = $1)
		ORDER BY price ASC, name ASC
	`
	rows, err := db.QueryContext(ctx, query, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]entity.SubService{}
	for rows.Next() {
		var s entity.SubService
		if err := rows.Scan(&s.ID, &s.ServiceID, &s.Name, &s.Description, &s.Price, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out[s.ServiceID] = append(out[s.ServiceID], s)
	}
	return out, rows.Err()
}

func trafficDiscountArg(d *entity.TrafficDiscount) any {
	if d == nil {
		return nil
	}
	return *d
}

// deleteMissingQuery builds a DELETE for the rows of table owned by the
// service in $1 whose id is not among $2..$n+1.
func deleteMissingQuery(table string, n int) string {
	if n == 0 {
		return "DELETE FROM " + table + " WHERE service_id = $1"
	}
	placeholders := make([]string, n)
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
	}
	return "DELETE FROM " + table + " WHERE service_id = $1 AND id NOT IN (" + strings.Join(placeholders, ", ") + ")"
}
