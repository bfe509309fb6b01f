package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/xavierca1/agency-admin/internal/entity"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT id, email, name, role, password, created_at FROM users WHERE email = $1`

	var u entity.User
	err := conn(ctx, r.DB).QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateIfMissing inserts u unless a user with the same email exists.
// It reports whether a row was written.
func (r *UserRepository) CreateIfMissing(ctx context.Context, u *entity.User) (bool, error) {
	query := `
		INSERT INTO users (id, email, password, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (email) DO NOTHING
	`
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	res, err := conn(ctx, r.DB).ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.Name, string(u.Role), u.CreatedAt)
	if err != nil {
		return false, translateError(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
