package database

import (
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/xavierca1/agency-admin/internal/entity"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"

	clientsEmailConstraint = "clients_email_key"
)

// translateError maps driver errors of either driver to domain errors.
// Anything unrecognised is returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	code, constraint := pgErrorDetails(err)
	switch code {
	case uniqueViolation:
		if constraint == clientsEmailConstraint {
			return entity.ErrEmailAlreadyExists
		}
		slog.Warn("unique violation", "constraint", constraint, "error", err)
		return entity.ErrDuplicateKey
	case foreignKeyViolation:
		slog.Warn("foreign key violation", "constraint", constraint, "error", err)
		return entity.ErrStillReferenced
	}
	return err
}

func pgErrorDetails(err error) (code, constraint string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), pqErr.Constraint
	}
	return "", ""
}
