package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vendora/vendora_backend/internal/apperrors"
)

// PGXPool is the subset of pgxpool.Pool the repositories depend on. It is
// satisfied by *pgxpool.Pool in production and by pgxmock.PgxPoolIface in
// tests.
type PGXPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Unique constraint names from the users migration.
const (
	usernameConstraint = "users_user_name_key"
	emailConstraint    = "users_email_key"
)

// mapUniqueViolation translates a Postgres unique-violation error into the
// matching duplicate sentinel so the service layer can treat a lost insert
// race exactly like a failed precheck. Other errors pass through unchanged.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case usernameConstraint:
		return apperrors.ErrDuplicateUsername
	case emailConstraint:
		return apperrors.ErrDuplicateEmail
	default:
		return apperrors.ErrDuplicate
	}
}
