package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repositories depend on. pgxmock's
// pool satisfies it as well, so transaction logic is testable without a
// live database.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned on a unique-constraint violation.
var ErrDuplicate = errors.New("duplicate value for unique column")

// ErrVehicleUnavailable is returned when a booking targets a vehicle whose
// availability gate is not open.
var ErrVehicleUnavailable = errors.New("vehicle is not available")

// ErrBookingNotActive is returned when a status transition targets a
// booking already in a terminal state.
var ErrBookingNotActive = errors.New("booking is not active")

// isUniqueViolation reports whether err is a Postgres 23505 error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
