// Package postgres holds shared helpers for the pgx-backed adapters.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/petorang/superpet-api/internal/ports/out/storage"
)

// UniqueViolationCode is the SQLSTATE for unique constraint violations.
const UniqueViolationCode = "23505"

// AsPgError extracts a *pgconn.PgError from err, if one is wrapped inside.
func AsPgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsUnavailable reports whether err indicates the database is unreachable
// rather than a statement-level failure.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded)
}

// WrapUnavailable tags connectivity failures with storage.ErrUnavailable so
// callers can map them without importing pgx.
func WrapUnavailable(err error) error {
	if err == nil {
		return nil
	}
	if IsUnavailable(err) {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return err
}
