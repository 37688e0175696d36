package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgExclusionViolation = "23P01"
	pgDuplicateObject    = "42710"
)

// IsExclusionConflict reports whether err is a Postgres exclusion-constraint
// violation, raised when two blocking bookings for the same vendor overlap.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation
	}
	return false
}

// IsDuplicateObject reports whether err says the object already exists,
// raised when the startup DDL reruns against an already-constrained table.
func IsDuplicateObject(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgDuplicateObject
	}
	return false
}
