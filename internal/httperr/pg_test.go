package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsExclusionConflict(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23P01"}

	if !IsExclusionConflict(pgErr) {
		t.Error("23P01 must be recognized as an exclusion conflict")
	}
	if !IsExclusionConflict(fmt.Errorf("create booking: %w", pgErr)) {
		t.Error("wrapped 23P01 must be recognized")
	}
	if IsExclusionConflict(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation is not an exclusion conflict")
	}
	if IsExclusionConflict(errors.New("boom")) {
		t.Error("plain errors are not exclusion conflicts")
	}
}

func TestIsDuplicateObject(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "42710"}

	if !IsDuplicateObject(pgErr) {
		t.Error("42710 must be recognized as a duplicate object")
	}
	if !IsDuplicateObject(fmt.Errorf("alter table: %w", pgErr)) {
		t.Error("wrapped 42710 must be recognized")
	}
	if IsDuplicateObject(&pgconn.PgError{Code: "23P01"}) {
		t.Error("exclusion conflicts are not duplicate objects")
	}
	if IsDuplicateObject(errors.New("boom")) {
		t.Error("plain errors are not duplicate objects")
	}
}
