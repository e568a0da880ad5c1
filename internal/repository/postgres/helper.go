package postgres

import (
	"database/sql"
	"errors"

	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// wrapError converts driver errors into marked domain errors
func wrapError(err error, entity string, details map[string]any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ierr.WithError(err).
			WithHintf("The %s was not found", entity).
			WithReportableDetails(details).
			Mark(ierr.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return ierr.WithError(err).
			WithHintf("A %s with these values already exists", entity).
			WithReportableDetails(details).
			Mark(ierr.ErrAlreadyExists)
	}

	return ierr.WithError(err).
		WithHintf("Failed to access %s", entity).
		WithReportableDetails(details).
		Mark(ierr.ErrDatabase)
}

// expectAffected turns a zero row update into a not found error
func expectAffected(res sql.Result, entity string, details map[string]any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrapError(err, entity, details)
	}
	if n == 0 {
		return ierr.NewErrorf("%s not found", entity).
			WithHintf("The %s was not found", entity).
			WithReportableDetails(details).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
