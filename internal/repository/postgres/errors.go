package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"inkwell/internal/domain"
)

// SQLSTATE codes the repositories react to
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgLockNotAvailable     = "55P03"
	pgDeadlockDetected     = "40P01"
	pgSerializationFailure = "40001"
	pgInvalidTextRepr      = "22P02"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsPgDuplicateError checks if error is a unique constraint violation
func IsPgDuplicateError(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgForeignKeyError checks if error is a foreign key violation
func IsPgForeignKeyError(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}

// IsPgInvalidIDError checks if a malformed UUID was compared against a uuid column
func IsPgInvalidIDError(err error) bool {
	return pgCode(err) == pgInvalidTextRepr
}

// IsPgLockError checks if the statement gave up waiting for a lock,
// or the transaction was aborted to break a deadlock or serialization conflict
func IsPgLockError(err error) bool {
	switch pgCode(err) {
	case pgLockNotAvailable, pgDeadlockDetected, pgSerializationFailure:
		return true
	}
	return false
}

// TranslateError maps driver errors onto domain errors.
// Errors that are already domain errors, or unknown, are wrapped with op.
func TranslateError(op string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case IsPgNoRowsError(err), IsPgInvalidIDError(err):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case IsPgLockError(err):
		return &domain.ConcurrencyError{Message: op + ": document is being modified, retry", Cause: err}
	case IsPgDuplicateError(err), IsPgForeignKeyError(err):
		var pgErr *pgconn.PgError
		errors.As(err, &pgErr)
		return &domain.ConstraintError{Constraint: pgErr.ConstraintName, Cause: err}
	}

	return fmt.Errorf("%s: %w", op, err)
}
