package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"no rows", pgx.ErrNoRows, domain.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), domain.ErrNotFound},
		{"malformed uuid", &pgconn.PgError{Code: pgInvalidTextRepr}, domain.ErrNotFound},
		{"lock timeout", &pgconn.PgError{Code: pgLockNotAvailable}, domain.ErrConcurrency},
		{"deadlock", &pgconn.PgError{Code: pgDeadlockDetected}, domain.ErrConcurrency},
		{"serialization", &pgconn.PgError{Code: pgSerializationFailure}, domain.ErrConcurrency},
		{"unique", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "document_versions_number_key"}, domain.ErrConstraint},
		{"foreign key", &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "attachments_version_fkey"}, domain.ErrConstraint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TranslateError("op", tt.err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestTranslateError_Details(t *testing.T) {
	assert.NoError(t, TranslateError("op", nil))

	var concurrency *domain.ConcurrencyError
	require.ErrorAs(t, TranslateError("revise document", &pgconn.PgError{Code: pgLockNotAvailable}), &concurrency)
	assert.True(t, concurrency.Retryable())
	assert.Contains(t, concurrency.Error(), "revise document")

	var constraint *domain.ConstraintError
	require.ErrorAs(t, TranslateError("create version", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "document_versions_number_key"}), &constraint)
	assert.Equal(t, "document_versions_number_key", constraint.Constraint)

	plain := errors.New("connection reset")
	err := TranslateError("list documents", plain)
	assert.ErrorIs(t, err, plain)
	assert.EqualError(t, err, "list documents: connection reset")
}
