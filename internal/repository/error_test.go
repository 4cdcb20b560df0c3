package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	inErrors "github.com/Alturino/shopping/internal/errors"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{name: "no rows", input: fmt.Errorf("wrapped: %w", pgx.ErrNoRows), expected: inErrors.ErrNotFound},
		{name: "unique violation", input: &pgconn.PgError{Code: PgCodeUniqueViolation}, expected: inErrors.ErrConflict},
		{name: "foreign key violation", input: &pgconn.PgError{Code: PgCodeForeignKeyViolation}, expected: inErrors.ErrNotFound},
		{name: "numeric out of range", input: &pgconn.PgError{Code: PgCodeNumericOutOfRange}, expected: inErrors.ErrInvalidRequest},
		{name: "serialization failure", input: &pgconn.PgError{Code: PgCodeSerializationFailure}, expected: inErrors.ErrStorageConflict},
		{name: "deadlock", input: &pgconn.PgError{Code: PgCodeDeadlockDetected}, expected: inErrors.ErrStorageConflict},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := MapError(test.input)
			assert.ErrorIs(t, got, test.expected)
			assert.ErrorIs(t, got, test.input)
		})
	}

	t.Run("unknown error is returned as is", func(t *testing.T) {
		err := errors.New("boom")
		assert.Equal(t, err, MapError(err))
	})
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, MapError(nil))
	})
}
