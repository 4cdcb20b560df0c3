package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	inErrors "github.com/Alturino/shopping/internal/errors"
)

const (
	PgCodeUniqueViolation      = "23505"
	PgCodeForeignKeyViolation  = "23503"
	PgCodeCheckViolation       = "23514"
	PgCodeNumericOutOfRange    = "22003"
	PgCodeSerializationFailure = "40001"
	PgCodeDeadlockDetected     = "40P01"
)

// MapError translates storage errors into the domain sentinels, keeping the original
// error in the chain.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", inErrors.ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case PgCodeUniqueViolation:
		return fmt.Errorf("%w: %w", inErrors.ErrConflict, err)
	case PgCodeForeignKeyViolation:
		return fmt.Errorf("%w: %w", inErrors.ErrNotFound, err)
	case PgCodeNumericOutOfRange:
		return fmt.Errorf("%w: %w", inErrors.ErrInvalidRequest, err)
	case PgCodeSerializationFailure, PgCodeDeadlockDetected:
		return fmt.Errorf("%w: %w", inErrors.ErrStorageConflict, err)
	default:
		return err
	}
}
