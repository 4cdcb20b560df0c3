package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/shopping/internal/log"
	"github.com/Alturino/shopping/internal/otel"
)

// Rollback is meant to be deferred right after a transaction begins. It is a no-op
// once the transaction has been committed.
func Rollback(c context.Context, tx pgx.Tx, span trace.Span) {
	logger := zerolog.Ctx(c).With().Str(log.KeyProcess, "rolling back transaction").Logger()
	err := tx.Rollback(c)
	if err == nil {
		logger.Info().Msg("rolled back transaction")
		return
	}
	if errors.Is(err, pgx.ErrTxClosed) {
		return
	}
	err = fmt.Errorf("failed rolling back transaction with error=%w", err)
	otel.RecordError(err, span)
	logger.Error().Err(err).Msg(err.Error())
}
