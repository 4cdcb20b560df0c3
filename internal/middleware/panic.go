package middleware

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	inHttp "github.com/Alturino/shopping/internal/http"
	"github.com/Alturino/shopping/internal/log"
	"github.com/Alturino/shopping/internal/otel"
)

func RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, span := otel.Tracer.Start(r.Context(), "middleware RecoverPanic")
		defer span.End()

		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			err, ok := recovered.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", recovered)
			}

			logger := zerolog.Ctx(r.Context()).With().Str(log.KeyTag, "middleware RecoverPanic").Logger()
			logger.Error().Err(err).Stack().Msg("recovered from panic")
			otel.RecordError(err, span)
			inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     inHttp.StatusFailed,
				"statusCode": http.StatusInternalServerError,
				"message":    http.StatusText(http.StatusInternalServerError),
			})
		}()

		next.ServeHTTP(w, r.WithContext(c))
	})
}
