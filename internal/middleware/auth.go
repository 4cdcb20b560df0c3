package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/shopping/internal/errors"
	inHttp "github.com/Alturino/shopping/internal/http"
	"github.com/Alturino/shopping/internal/log"
	"github.com/Alturino/shopping/internal/otel"
	"github.com/Alturino/shopping/internal/token"
)

type TokenVerifier interface {
	Verify(c context.Context, raw string) (*jwt.Token, error)
}

// Auth rejects requests without a valid bearer token and attaches the parsed token to
// the request context.
func Auth(verifier TokenVerifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, span := otel.Tracer.Start(r.Context(), "middleware Auth")
			defer span.End()

			logger := zerolog.Ctx(c).With().Str(log.KeyTag, "middleware Auth").Logger()

			logger = logger.With().Str(log.KeyProcess, "extracting bearer token").Logger()
			raw, ok := bearerToken(r.Header.Get(inHttp.KeyHeaderAuthorization))
			if !ok {
				err := fmt.Errorf("failed extracting bearer token with error=%w", inErrors.ErrEmptyAuth)
				otel.RecordError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteErrorResponse(c, w, err)
				return
			}

			logger = logger.With().Str(log.KeyProcess, "verifying token").Logger()
			c = logger.WithContext(c)
			jwtToken, err := verifier.Verify(c, raw)
			if err != nil {
				err = fmt.Errorf("failed verifying token with error=%w", err)
				otel.RecordError(err, span)
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteErrorResponse(c, w, err)
				return
			}
			logger.Trace().Msg("verified token")

			c = token.AttachJwtToken(c, jwtToken)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}

func bearerToken(authorization string) (string, bool) {
	scheme, raw, found := strings.Cut(strings.TrimSpace(authorization), " ")
	if !found || !strings.EqualFold(scheme, inHttp.ValueAuthSchemeBearer) {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}
