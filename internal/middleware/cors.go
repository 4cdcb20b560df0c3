package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"

	inHttp "github.com/Alturino/shopping/internal/http"
)

// Cors allows the configured origins with credentials, any method and any header.
func Cors(origins []string) func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{
			inHttp.KeyHeaderAuthorization,
			inHttp.KeyHeaderContentType,
			inHttp.KeyHeaderRequestID,
		}),
		handlers.ExposedHeaders([]string{inHttp.KeyHeaderRequestID}),
		handlers.AllowCredentials(),
	)
}
