package server

import (
	"net/http"

	"github.com/Alturino/shopping/internal/config"
	inHttp "github.com/Alturino/shopping/internal/http"
)

func healthCheck(w http.ResponseWriter, r *http.Request) {
	inHttp.WriteJsonResponse(r.Context(), w, map[string]string{}, map[string]interface{}{
		"message": "Healthy",
	})
}

// configSnapshot exposes the runtime configuration minus every secret.
func configSnapshot(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inHttp.WriteJsonResponse(r.Context(), w, map[string]string{}, map[string]interface{}{
			"status":     inHttp.StatusSuccess,
			"statusCode": http.StatusOK,
			"message":    "config snapshot",
			"data": map[string]interface{}{
				"env":                cfg.Application.Env,
				"host":               cfg.Application.Host,
				"port":               cfg.Application.Port,
				"cors_allow_origins": cfg.Application.CorsAllowOrigins,
				"database_host":      cfg.Database.Host,
				"database_name":      cfg.Database.Name,
				"cache_host":         cfg.Cache.Host,
				"otel_host":          cfg.Otel.Host,
			},
		})
	}
}
