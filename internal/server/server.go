package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Alturino/shopping/internal/config"
	"github.com/Alturino/shopping/internal/infra"
	"github.com/Alturino/shopping/internal/log"
	"github.com/Alturino/shopping/internal/middleware"
	"github.com/Alturino/shopping/internal/otel"
	"github.com/Alturino/shopping/internal/repository"
	"github.com/Alturino/shopping/internal/token"
)

const timeout = 45 * time.Second

// Dependencies are the shared clients handed to every area attached to a server.
type Dependencies struct {
	Config  *config.Config
	Pool    *pgxpool.Pool
	Queries *repository.Queries
	Cache   *redis.Client
	Tokens  *token.Manager
	Auth    mux.MiddlewareFunc
}

type AttachFunc func(router *mux.Router, deps Dependencies)

// NewHandler builds the router with the health and metrics endpoints, lets attach mount
// the area routes and wraps everything with CORS.
func NewHandler(appName string, deps Dependencies, attach AttachFunc) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.RecoverPanic, middleware.Logging, otelmux.Middleware(appName))

	router.Handle("/", otelhttp.NewHandler(http.HandlerFunc(healthCheck), "health")).Methods(http.MethodGet)
	router.Handle("/health/config", otelhttp.NewHandler(configSnapshot(deps.Config), "health config")).
		Methods(http.MethodGet)
	router.Handle("/metrics", otelhttp.NewHandler(promhttp.Handler(), "metrics")).Methods(http.MethodGet)

	if attach != nil {
		attach(router, deps)
	}

	return middleware.Cors(deps.Config.Application.CorsAllowOrigins)(router)
}

// baseContext keeps the values of c, the logger included, but not its cancellation so
// in-flight requests can finish while Shutdown drains them.
func baseContext(c context.Context) func(net.Listener) context.Context {
	base := context.WithoutCancel(c)
	return func(net.Listener) context.Context { return base }
}

// Run starts an HTTP server for appName and blocks until c is cancelled, then drains
// in-flight requests and flushes telemetry.
func Run(c context.Context, appName string, configDir string, attach AttachFunc) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, appName).
		Str(log.KeyTag, "server Run").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing config").Logger()
	logger.Info().Msg("initializing config")
	cfg, err := config.InitConfig(logger.WithContext(c), configDir, appName)
	if err != nil {
		err = fmt.Errorf("failed initializing config with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("initialized config")

	logger = log.New(cfg.Application.LogPath, cfg.Application.Env).
		With().
		Str(log.KeyAppName, appName).
		Str(log.KeyTag, "server Run").
		Logger()
	c = logger.WithContext(c)

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	shutdownFuncs, err := otel.InitOtelSdk(c, appName, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(c), 10*time.Second)
		defer cancel()
		if err := otel.ShutdownOtel(shutdownCtx, shutdownFuncs); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(log.KeyProcess, "migrating database").Logger()
	logger.Info().Msg("migrating database")
	if err = infra.Migrate(c, cfg.Database); err != nil {
		err = fmt.Errorf("failed migrating database with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("migrated database")

	logger = logger.With().Str(log.KeyProcess, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	pool, err := infra.NewDatabaseClient(c, cfg.Database)
	if err != nil {
		err = fmt.Errorf("failed initializing database with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer pool.Close()
	logger.Info().Msg("initialized database")

	logger = logger.With().Str(log.KeyProcess, "initializing cache").Logger()
	logger.Info().Msg("initializing cache")
	cache, err := infra.NewCacheClient(c, cfg.Cache)
	if err != nil {
		err = fmt.Errorf("failed initializing cache with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer cache.Close()
	logger.Info().Msg("initialized cache")

	tokens := token.NewManager(cfg.Application)
	deps := Dependencies{
		Config:  cfg,
		Pool:    pool,
		Queries: repository.New(pool),
		Cache:   cache,
		Tokens:  tokens,
		Auth:    middleware.Auth(tokens),
	}

	logger = logger.With().Str(log.KeyProcess, "initializing server").Logger()
	logger.Info().Msg("initializing server")
	server := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  baseContext(c),
		Handler:      NewHandler(appName, deps, attach),
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	logger.Info().Msg("initialized server")

	serverErr := make(chan error, 1)
	serverLogger := logger.With().Str(log.KeyProcess, "start server").Logger()
	go func() {
		serverLogger.Info().Msgf("start listening request at %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("error=%w occured while server is running", err)
		}
		close(serverErr)
	}()

	select {
	case err = <-serverErr:
		logger.Error().Err(err).Msg(err.Error())
		return err
	case <-c.Done():
	}

	logger = logger.With().Str(log.KeyProcess, "shutdown server").Logger()
	logger.Info().Msg("received interuption signal shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(c), timeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		err = fmt.Errorf("failed shutting down server with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("server completely shutdown")

	return nil
}
