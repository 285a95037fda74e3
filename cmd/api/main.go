// Copyright (c) 2026 Lodex. All rights reserved.
// Author: duy.phamquoc.vn@gmail.com

// Command api is the entry point for the Lodex HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Build the search snapshot and coefficient table.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phamduy/lodex/internal/api"
	"github.com/phamduy/lodex/internal/core/catalog"
	"github.com/phamduy/lodex/internal/core/language"
	"github.com/phamduy/lodex/internal/core/metric"
	"github.com/phamduy/lodex/internal/core/search"
	"github.com/phamduy/lodex/internal/platform/config"
	"github.com/phamduy/lodex/internal/platform/constants"
	"github.com/phamduy/lodex/internal/platform/migration"
	pgstore "github.com/phamduy/lodex/internal/platform/postgres"
	redisstore "github.com/phamduy/lodex/internal/platform/redis"
	"github.com/phamduy/lodex/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "lodex"))
	slog.SetDefault(log)

	log.Info("[Lodex] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "lodex"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	languageService := language.NewService(language.NewPostgresRepository(pool), log)

	nameCache := catalog.NewRedisNameCache(rdb, cfg.NameCacheTTL)
	catalogService := catalog.NewService(catalog.NewPostgresRepository(pool), nameCache, log)

	metricService := metric.NewService(metric.NewPostgresRepository(pool), catalogService, log)

	engine := search.NewEngine(search.NewPostgresRepository(pool), log, search.Options{
		FuzzyThreshold:     cfg.FuzzyThreshold,
		FuzzyMaxCandidates: cfg.FuzzyMaxCandidates,
		BuildTimeout:       cfg.SnapshotBuildTimeout,
	})

	// ── 8. Initial Snapshots ──────────────────────────────────────────────
	// Loading is the only blocking I/O of the query path; once published,
	// query resolution never touches the store.
	must(log, engine.Reload(startupCtx), "build search snapshot")
	must(log, metricService.Reload(startupCtx), "load coefficient table")

	// ── 9. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
		CheckIndex: func() error {
			_, snapErr := engine.Snapshot()
			return snapErr
		},
	}, log)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Language:  language.NewHandler(languageService),
		Catalog:   catalog.NewHandler(catalogService),
		Metric:    metric.NewHandler(metricService),
		Search:    search.NewHandler(engine),
		Admin:     api.NewAdminHandler(engine, metricService, log),
	}

	server := api.NewServer(context.Background(), cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
