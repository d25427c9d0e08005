// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Fitlog HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open storage: PostgreSQL (pool + migrations) or process memory.
//  4. Connect to Redis when configured (identity cache).
//  5. Build security primitives (hasher, token service).
//  6. Wire domain services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/fitlog/internal/api"
	"github.com/taibuivan/fitlog/internal/platform/config"
	"github.com/taibuivan/fitlog/internal/platform/constants"
	"github.com/taibuivan/fitlog/internal/platform/migration"
	pgstore "github.com/taibuivan/fitlog/internal/platform/postgres"
	redisstore "github.com/taibuivan/fitlog/internal/platform/redis"
	"github.com/taibuivan/fitlog/internal/platform/sec"
	"github.com/taibuivan/fitlog/internal/tracking/goal"
	"github.com/taibuivan/fitlog/internal/tracking/session"
	"github.com/taibuivan/fitlog/internal/users/account"
	"github.com/taibuivan/fitlog/internal/users/auth"
)

// stores is the persistence set selected by STORAGE_DRIVER.
type stores struct {
	users    auth.UserRepository
	sessions session.Repository
	goals    goal.Repository
	history  account.WorkoutHistory
	purgers  []account.OwnerDataPurger
	pool     *pgxpool.Pool
}

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage", cfg.StorageDriver),
	)

	// Bounded so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Storage ────────────────────────────────────────────────────────
	store := openStores(startupCtx, cfg, log)
	if store.pool != nil {
		defer func() {
			log.Info("closing_postgres_pool")
			store.pool.Close()
		}()
	}

	health := api.HealthDependencies{}
	if store.pool != nil {
		health.CheckDatabase = func(ctx context.Context) error {
			return pgstore.Ping(ctx, store.pool)
		}
	}

	// ── 4. Redis ──────────────────────────────────────────────────────────
	var identityCache auth.IdentityCache
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_failed", slog.Any("error", cerr))
			}
		}()

		identityCache = auth.NewRedisIdentityCache(rdb, constants.IdentityCacheTTL)
		health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}

	// ── 5. Security ───────────────────────────────────────────────────────
	hasher, err := sec.NewPasswordHasher(cfg.BcryptCost, cfg.HashConcurrency)
	must(log, err, "initialize password hasher")

	tokens, err := sec.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.TokenTTL)
	must(log, err, "initialize token service")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	authOptions := []auth.Option{}
	if identityCache != nil {
		authOptions = append(authOptions, auth.WithIdentityCache(identityCache))
	}
	authService := auth.NewService(store.users, hasher, tokens, log, authOptions...)
	progressService := account.NewProgressService(store.history, store.users, identityCache, log)
	accountService := account.NewService(store.users, hasher, identityCache, log, store.purgers...)
	sessionService := session.NewService(store.sessions, log, session.WithProgressNotifier(progressService))
	goalService := goal.NewService(store.goals, log)

	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log,
		api.Guard{Verifier: tokens, Resolver: authService},
		api.Handlers{
			Liveness:  liveness,
			Readiness: readiness,
			Auth:      auth.NewHandler(authService),
			Account:   account.NewHandler(accountService),
			Session:   session.NewHandler(sessionService),
			Goal:      goal.NewHandler(goalService),
		})

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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("server_shutting_down", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("server_shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// openStores connects the configured persistence backend.
//
// PostgreSQL relies on ON DELETE CASCADE for account deletion; the in-memory
// stores are registered as purgers instead.
func openStores(ctx context.Context, cfg *config.Config, log *slog.Logger) stores {
	if cfg.UsesMemoryStorage() {
		log.Warn("memory_storage_enabled", slog.String("note", "data is lost on restart"))

		sessions := session.NewMemoryRepository()
		goals := goal.NewMemoryRepository()
		return stores{
			users:    auth.NewMemoryUserRepository(),
			sessions: sessions,
			goals:    goals,
			history:  sessions,
			purgers:  []account.OwnerDataPurger{sessions, goals},
		}
	}

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	return stores{
		users:    auth.NewPostgresUserRepository(pool),
		sessions: session.NewPostgresRepository(pool),
		goals:    goal.NewPostgresRepository(pool),
		history:  account.NewPostgresWorkoutHistory(pool),
		pool:     pool,
	}
}

// newLogger builds the process-wide JSON logger and installs it as default.
func newLogger(level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(logger)
	return logger
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failed",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
