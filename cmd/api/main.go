// Package main is the entry point for the travel planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/travelplanner/backend/internal/config"
	"github.com/travelplanner/backend/internal/handler"
	"github.com/travelplanner/backend/internal/middleware"
	"github.com/travelplanner/backend/internal/repo"
	"github.com/travelplanner/backend/internal/service"
	"github.com/travelplanner/backend/internal/telemetry"
	"github.com/travelplanner/backend/migrations"
	"github.com/travelplanner/backend/spec"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Telemetry --------------------------------------------------------
	tel, err := telemetry.New(ctx, cfg.Otel)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
		tel, _ = telemetry.New(ctx, config.OtelConfig{ServiceName: cfg.Otel.ServiceName})
	}
	if tel.Enabled {
		logger.Info("tracing enabled", "endpoint", cfg.Otel.Endpoint)
	}

	// --- Database ---------------------------------------------------------
	// pgxpool.New does not open connections; the ping below does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	logger.Info("database connection established")

	if cfg.MigrateOnStart {
		sqlDB := stdlib.OpenDBFromPool(pool)
		n, err := migrations.Up(ctx, sqlDB)
		_ = sqlDB.Close()
		if err != nil {
			return err
		}
		logger.Info("migrations complete", "applied", n)
	}

	// --- Redis (optional) -------------------------------------------------
	rdb, err := newRedis(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		logger.Info("redis connected; rate limits are shared")
	} else {
		logger.Info("REDIS_URL not set; rate limits are per process")
	}

	// --- Services ---------------------------------------------------------
	users := repo.NewUserRepo(pool)
	trips := repo.NewTripRepo(pool)
	sections := repo.NewSectionRepo(pool)
	places := repo.NewPlaceRepo(pool)
	messages := repo.NewCommunityRepo(pool)
	analytics := repo.NewAnalyticsRepo(pool)

	srv := handler.NewServer(handler.Services{
		Auth:      service.NewAuthService(users, cfg.BcryptCost),
		Users:     service.NewUserService(users, trips, service.SystemClock),
		Trips:     service.NewTripService(trips, service.SystemClock),
		Itinerary: service.NewItineraryService(sections),
		Community: service.NewCommunityService(trips, sections, messages),
		Places:    service.NewPlaceService(places, users),
		Calendar:  service.NewCalendarService(trips, service.SystemClock),
		Admin:     service.NewAdminService(users, trips, analytics, service.SystemClock),
		Export:    service.NewExportService(trips, sections),
	}, pool, spec.OpenAPI)

	// --- Router -----------------------------------------------------------
	// Order matters: the request ID and span exist before the logger reads
	// them, and the recoverer sits inside the logger so panics log as 500s.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewTracing(tel.Tracer, otel.GetTextMapPropagator()))
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	if cfg.RateLimit.Enabled {
		r.Use(middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
			Limit:      middleware.PerMinute(cfg.RateLimit.Requests, cfg.RateLimit.Burst),
			BypassFunc: middleware.BypassHealth,
		}).Handler)
	}
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		logger.Warn("telemetry shutdown", "error", err)
	}
	logger.Info("server stopped")
	return nil
}

// newRedis connects to url, or returns a nil client when url is empty.
func newRedis(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.PoolTimeout = 30 * time.Second
	opts.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
