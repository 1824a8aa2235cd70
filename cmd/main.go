// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
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

	"github.com/Shivanand-hulikatti/community-hub/internal/cache"
	"github.com/Shivanand-hulikatti/community-hub/internal/config"
	"github.com/Shivanand-hulikatti/community-hub/internal/database"
	"github.com/Shivanand-hulikatti/community-hub/internal/handler"
	"github.com/Shivanand-hulikatti/community-hub/internal/observability"
	"github.com/Shivanand-hulikatti/community-hub/internal/repository"
	"github.com/Shivanand-hulikatti/community-hub/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg.LogLevel())
	slog.SetDefault(logger)

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName:  "community-hub",
		Environment:  cfg.Env,
		Enabled:      cfg.TracingEnabled,
		Exporter:     cfg.TracingExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SamplerRatio: cfg.TracingSampler,
	})
	if err != nil {
		logger.Error("tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// ── 1. Connect to PostgreSQL ──────────────────────────────────────────
	pool, err := database.NewPool(ctx, database.PoolConfig{
		DSN:      cfg.DSN(),
		MaxConns: cfg.DBMaxConns,
	}, logger)
	if err != nil {
		logger.Error("database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Error("migrate", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("connected to PostgreSQL")

	// ── 2. Optional Redis ─────────────────────────────────────────────────
	var (
		rdb       *redis.Client
		snapshots service.SnapshotCache
	)
	if cfg.RedisURL != "" {
		rdb, err = cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, continuing without cache and rate limits",
				slog.String("error", err.Error()))
			rdb = nil
		} else {
			defer rdb.Close()
			snapshots = cache.NewStatsSnapshots(rdb)
			logger.Info("connected to Redis")
		}
	}

	// ── 3. Wire up layers ────────────────────────────────────────────────
	memberRepo := repository.NewMemberRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)
	teamRepo := repository.NewTeamRepository(pool)

	svcs := handler.Services{
		Members:      service.NewMemberService(memberRepo, logger),
		Events:       service.NewEventService(memberRepo, eventRepo, bookingRepo, logger),
		Bookings:     service.NewBookingService(bookingRepo, logger),
		Reviews:      service.NewReviewService(memberRepo, reviewRepo, logger),
		Applications: service.NewApplicationService(applicationRepo, logger),
		Admin:        service.NewAdminService(memberRepo, eventRepo, bookingRepo, reviewRepo, applicationRepo, logger),
		Team:         service.NewTeamService(teamRepo, logger),
		Stats: service.NewStatsCache(statsRepo, snapshots, service.StatsConfig{
			TTL:             cfg.StatsTTL,
			MentorshipPairs: cfg.StatsMentorshipPairs,
			ActiveProjects:  cfg.StatsActiveProjects,
		}, logger),
		Sweeper: service.NewSweeper(eventRepo, service.SweepMode(cfg.SweepMode), logger),
	}
	h := handler.New(svcs, handler.NewAuthenticator(cfg.JWTSecret), rdb, logger)

	// ── 4. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(handler.Tracing)
	r.Use(handler.Logger(logger))
	r.Use(handler.Metrics)
	r.Use(handler.CORS)

	h.Routes(r)

	// ── 5. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}
