package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpAdapter "github.com/finvue/debtplan/internal/adapter/http"
	"github.com/finvue/debtplan/internal/adapter/http/handler"
	"github.com/finvue/debtplan/internal/adapter/http/middleware"
	postgresRepo "github.com/finvue/debtplan/internal/adapter/repository/postgres"
	redisRepo "github.com/finvue/debtplan/internal/adapter/repository/redis"
	"github.com/finvue/debtplan/internal/infrastructure/config"
	"github.com/finvue/debtplan/internal/infrastructure/logger"
	"github.com/finvue/debtplan/internal/infrastructure/metrics"
	"github.com/finvue/debtplan/internal/infrastructure/postgres"
	"github.com/finvue/debtplan/internal/infrastructure/redis"
	"github.com/finvue/debtplan/internal/usecase"
)

const limiterCleanupInterval = time.Hour

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Initialize repositories
	debtRepo := postgresRepo.NewDebtRepository(pool)
	snapshotRepo := postgresRepo.NewSnapshotRepository(pool)
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(log)
	idGen := postgresRepo.NewULIDGenerator()
	planCache := redisRepo.NewPlanCache(redisClient)

	// Initialize use case and handlers
	plannerUC := usecase.NewPlannerUseCase(debtRepo, snapshotRepo, txManager, retrier, planCache, idGen, m)
	plannerHandler := handler.NewPlannerHandler(plannerUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Per-IP rate limiting; idle limiter state is flushed periodically so the
	// map does not grow without bound.
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)
	go func() {
		ticker := time.NewTicker(limiterCleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			rateLimiter.CleanupLimiters()
		}
	}()

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		PlannerHandler: plannerHandler,
		HealthHandler:  healthHandler,
		Logger:         log,
		Metrics:        m,
		RateLimiter:    rateLimiter,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
