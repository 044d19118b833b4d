package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/finvue/debtplan/internal/adapter/http/handler"
	"github.com/finvue/debtplan/internal/adapter/http/middleware"
	"github.com/finvue/debtplan/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	PlannerHandler *handler.PlannerHandler
	HealthHandler  *handler.HealthHandler
	Logger         zerolog.Logger
	Metrics        *metrics.Metrics
	RateLimiter    *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Stateless planning on debts supplied in the request body
		r.Route("/plans", func(r chi.Router) {
			r.Post("/simulate", cfg.PlannerHandler.Simulate)
			r.Post("/order", cfg.PlannerHandler.PreviewOrder)
			r.Post("/compare", cfg.PlannerHandler.CompareRefinancing)
			r.Post("/ratio", cfg.PlannerHandler.DebtToIncome)
		})

		// Plans backed by a user's stored debts
		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/plan", cfg.PlannerHandler.PlanForUser)
			r.Get("/plan/history", cfg.PlannerHandler.PlanHistory)
		})
	})

	return r
}
