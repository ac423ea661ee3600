package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"tabpulse/internal/config"
	apierrors "tabpulse/internal/errors"
	"tabpulse/internal/middleware"
)

// RouterConfig carries the dependencies the router needs.
type RouterConfig struct {
	Config  *config.Config
	Logger  *slog.Logger
	Service AnalysisServiceInterface
	Version string
}

// NewRouter builds the full HTTP router with the middleware chain and all
// resource routes mounted.
func NewRouter(rc RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredLogger(rc.Logger))
	r.Use(middleware.Recoverer(rc.Logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Compress(5))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: []string{"*"},
		Logger:         rc.Logger,
	}))
	r.Use(chimiddleware.Timeout(rc.Config.Server.WriteTimeout))

	rateLimiter := middleware.NewRateLimiter(
		rc.Config.Server.RateLimitRPS,
		rc.Config.Server.RateLimitBurst,
		rc.Logger,
	)

	errorHandler := apierrors.NewErrorHandler(rc.Logger)
	analysisHandler := NewAnalysisHandler(rc.Service, rc.Logger, errorHandler, rc.Config.Server.MaxUploadBytes)
	healthHandler := NewHealthHandler(rc.Version)

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimiter.Handler)
		r.Mount("/analyses", analysisHandler.Routes())
		r.Mount("/health", healthHandler.Routes())
	})

	// Unauthenticated probe alias outside the rate-limited API tree.
	r.Get("/healthz", healthHandler.Health)

	r.Method(http.MethodGet, "/metrics", MetricsHandler())

	return r
}
