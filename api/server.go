// ABOUTME: Huma API server configuration and setup
// ABOUTME: Wires CORS, request logging, rate limiting and the metrics endpoint

package api

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"recipe-cook-api/api/middleware"
	"recipe-cook-api/core/interfaces"
)

const (
	Title   = "Recipe Cook API"
	Version = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger     interfaces.Logger
	RateLimit  int           // requests per window
	RateWindow time.Duration // rate limit window
	Metrics    bool          // serve Prometheus metrics at /metrics
}

func newRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "Retry-After"},
		MaxAge:         300,
	}))
	return router
}

func newHumaConfig() huma.Config {
	config := huma.DefaultConfig(Title, Version)
	config.Info.Description = "Runs recipes that map JSON and XML documents onto typed models"
	return config
}

// NewAPI creates a Huma API on a chi router with CORS only.
// The OpenAPI document is served at /openapi.json and the docs UI at /docs.
func NewAPI() (huma.API, chi.Router) {
	router := newRouter()
	return humachi.New(router, newHumaConfig()), router
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := newRouter()

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}
	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}
	if cfg.Metrics {
		router.Handle("/metrics", promhttp.Handler())
	}

	return humachi.New(router, newHumaConfig()), router
}
