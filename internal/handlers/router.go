package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/maxpieter/eu-network-graph/internal/config"
	"github.com/maxpieter/eu-network-graph/internal/middleware"
	"github.com/maxpieter/eu-network-graph/internal/observability"
)

// NewRouter wires the middleware chain and routes. collector may be
// nil when metrics are disabled.
func NewRouter(h *GraphHandler, cfg *config.Config, logger *zap.Logger, collector *observability.Collector) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recovery(logger))
	if collector != nil {
		r.Use(middleware.Metrics(collector))
	}

	if cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", h.GetGraph)
		r.Get("/health", h.Health)
	})

	if collector != nil {
		r.Handle("/metrics", collector.Handler())
	}

	return r
}
