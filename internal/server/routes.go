package server

import (
	"os"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bizwhiz/bizwhiz/internal/config"
	"github.com/bizwhiz/bizwhiz/internal/observability"
	"github.com/bizwhiz/bizwhiz/internal/server/handlers"
)

func (s *Server) registerRoutes() {
	s.router.Get("/health", s.health.HealthHandler)
	s.router.Get("/health/live", s.health.LivenessHandler)
	s.router.Get("/health/ready", s.health.ReadinessHandler)
	s.router.Get("/health/startup", s.health.StartupHandler)

	s.router.Get("/version", handlers.VersionHandler)
	s.router.Get("/metrics", MetricsHandler)

	if s.results != nil {
		s.router.Get("/", s.results.Page)
		s.router.Post("/search", s.results.SearchForm)

		s.router.Route("/api", func(r chi.Router) {
			r.Get("/results", s.results.ListResults)
			r.Put("/results/{row}/status", s.results.UpdateStatus)
			r.Post("/search", s.results.SearchAPI)
		})
	}

	s.registerAdminEndpoint()
}

// registerAdminEndpoint exposes signal delivery when BIZWHIZ_ADMIN_TOKEN is set.
func (s *Server) registerAdminEndpoint() {
	envName := config.EnvPrefix + "_ADMIN_TOKEN"
	adminToken := os.Getenv(envName)
	logger := observability.ServerLogger

	if adminToken == "" {
		if logger != nil {
			logger.Debug("Admin signal endpoint disabled (no " + envName + " set)")
		}
		return
	}

	handler := signals.NewHTTPHandler(signals.HTTPConfig{
		TokenAuth: adminToken,
		RateLimit: 10,
		RateBurst: 5,
		Manager:   nil,
	})
	s.router.Post("/admin/signal", handler.ServeHTTP)

	if logger != nil {
		logger.Info("Admin signal endpoint enabled",
			zap.String("path", "/admin/signal"),
			zap.String("rate_limit", "10/min, burst 5"))
		logger.Warn("Admin endpoint enabled - ensure this server is not exposed to public internet")
	}
}
