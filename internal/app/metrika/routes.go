package metrika

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/metrikapro/metrika-backend/internal/http/handlers/auth/login"
	"github.com/metrikapro/metrika-backend/internal/http/handlers/auth/register"
	"github.com/metrikapro/metrika-backend/internal/http/handlers/health"
	integrationconnect "github.com/metrikapro/metrika-backend/internal/http/handlers/integration/connect"
	integrationlist "github.com/metrikapro/metrika-backend/internal/http/handlers/integration/list"
	"github.com/metrikapro/metrika-backend/internal/http/handlers/metricsummary"
	projectcreate "github.com/metrikapro/metrika-backend/internal/http/handlers/project/create"
	projectlist "github.com/metrikapro/metrika-backend/internal/http/handlers/project/list"
	projectremove "github.com/metrikapro/metrika-backend/internal/http/handlers/project/remove"
	"github.com/metrikapro/metrika-backend/internal/http/handlers/reportlist"
	trackingscript "github.com/metrikapro/metrika-backend/internal/http/handlers/tracking/script"
	trackingtrack "github.com/metrikapro/metrika-backend/internal/http/handlers/tracking/track"
	"github.com/metrikapro/metrika-backend/internal/http/middlewarectx"
	"github.com/metrikapro/metrika-backend/internal/pixel"
	authservice "github.com/metrikapro/metrika-backend/internal/services/auth"
	metricsservice "github.com/metrikapro/metrika-backend/internal/services/metrics"
	projectservice "github.com/metrikapro/metrika-backend/internal/services/project"
	reportservice "github.com/metrikapro/metrika-backend/internal/services/reports"
	"github.com/metrikapro/metrika-backend/internal/storage/repository"
)

// registerRoutes mounts every endpoint of the backend.
func registerRoutes(
	r chi.Router,
	logger *slog.Logger,
	db *repository.Storage,
	authService *authservice.AuthService,
	projectService *projectservice.ProjectService,
	metricsService *metricsservice.MetricsService,
	reportService *reportservice.ReportService,
	pixelService *pixel.Service,
) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.CORSMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Open endpoints
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Post("/track", trackingtrack.New(logger, pixelService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Authenticated group
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/projects", projectcreate.New(logger, projectService).ServeHTTP)
			r.Get("/projects", projectlist.New(logger, projectService).ServeHTTP)
			r.Delete("/projects/{id}", projectremove.New(logger, projectService).ServeHTTP)
			r.Post("/projects/{id}/integrations", integrationconnect.New(logger, projectService, db).ServeHTTP)
			r.Get("/projects/{id}/integrations", integrationlist.New(logger, projectService, db).ServeHTTP)
			r.Get("/projects/{id}/metrics", metricsummary.New(logger, projectService, metricsService).ServeHTTP)
			r.Get("/projects/{id}/reports", reportlist.New(logger, projectService, reportService).ServeHTTP)
		})
	})

	if scriptHandler, err := trackingscript.New(logger); err == nil {
		r.Get("/track.js", scriptHandler.ServeHTTP)
	} else {
		logger.Error("tracking script unavailable", slog.String("error", err.Error()))
	}

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
