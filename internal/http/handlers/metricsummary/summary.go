// Package metricsummary implements the HTTP handler for the aggregated
// metrics of a project over a date range.
package metricsummary

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/metrikapro/metrika-backend/internal/http/middlewarectx"
	"github.com/metrikapro/metrika-backend/internal/http/response"
	"github.com/metrikapro/metrika-backend/internal/lib/sl"
	"github.com/metrikapro/metrika-backend/internal/models"
)

// Authorizer verifies that the caller may act on a project.
type Authorizer interface {
	Authorize(ctx context.Context, userUID, projectID string) (*models.Project, error)
}

// Service computes the metrics summary.
type Service interface {
	GetSummary(ctx context.Context, projectID string, from, to time.Time) (*models.MetricsSummary, error)
}

// Handler handles metrics summary requests.
type Handler struct {
	log      *slog.Logger
	projects Authorizer
	service  Service
}

// New creates a new Handler.
func New(log *slog.Logger, projects Authorizer, service Service) *Handler {
	return &Handler{
		log:      log,
		projects: projects,
		service:  service,
	}
}

// parsePeriod reads the from/to query parameters; a missing period
// defaults to the last 30 days.
func parsePeriod(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}
	return from, to, nil
}

// ServeHTTP godoc
// @Summary Metrics summary
// @Description Returns revenue, ad spend, profit and ROAS for a period.
// @Tags Metrics
// @Produce  json
// @Param id path string true "Project ID"
// @Param from query string false "Period start (YYYY-MM-DD)"
// @Param to query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} response.Response "Summary"
// @Failure 400 {object} response.ErrorResponse "Invalid request"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 500 {object} response.ErrorResponse "Computation failed"
// @Router /projects/{id}/metrics [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.metricsummary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	projectID := chi.URLParam(r, "id")
	if _, err := h.projects.Authorize(r.Context(), userUID, projectID); err != nil {
		log.Error("project access rejected", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	from, to, err := parsePeriod(r)
	if err != nil {
		log.Error("invalid period", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid period, expected YYYY-MM-DD"))
		return
	}

	summary, err := h.service.GetSummary(r.Context(), projectID, from, to)
	if err != nil {
		log.Error("failed to compute summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute metrics"))
		return
	}

	render.JSON(w, r, response.OKWithData(summary))
}
