// Package reportlist implements the HTTP handler for reading the daily
// reports of a project.
package reportlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

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

// Service reads daily reports.
type Service interface {
	List(ctx context.Context, projectID string, limit int) ([]*models.DailyReport, error)
}

// Handler handles daily report listing requests.
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

// ServeHTTP godoc
// @Summary List daily reports
// @Description Returns the most recent daily roll-ups of a project.
// @Tags Reports
// @Produce  json
// @Param id path string true "Project ID"
// @Param limit query int false "Maximum number of reports"
// @Success 200 {object} response.Response "Reports"
// @Failure 400 {object} response.ErrorResponse "Invalid request"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 500 {object} response.ErrorResponse "Listing failed"
// @Router /projects/{id}/reports [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reportlist"

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

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			log.Error("invalid limit", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid limit"))
			return
		}
		limit = parsed
	}

	reports, err := h.service.List(r.Context(), projectID, limit)
	if err != nil {
		log.Error("failed to list reports", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list reports"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"reports": reports,
	}))
}
