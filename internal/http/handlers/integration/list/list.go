// Package list implements the HTTP handler for listing the integrations
// of a project.
package list

import (
	"context"
	"log/slog"
	"net/http"

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

// Repository reads integrations.
type Repository interface {
	ListIntegrations(ctx context.Context, projectID string) ([]*models.Integration, error)
}

// Handler handles integration listing requests.
type Handler struct {
	log      *slog.Logger
	projects Authorizer
	repo     Repository
}

// New creates a new Handler.
func New(log *slog.Logger, projects Authorizer, repo Repository) *Handler {
	return &Handler{
		log:      log,
		projects: projects,
		repo:     repo,
	}
}

// ServeHTTP godoc
// @Summary List integrations
// @Description Returns the integrations connected to a project.
// @Tags Integrations
// @Produce  json
// @Param id path string true "Project ID"
// @Success 200 {object} response.Response "Integrations"
// @Failure 400 {object} response.ErrorResponse "Invalid request"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 500 {object} response.ErrorResponse "Listing failed"
// @Router /projects/{id}/integrations [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.integration.list"

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

	integrations, err := h.repo.ListIntegrations(r.Context(), projectID)
	if err != nil {
		log.Error("failed to list integrations", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list integrations"))
		return
	}

	items := make([]map[string]any, 0, len(integrations))
	for _, item := range integrations {
		items = append(items, map[string]any{
			"integration_id": item.ID,
			"provider":       item.Provider,
			"connected_at":   item.ConnectedAt,
		})
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"integrations": items,
	}))
}
