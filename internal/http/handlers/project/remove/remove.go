// Package remove implements the HTTP handler for deleting a project.
//
// Deletion is authorized against the caller and cascades over every
// dependent table before the project row itself. A successful call
// answers {"success": true}; every known failure answers 400 with an
// {"error": ...} body naming what went wrong, so the dashboard can show
// the message as-is.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/metrikapro/metrika-backend/internal/http/middlewarectx"
	"github.com/metrikapro/metrika-backend/internal/http/response"
	"github.com/metrikapro/metrika-backend/internal/lib/sl"
	services "github.com/metrikapro/metrika-backend/internal/services/project"
)

// Service describes the project deletion business logic.
type Service interface {
	Delete(ctx context.Context, userUID, projectID string) error
}

// Handler handles project deletion requests.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Delete a project
// @Description Deletes a project and all of its dependent records.
// @Tags Projects
// @Produce  json
// @Param id path string true "Project ID"
// @Success 200 {object} response.Response "Project deleted"
// @Failure 400 {object} response.ErrorResponse "Deletion failed"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 500 {object} response.ErrorResponse "Internal error"
// @Router /projects/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.project.remove"

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

	err := h.service.Delete(r.Context(), userUID, projectID)
	if err == nil {
		log.Info("project deleted", slog.String("project_id", projectID))
		render.JSON(w, r, response.OK())
		return
	}

	var depErr *services.DependencyDeleteError
	switch {
	case errors.Is(err, services.ErrMissingProjectID),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrForbidden):
		log.Error("project deletion rejected", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
	case errors.As(err, &depErr):
		log.Error("project deletion cascade failed",
			slog.String("table", depErr.Table), sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
	default:
		log.Error("failed to delete project", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete project"))
	}
}
