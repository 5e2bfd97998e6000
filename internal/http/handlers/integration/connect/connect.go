// Package connect implements the HTTP handler for connecting a sales or
// ad platform to a project.
package connect

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/metrikapro/metrika-backend/internal/http/middlewarectx"
	"github.com/metrikapro/metrika-backend/internal/http/response"
	"github.com/metrikapro/metrika-backend/internal/lib/sl"
	"github.com/metrikapro/metrika-backend/internal/models"
)

// Authorizer verifies that the caller may act on a project.
type Authorizer interface {
	Authorize(ctx context.Context, userUID, projectID string) (*models.Project, error)
}

// Repository stores integrations.
type Repository interface {
	CreateIntegration(ctx context.Context, integration models.Integration) (int, error)
}

// Handler handles integration connection requests.
type Handler struct {
	log      *slog.Logger
	projects Authorizer
	repo     Repository
	validate *validator.Validate
}

// New creates a new Handler.
func New(log *slog.Logger, projects Authorizer, repo Repository) *Handler {
	return &Handler{
		log:      log,
		projects: projects,
		repo:     repo,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Connect an integration
// @Description Links a platform account to a project.
// @Tags Integrations
// @Accept  json
// @Produce  json
// @Param id path string true "Project ID"
// @Param request body models.DummyIntegration true "Integration data"
// @Success 200 {object} response.Response "Integration connected"
// @Failure 400 {object} response.ErrorResponse "Invalid request"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 422 {object} response.ErrorResponse "Validation failed"
// @Failure 500 {object} response.ErrorResponse "Connection failed"
// @Router /projects/{id}/integrations [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.integration.connect"

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

	var req models.DummyIntegration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	projectID := chi.URLParam(r, "id")
	if _, err := h.projects.Authorize(r.Context(), userUID, projectID); err != nil {
		log.Error("project access rejected", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	id, err := h.repo.CreateIntegration(r.Context(), models.Integration{
		ProjectID:   projectID,
		Provider:    req.Provider,
		Credentials: req.Credentials,
		ConnectedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Error("failed to connect integration", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not connect integration"))
		return
	}

	log.Info("integration connected",
		slog.String("project_id", projectID),
		slog.String("provider", req.Provider))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"integration_id": id,
		"provider":       req.Provider,
	}))
}
