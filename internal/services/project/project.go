// Package services contains the business logic for projects, most
// importantly the ordered cascading deletion of a project and all of
// its dependent records.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/metrikapro/metrika-backend/internal/lib/sl"
	"github.com/metrikapro/metrika-backend/internal/models"
	"github.com/metrikapro/metrika-backend/internal/storage/repository"
)

// ProjectRepository defines the storage methods used by the service.
type ProjectRepository interface {
	// CreateProject inserts a new project row.
	CreateProject(ctx context.Context, project models.Project) error
	// GetProjectByID returns a project or a wrapped sql.ErrNoRows.
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	// ListProjectsByUser returns all projects owned by a user.
	ListProjectsByUser(ctx context.Context, userID string) ([]*models.Project, error)
	// DeleteProjectRows deletes the rows of one dependent table.
	DeleteProjectRows(ctx context.Context, table, projectID string) (int64, error)
	// DeleteProject removes the project row itself.
	DeleteProject(ctx context.Context, id string) (int64, error)
	// HasAdminRole reports whether the user has an admin role entry.
	HasAdminRole(ctx context.Context, userUID string) (bool, error)
}

// EventPublisher publishes backend events; delivery is best-effort.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// ProjectService implements project creation, listing, authorization
// and the cascading deletion.
type ProjectService struct {
	repo      ProjectRepository
	publisher EventPublisher // nil disables audit events
	log       *slog.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(repo ProjectRepository, publisher EventPublisher, log *slog.Logger) *ProjectService {
	return &ProjectService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Create creates a new project owned by the given user.
func (s *ProjectService) Create(ctx context.Context, userUID string, req models.DummyProject) (*models.Project, error) {
	project := models.Project{
		ID:        uuid.New().String(),
		UserID:    userUID,
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	s.log.Info("created new project", slog.String("project_id", project.ID))
	return &project, nil
}

// List returns the caller's projects.
func (s *ProjectService) List(ctx context.Context, userUID string) ([]*models.Project, error) {
	return s.repo.ListProjectsByUser(ctx, userUID)
}

// Authorize loads a project and verifies that the caller may act on it:
// the owner always may, anyone else needs an admin role entry.
func (s *ProjectService) Authorize(ctx context.Context, userUID, projectID string) (*models.Project, error) {
	if projectID == "" {
		return nil, ErrMissingProjectID
	}

	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("load project: %w", err)
	}

	if project.UserID == userUID {
		return project, nil
	}
	isAdmin, err := s.repo.HasAdminRole(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("check admin role: %w", err)
	}
	if !isAdmin {
		return nil, ErrForbidden
	}
	return project, nil
}

// auditEvent is the message published after a successful deletion.
type auditEvent struct {
	ProjectID string    `json:"project_id"`
	UserUID   string    `json:"user_uid"`
	DeletedAt time.Time `json:"deleted_at"`
}

// Delete removes a project and every dependent record, in the fixed
// table order metrics_cache, daily_reports, integrations, ad_spend,
// sales, then the project row. The first failing delete aborts the
// cascade; rows already removed stay removed (the cascade is not
// transactional) and the error names the failing table.
func (s *ProjectService) Delete(ctx context.Context, userUID, projectID string) error {
	if _, err := s.Authorize(ctx, userUID, projectID); err != nil {
		return err
	}

	for _, table := range repository.DependentTables {
		deleted, err := s.repo.DeleteProjectRows(ctx, table, projectID)
		if err != nil {
			return &DependencyDeleteError{Table: table, Err: err}
		}
		s.log.Info("deleted dependent rows",
			slog.String("table", table),
			slog.String("project_id", projectID),
			slog.Int64("rows", deleted))
	}

	if _, err := s.repo.DeleteProject(ctx, projectID); err != nil {
		return &DependencyDeleteError{Table: "projects", Err: err}
	}
	s.log.Info("deleted project", slog.String("project_id", projectID))

	if s.publisher != nil {
		event := auditEvent{ProjectID: projectID, UserUID: userUID, DeletedAt: time.Now().UTC()}
		if err := s.publisher.Publish("project.deleted", event); err != nil {
			s.log.Warn("failed to publish audit event", sl.Err(err))
		}
	}
	return nil
}
