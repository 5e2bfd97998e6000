package repository

import (
	"context"
	"fmt"

	"github.com/metrikapro/metrika-backend/internal/models"
)

// CreateIntegration connects a platform to a project and returns the
// new row ID.
func (s *Storage) CreateIntegration(ctx context.Context, integration models.Integration) (int, error) {
	const op = "storage.CreateIntegration"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO integrations (project_id, provider, credentials, connected_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		integration.ProjectID, integration.Provider, integration.Credentials, integration.ConnectedAt).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListIntegrations returns the integrations connected to a project.
func (s *Storage) ListIntegrations(ctx context.Context, projectID string) ([]*models.Integration, error) {
	const op = "storage.ListIntegrations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, project_id, provider, credentials, connected_at
			  FROM integrations
			  WHERE project_id = $1
			  ORDER BY connected_at`
	rows, err := s.DB.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Integration
	for rows.Next() {
		var item models.Integration
		if err := rows.Scan(&item.ID, &item.ProjectID, &item.Provider,
			&item.Credentials, &item.ConnectedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
