package repository

import (
	"context"
	"fmt"

	"github.com/metrikapro/metrika-backend/internal/models"
)

// DependentTables lists the tables carrying a project_id foreign key, in
// the exact order the deletion cascade processes them. DeleteProjectRows
// only accepts names from this list.
var DependentTables = []string{
	"metrics_cache",
	"daily_reports",
	"integrations",
	"ad_spend",
	"sales",
}

var dependentTableSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(DependentTables))
	for _, table := range DependentTables {
		set[table] = struct{}{}
	}
	return set
}()

// CreateProject inserts a new project row.
func (s *Storage) CreateProject(ctx context.Context, project models.Project) error {
	const op = "storage.CreateProject"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO projects (id, user_id, name, created_at)
			  VALUES ($1, $2, $3, $4)`
	_, err := s.DB.ExecContext(ctx, query,
		project.ID, project.UserID, project.Name, project.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetProjectByID returns a project row by its identifier. The caller
// inspects the wrapped sql.ErrNoRows to distinguish "absent".
func (s *Storage) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	const op = "storage.GetProjectByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, name, created_at
			  FROM projects WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Project
	if err := row.Scan(&result.ID, &result.UserID, &result.Name, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListProjectsByUser returns all projects owned by a user.
func (s *Storage) ListProjectsByUser(ctx context.Context, userID string) ([]*models.Project, error) {
	const op = "storage.ListProjectsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, name, created_at
			  FROM projects
			  WHERE user_id = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Project
	for rows.Next() {
		var item models.Project
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListProjectIDs returns the identifiers of all projects, used by the
// daily report scheduler.
func (s *Storage) ListProjectIDs(ctx context.Context) ([]string, error) {
	const op = "storage.ListProjectIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id FROM projects ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteProjectRows deletes every row of a dependent table referencing
// the project and returns the number of deleted rows. The table name
// must come from DependentTables; anything else is rejected before any
// SQL is built.
func (s *Storage) DeleteProjectRows(ctx context.Context, table, projectID string) (int64, error) {
	const op = "storage.DeleteProjectRows"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, ok := dependentTableSet[table]; !ok {
		return 0, fmt.Errorf("%s: table %q is not a dependent table", op, table)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1`, table)
	result, err := s.DB.ExecContext(ctx, query, projectID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// DeleteProject removes the project row itself and returns the number
// of deleted rows.
func (s *Storage) DeleteProject(ctx context.Context, id string) (int64, error) {
	const op = "storage.DeleteProject"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}
