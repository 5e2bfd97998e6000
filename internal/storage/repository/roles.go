package repository

import (
	"context"
	"fmt"
)

// HasAdminRole reports whether the user has an admin entry in the
// roles table. Admins may act on projects they do not own.
func (s *Storage) HasAdminRole(ctx context.Context, userUID string) (bool, error) {
	const op = "storage.HasAdminRole"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS(
				SELECT 1 FROM user_roles
				WHERE user_uid = $1 AND role = 'admin')`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// GrantRole adds a role entry for a user.
func (s *Storage) GrantRole(ctx context.Context, userUID, role string) error {
	const op = "storage.GrantRole"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_roles (user_uid, role) VALUES ($1, $2)`
	if _, err := s.DB.ExecContext(ctx, query, userUID, role); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
