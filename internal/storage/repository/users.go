package repository

import (
	"context"
	"fmt"

	"github.com/metrikapro/metrika-backend/internal/models"
)

// RegisterUser inserts a new user and returns the generated UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (uid, username, email, password_hash, role, api_token)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid`
	var uid string
	err := s.DB.QueryRowContext(ctx, query,
		user.UID, user.Username, user.Email, user.PasswordHash, user.Role, user.APIToken).Scan(&uid)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// GetUserByUsername returns a user by login name.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, role, api_token
			  FROM users WHERE username = $1`
	row := s.DB.QueryRowContext(ctx, query, username)

	var result models.User
	if err := row.Scan(&result.UID, &result.Username, &result.Email,
		&result.PasswordHash, &result.Role, &result.APIToken); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetUserByAPIToken resolves an opaque personal token to its user.
// This is the fallback resolution path for bearer credentials that are
// not decodable JWTs.
func (s *Storage) GetUserByAPIToken(ctx context.Context, token string) (*models.User, error) {
	const op = "storage.GetUserByAPIToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, role, api_token
			  FROM users WHERE api_token = $1`
	row := s.DB.QueryRowContext(ctx, query, token)

	var result models.User
	if err := row.Scan(&result.UID, &result.Username, &result.Email,
		&result.PasswordHash, &result.Role, &result.APIToken); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}
