// Package services contains the business logic for user accounts and
// bearer-credential resolution.
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/metrikapro/metrika-backend/internal/lib/jwt"
	"github.com/metrikapro/metrika-backend/internal/lib/password"
	"github.com/metrikapro/metrika-backend/internal/models"
)

// UserRepository describes the contract for user storage.
type UserRepository interface {
	// RegisterUser stores a new user and returns its UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByUsername returns a user by login name.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserByAPIToken resolves an opaque personal token to its user.
	GetUserByAPIToken(ctx context.Context, token string) (*models.User, error)
}

// AuthService handles registration, login and bearer resolution.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register creates a new user with a hashed password, the default
// "user" role and a personal API token for the fallback auth path.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		UID:          uuid.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         "user",
		APIToken:     uuid.New().String(),
	}
	return s.users.RegisterUser(ctx, user)
}

// Login verifies the password and issues a JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", errors.New("invalid credentials")
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ResolveBearer resolves a bearer credential to a user. The fast path
// decodes the token as a JWT locally; when that fails, the token is
// treated as an opaque personal API token and looked up in storage.
// Both paths yield the same principal shape.
func (s *AuthService) ResolveBearer(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err == nil {
		return &models.User{
			UID:      claims.UserUID,
			Username: claims.Username,
			Role:     claims.Role,
		}, nil
	}

	user, lookupErr := s.users.GetUserByAPIToken(ctx, token)
	if lookupErr != nil {
		return nil, errors.New("invalid bearer credential")
	}
	return user, nil
}
