// Package middlewarectx contains the HTTP middleware stack: bearer
// authentication, permissive CORS for the embeddable tracking assets
// and a request rate limit.
//
// AuthMiddleware checks the Authorization header, resolves the bearer
// credential to a user and stores the username, role and user UID in
// the request context for downstream handlers.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/metrikapro/metrika-backend/internal/http/response"
	"github.com/metrikapro/metrika-backend/internal/lib/sl"
	"github.com/metrikapro/metrika-backend/internal/models"
)

// Key is the type for request context keys.
type Key string

const (
	// User is the context key for the username.
	User Key = "username"
	// Role is the context key for the user role.
	Role Key = "role"
	// UserUID is the context key for the user UID.
	UserUID Key = "user_uid"
)

// Service resolves a bearer credential to a user. The implementation
// tries a local JWT parse first and falls back to a full user lookup
// by personal API token.
type Service interface {
	ResolveBearer(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware returns middleware that authenticates the request.
//
// A valid credential puts the username, role and user UID into the
// request context; anything else ends the request with 401.
func AuthMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := authService.ResolveBearer(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired credential", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), User, user.Username)
			ctx = context.WithValue(ctx, Role, user.Role)
			ctx = context.WithValue(ctx, UserUID, user.UID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
