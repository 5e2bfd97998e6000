package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/metrikapro/metrika-backend/internal/models"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ResolveBearer(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("ResolveBearer", mock.Anything, "good-token").Return(&models.User{
		UID:      "uid-1",
		Username: "alice",
		Role:     "user",
	}, nil)

	var gotUID, gotUser, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUID, _ = r.Context().Value(UserUID).(string)
		gotUser, _ = r.Context().Value(User).(string)
		gotRole, _ = r.Context().Value(Role).(string)
		w.WriteHeader(http.StatusOK)
	})

	handler := AuthMiddleware(auth, newTestLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "uid-1", gotUID)
	assert.Equal(t, "alice", gotUser)
	assert.Equal(t, "user", gotRole)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	auth := new(MockAuthService)
	handler := AuthMiddleware(auth, newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"missing or invalid authorization header"}`, rec.Body.String())
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("ResolveBearer", mock.Anything, "bad-token").Return(nil, errors.New("invalid bearer credential"))

	handler := AuthMiddleware(auth, newTestLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid or expired token"}`, rec.Body.String())
}

func TestCORSMiddleware_SetsHeaders(t *testing.T) {
	handler := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/track", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "authorization, x-client-info, apikey, content-type",
		rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSMiddleware_PreflightShortCircuits(t *testing.T) {
	handler := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run on preflight")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/track", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
