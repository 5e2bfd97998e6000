package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/metrikapro/metrika-backend/internal/http/middlewarectx"
	services "github.com/metrikapro/metrika-backend/internal/services/project"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Delete(ctx context.Context, userUID, projectID string) error {
	args := m.Called(ctx, userUID, projectID)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func doDelete(t *testing.T, svc Service, projectID string, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	router.Delete("/projects/{id}", New(newTestLogger(), svc).ServeHTTP)

	req := httptest.NewRequest(http.MethodDelete, "/projects/"+projectID, nil)
	if authed {
		ctx := context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1")
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRemove_Success(t *testing.T) {
	svc := new(MockService)
	svc.On("Delete", mock.Anything, "uid-1", "project-1").Return(nil)

	rec := doDelete(t, svc, "project-1", true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestRemove_NotFound(t *testing.T) {
	svc := new(MockService)
	svc.On("Delete", mock.Anything, "uid-1", "missing").Return(services.ErrProjectNotFound)

	rec := doDelete(t, svc, "missing", true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"project not found"}`, rec.Body.String())
}

func TestRemove_Forbidden(t *testing.T) {
	svc := new(MockService)
	svc.On("Delete", mock.Anything, "uid-1", "project-1").Return(services.ErrForbidden)

	rec := doDelete(t, svc, "project-1", true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"access denied"}`, rec.Body.String())
}

func TestRemove_CascadeFailureNamesTable(t *testing.T) {
	svc := new(MockService)
	svc.On("Delete", mock.Anything, "uid-1", "project-1").Return(&services.DependencyDeleteError{
		Table: "ad_spend",
		Err:   errors.New("db error"),
	})

	rec := doDelete(t, svc, "project-1", true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"failed to delete ad_spend: db error"}`, rec.Body.String())
}

func TestRemove_UnknownErrorIsInternal(t *testing.T) {
	svc := new(MockService)
	svc.On("Delete", mock.Anything, "uid-1", "project-1").Return(errors.New("boom"))

	rec := doDelete(t, svc, "project-1", true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to delete project"}`, rec.Body.String())
}

func TestRemove_Unauthorized(t *testing.T) {
	svc := new(MockService)

	rec := doDelete(t, svc, "project-1", false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
