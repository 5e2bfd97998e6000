package track

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/metrikapro/metrika-backend/internal/models"
)

type recordingService struct {
	events []models.PixelEvent
}

func (s *recordingService) Track(event models.PixelEvent) {
	s.events = append(s.events, event)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestTrack_AcceptsEvent(t *testing.T) {
	svc := &recordingService{}
	handler := New(newTestLogger(), svc)

	body := `{"name":"page_view","project_id":"p1","payload":{"path":"/pricing"}}`
	req := httptest.NewRequest(http.MethodPost, "/track", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Len(t, svc.events, 1)
	assert.Equal(t, "page_view", svc.events[0].Name)
	assert.False(t, svc.events[0].OccurredAt.IsZero())
}

func TestTrack_InvalidJSON(t *testing.T) {
	svc := &recordingService{}
	handler := New(newTestLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/track", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.events)
}

func TestTrack_MissingName(t *testing.T) {
	svc := &recordingService{}
	handler := New(newTestLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/track", strings.NewReader(`{"project_id":"p1"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, svc.events)
}
