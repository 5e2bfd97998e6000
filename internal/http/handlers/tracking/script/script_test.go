package script

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeScript(t *testing.T) {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	handler, err := New(log)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/track.js", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/javascript", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "mpro_utm")
	assert.Contains(t, rec.Body.String(), "utm_source")
	assert.Contains(t, rec.Body.String(), "hotmart.com")
}
