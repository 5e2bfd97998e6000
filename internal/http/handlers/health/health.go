// Package health implements the service health probe.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/metrikapro/metrika-backend/internal/http/response"
	"github.com/metrikapro/metrika-backend/internal/lib/sl"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	CheckDatabaseReady(ctx context.Context) error
}

// Handler answers health probes.
type Handler struct {
	log    *slog.Logger
	pinger Pinger
}

// New creates a new Handler.
func New(log *slog.Logger, pinger Pinger) *Handler {
	return &Handler{
		log:    log,
		pinger: pinger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.pinger.CheckDatabaseReady(r.Context()); err != nil {
		h.log.Error("database not ready", slog.String("op", op), sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database not ready"))
		return
	}
	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "ok",
	}))
}
