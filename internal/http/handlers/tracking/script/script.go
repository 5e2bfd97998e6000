// Package script implements the HTTP handler that serves the embeddable
// attribution snippet.
//
// The snippet is rendered once at construction time; the handler then
// serves the cached bytes with a one-hour public cache header so CDNs
// and browsers keep it close to the customer sites that embed it.
package script

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/metrikapro/metrika-backend/internal/attribution"
)

// Handler serves the tracking script.
type Handler struct {
	log  *slog.Logger
	body []byte
}

// New renders the snippet and creates the Handler.
func New(log *slog.Logger) (*Handler, error) {
	body, err := attribution.Script()
	if err != nil {
		return nil, err
	}
	return &Handler{
		log:  log,
		body: body,
	}, nil
}

// ServeHTTP godoc
// @Summary Tracking script
// @Description Serves the embeddable attribution JavaScript snippet.
// @Tags Tracking
// @Produce  plain
// @Success 200 {string} string "JavaScript snippet"
// @Router /track.js [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Content-Length", strconv.Itoa(len(h.body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.body); err != nil {
		h.log.Error("failed to write tracking script", slog.String("error", err.Error()))
	}
}
