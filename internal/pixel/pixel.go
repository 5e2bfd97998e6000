// Package pixel holds the tracking-pixel initializer: a lazily
// initialized singleton that buffers events recorded before the external
// sink is ready and flushes them once Init is called. The service is
// constructed once at application start and lives for the process.
package pixel

import (
	"log/slog"
	"sync"

	"github.com/metrikapro/metrika-backend/internal/lib/sl"
	"github.com/metrikapro/metrika-backend/internal/models"
)

// Sink receives pixel events once the service is initialized.
type Sink interface {
	Publish(routingKey string, message any) error
}

// Service queues events until Init provides a sink, then dispatches
// directly. Track never fails the caller; delivery is best-effort.
type Service struct {
	mu          sync.Mutex
	initialized bool
	sink        Sink
	pixelID     string
	pending     []models.PixelEvent
	log         *slog.Logger
}

// New creates an uninitialized pixel service.
func New(log *slog.Logger) *Service {
	return &Service{log: log}
}

// Init attaches the sink and flushes every queued event. Calling Init
// again is a no-op, which keeps initialization idempotent.
func (s *Service) Init(pixelID string, sink Sink) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}
	s.initialized = true
	s.pixelID = pixelID
	s.sink = sink

	for _, event := range s.pending {
		s.dispatch(event)
	}
	s.pending = nil
	s.log.Info("pixel initialized", slog.String("pixel_id", pixelID))
}

// Track records an event: queued while uninitialized, dispatched
// directly afterwards.
func (s *Service) Track(event models.PixelEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		s.pending = append(s.pending, event)
		return
	}
	s.dispatch(event)
}

// Initialized reports whether Init has run.
func (s *Service) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// PendingCount returns the number of queued events.
func (s *Service) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Service) dispatch(event models.PixelEvent) {
	if err := s.sink.Publish("pixel", event); err != nil {
		s.log.Warn("failed to publish pixel event", sl.Err(err))
	}
}
