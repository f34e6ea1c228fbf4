// Package service contains the business logic for the trip logbook.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No storage code lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/repo"
	"github.com/pkordes/triplog/internal/timeline"
)

// RecordingService hosts the single live trip recording. It serialises all
// access to its timeline.Engine, which is not safe for concurrent use.
type RecordingService struct {
	mu     sync.Mutex
	engine *timeline.Engine
	trips  repo.TripRepo
	log    *slog.Logger

	defaultLocation string
}

// NewRecordingService constructs a RecordingService that saves through r.
// A nil clock selects the system clock; a nil logger selects slog.Default().
func NewRecordingService(r repo.TripRepo, clock timeline.Clock, log *slog.Logger) *RecordingService {
	if log == nil {
		log = slog.Default()
	}
	return &RecordingService{engine: timeline.NewEngine(clock), trips: r, log: log}
}

// WithDefaultLocation sets the start location used when Start is called
// without one, and returns s.
func (s *RecordingService) WithDefaultLocation(loc string) *RecordingService {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultLocation = strings.TrimSpace(loc)
	return s
}

// Status returns a snapshot of the current recording.
func (s *RecordingService) Status() timeline.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// Start begins a new recording with an optional start location. A blank
// location falls back to the configured default.
func (s *RecordingService) Start(startLocation string) (timeline.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(startLocation) == "" {
		startLocation = s.defaultLocation
	}
	if _, err := s.engine.Start(); err != nil {
		return timeline.Snapshot{}, fmt.Errorf("service.RecordingService.Start: %w", err)
	}
	if err := s.engine.SetStartLocation(startLocation); err != nil {
		return timeline.Snapshot{}, fmt.Errorf("service.RecordingService.Start: %w", err)
	}
	return s.engine.Snapshot(), nil
}

// AddEvent stamps a new event with the current time.
func (s *RecordingService) AddEvent(label string) (domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, err := s.engine.AddEvent(label)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.RecordingService.AddEvent: %w", err)
	}
	return ev, nil
}

// AttachPhoto sets or clears the photo of a recorded event.
func (s *RecordingService) AttachPhoto(seq int, ref string) (domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, err := s.engine.AttachPhoto(seq, ref)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.RecordingService.AttachPhoto: %w", err)
	}
	return ev, nil
}

// SetStartLocation changes the "From:" label of the recording.
func (s *RecordingService) SetStartLocation(label string) (timeline.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine.State() != timeline.Recording {
		return timeline.Snapshot{}, fmt.Errorf("service.RecordingService.SetStartLocation: %w", domain.ErrNotRecording)
	}
	if err := s.engine.SetStartLocation(label); err != nil {
		return timeline.Snapshot{}, fmt.Errorf("service.RecordingService.SetStartLocation: %w", err)
	}
	return s.engine.Snapshot(), nil
}

// Reset discards the recording without saving it.
func (s *RecordingService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Reset()
}

// Save persists the recording as a new trip and resets the engine. The
// engine is reset only after the store has accepted the trip, so a storage
// failure leaves the recording intact for a retry.
func (s *RecordingService) Save(ctx context.Context, notes string) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.engine.Draft(notes)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.RecordingService.Save: %w", err)
	}

	saved, err := s.trips.Create(ctx, draft)
	if err != nil {
		s.log.ErrorContext(ctx, "save trip failed", "events", len(draft.Events), "error", err)
		return domain.Trip{}, fmt.Errorf("service.RecordingService.Save: %w", err)
	}

	s.engine.Reset()
	s.log.InfoContext(ctx, "trip saved", "trip_id", saved.ID, "events", len(saved.Events))
	return saved, nil
}
