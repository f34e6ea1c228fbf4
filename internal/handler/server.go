// Package handler implements the HTTP handlers for the trip logbook API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, recording.go, trip.go, etc.) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/timeline"
)

// RecordingServicer defines the live-recording operations the handler depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching storage or the service layer.
type RecordingServicer interface {
	Status() timeline.Snapshot
	Start(startLocation string) (timeline.Snapshot, error)
	AddEvent(label string) (domain.Event, error)
	AttachPhoto(seq int, ref string) (domain.Event, error)
	SetStartLocation(label string) (timeline.Snapshot, error)
	Reset()
	Save(ctx context.Context, notes string) (domain.Trip, error)
}

// TripServicer defines the saved-trip operations the handler depends on.
type TripServicer interface {
	GetByID(ctx context.Context, id string) (domain.Trip, error)
	List(ctx context.Context, q domain.ListQuery) ([]domain.Trip, error)
	Delete(ctx context.Context, id string) error
	UpdateNotes(ctx context.Context, id, notes string) (domain.Trip, error)
	RenameEvent(ctx context.Context, id string, seq int, label string) (domain.Trip, error)
	DeleteEvent(ctx context.Context, id string, seq int) (domain.Trip, error)
	SetEventPhoto(ctx context.Context, id string, seq int, ref string) (domain.Trip, error)
}

// ExportServicer encodes every trip in one of the export formats.
type ExportServicer interface {
	Export(ctx context.Context, format domain.ExportFormat) (domain.ExportFile, error)
}

// StatsServicer aggregates statistics over all trips.
type StatsServicer interface {
	Compute(ctx context.Context) (domain.Statistics, error)
}

// BackupServicer creates and restores full backups.
type BackupServicer interface {
	Create(ctx context.Context) (domain.Backup, error)
	Restore(ctx context.Context, r io.Reader) (int, error)
}

// Services bundles the dependencies of a Server. A nil field leaves the
// routes that need it unregistered.
type Services struct {
	Recording RecordingServicer
	Trips     TripServicer
	Export    ExportServicer
	Stats     StatsServicer
	Backup    BackupServicer
}

// Server serves every API endpoint.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	recording RecordingServicer
	trips     TripServicer
	export    ExportServicer
	stats     StatsServicer
	backup    BackupServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services) *Server {
	return &Server{
		recording: svc.Recording,
		trips:     svc.Trips,
		export:    svc.Export,
		stats:     svc.Stats,
		backup:    svc.Backup,
	}
}

// Routes returns a chi router with every endpoint of the API mounted.
// Cross-cutting middleware is applied by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)

	if s.recording != nil {
		r.Route("/recording", func(r chi.Router) {
			r.Get("/", s.GetRecording)
			r.Post("/start", s.StartRecording)
			r.Post("/events", s.AddRecordingEvent)
			r.Put("/events/{seq}/photo", s.AttachRecordingPhoto)
			r.Put("/location", s.SetRecordingLocation)
			r.Post("/reset", s.ResetRecording)
			r.Post("/save", s.SaveRecording)
		})
	}

	if s.trips != nil {
		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Delete("/", s.DeleteTrip)
				r.Put("/notes", s.UpdateTripNotes)
				r.Put("/events/{seq}", s.RenameTripEvent)
				r.Delete("/events/{seq}", s.DeleteTripEvent)
				r.Put("/events/{seq}/photo", s.SetTripEventPhoto)
			})
		})
	}

	if s.export != nil {
		r.Get("/export", s.GetExport)
	}
	if s.stats != nil {
		r.Get("/stats", s.GetStats)
	}
	if s.backup != nil {
		r.Get("/backup", s.GetBackup)
		r.Post("/backup", s.RestoreBackup)
	}
	return r
}
