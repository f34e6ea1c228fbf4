package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/repo"
	"github.com/pkordes/triplog/internal/timeline"
)

// TripService implements the history operations on saved trips. Every
// change to a trip's events is rebuilt by the timeline reconciler and
// written back as a whole-record replace.
type TripService struct {
	repo repo.TripRepo
	log  *slog.Logger
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo, log *slog.Logger) *TripService {
	if log == nil {
		log = slog.Default()
	}
	return &TripService{repo: r, log: log}
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns the trips matching q in the order it asks for.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, q domain.ListQuery) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}

	out := make([]domain.Trip, 0, len(trips))
	for _, t := range trips {
		if matches(t, q.Search) {
			out = append(out, t)
		}
	}
	sortTrips(out, q.Sort)
	return out, nil
}

// Delete removes a whole trip.
func (s *TripService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// UpdateNotes replaces the free-text notes of a trip.
func (s *TripService) UpdateNotes(ctx context.Context, id, notes string) (domain.Trip, error) {
	return s.mutate(ctx, "service.TripService.UpdateNotes", id, func(t domain.Trip) (domain.Trip, error) {
		t = t.Clone()
		t.Notes = strings.TrimSpace(notes)
		return t, nil
	})
}

// RenameEvent changes the label of one event and regenerates the summary.
func (s *TripService) RenameEvent(ctx context.Context, id string, seq int, label string) (domain.Trip, error) {
	return s.mutate(ctx, "service.TripService.RenameEvent", id, func(t domain.Trip) (domain.Trip, error) {
		return timeline.RenameEvent(t, seq, label)
	})
}

// DeleteEvent removes one event, renumbering and re-measuring the rest.
// Returns domain.ErrLastEvent when it is the trip's only event.
func (s *TripService) DeleteEvent(ctx context.Context, id string, seq int) (domain.Trip, error) {
	return s.mutate(ctx, "service.TripService.DeleteEvent", id, func(t domain.Trip) (domain.Trip, error) {
		return timeline.DeleteEvent(t, seq)
	})
}

// SetEventPhoto attaches (or with an empty ref, removes) an event photo.
func (s *TripService) SetEventPhoto(ctx context.Context, id string, seq int, ref string) (domain.Trip, error) {
	return s.mutate(ctx, "service.TripService.SetEventPhoto", id, func(t domain.Trip) (domain.Trip, error) {
		return timeline.SetEventPhoto(t, seq, strings.TrimSpace(ref))
	})
}

// mutate loads a trip, derives its replacement with fn and stores it.
// fn must return a new record rather than modify its argument.
func (s *TripService) mutate(ctx context.Context, op, id string, fn func(domain.Trip) (domain.Trip, error)) (domain.Trip, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("%s: %w", op, err)
	}

	next, err := fn(current)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("%s: %w", op, err)
	}

	stored, err := s.repo.Replace(ctx, next)
	if err != nil {
		s.log.ErrorContext(ctx, "replace trip failed", "op", op, "trip_id", id, "error", err)
		return domain.Trip{}, fmt.Errorf("%s: %w", op, err)
	}
	return stored, nil
}

// matches reports whether trip contains search in any of its text fields.
// An empty search matches everything.
func matches(trip domain.Trip, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	fields := []string{trip.Summary, trip.StartLocation, trip.Notes}
	for _, e := range trip.Events {
		fields = append(fields, e.Label)
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// sortTrips orders trips in place. Ties keep the store's order.
func sortTrips(trips []domain.Trip, order domain.SortOrder) {
	var less func(a, b domain.Trip) bool
	switch order {
	case domain.SortOldest:
		less = func(a, b domain.Trip) bool { return a.StartTime.Before(b.StartTime) }
	case domain.SortLongest:
		less = func(a, b domain.Trip) bool { return a.DurationSeconds() > b.DurationSeconds() }
	case domain.SortShortest:
		less = func(a, b domain.Trip) bool { return a.DurationSeconds() < b.DurationSeconds() }
	case domain.SortMostEvents:
		less = func(a, b domain.Trip) bool { return len(a.Events) > len(b.Events) }
	default:
		less = func(a, b domain.Trip) bool { return a.StartTime.After(b.StartTime) }
	}
	sort.SliceStable(trips, func(i, j int) bool { return less(trips[i], trips[j]) })
}
