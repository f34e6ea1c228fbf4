// Package repo contains all persistence logic for the trip logbook.
// TripRepo is the storage contract; each backend lives in its own file.
// No business logic lives here: only storage access and type mapping.
package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/triplog/internal/domain"
)

// TripRepo defines the persistence operations for saved trips.
// The service layer depends on this interface, not on a concrete backend,
// which allows the services to be unit-tested with a mock.
//
// Every backend failure is wrapped with domain.ErrStorage; a missing trip is
// reported as domain.ErrNotFound.
type TripRepo interface {
	// Create stores a new trip, assigning its ID and CreatedAt, and returns
	// the persisted record.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (domain.Trip, error)

	// List returns all trips, most recently created first.
	List(ctx context.Context) ([]domain.Trip, error)

	// Replace atomically overwrites the whole record with trip.ID.
	// Returns domain.ErrNotFound if no such trip exists.
	Replace(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// ReplaceAll atomically swaps the whole collection for trips.
	// Trips keep their IDs and CreatedAt; missing values are filled in.
	ReplaceAll(ctx context.Context, trips []domain.Trip) error

	// DeleteAll removes every trip.
	DeleteAll(ctx context.Context) error
}

// newTripID returns a time-ordered identifier derived from the creation time.
func newTripID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// stamp fills in a missing ID and CreatedAt.
func stamp(trip domain.Trip, now time.Time) (domain.Trip, error) {
	if trip.ID == "" {
		id, err := newTripID()
		if err != nil {
			return domain.Trip{}, fmt.Errorf("%w: generate id: %w", domain.ErrStorage, err)
		}
		trip.ID = id
	}
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = now
	}
	return trip, nil
}

// storageErr tags err as a backend failure unless it already carries a
// domain meaning.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if domain.Kind(err) == domain.KindNotFound || domain.Kind(err) == domain.KindStorage {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}
