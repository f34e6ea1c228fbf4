package service_test

import (
	"context"
	"time"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/repo"
	"github.com/pkordes/triplog/internal/timeline"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create     func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID    func(ctx context.Context, id string) (domain.Trip, error)
	list       func(ctx context.Context) ([]domain.Trip, error)
	replace    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete     func(ctx context.Context, id string) error
	replaceAll func(ctx context.Context, trips []domain.Trip) error
	deleteAll  func(ctx context.Context) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) Replace(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.replace(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}
func (m *mockTripRepo) ReplaceAll(ctx context.Context, trips []domain.Trip) error {
	return m.replaceAll(ctx, trips)
}
func (m *mockTripRepo) DeleteAll(ctx context.Context) error {
	return m.deleteAll(ctx)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// ---- helpers ---------------------------------------------------------------

var t0 = time.Date(2025, 6, 2, 7, 30, 0, 0, time.UTC) // a Monday

func at(seconds int) time.Time {
	return t0.Add(time.Duration(seconds) * time.Second)
}

// manualClock stands still until the test moves it.
type manualClock struct{ now time.Time }

func newManualClock(start time.Time) *manualClock { return &manualClock{now: start} }

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) advance(seconds int) {
	c.now = c.now.Add(time.Duration(seconds) * time.Second)
}

var _ timeline.Clock = (*manualClock)(nil)

// storedTrip returns a reconciled trip with the given id whose events are
// the labels at the given second offsets.
func storedTrip(id string, offsets []int, labels ...string) domain.Trip {
	events := make([]domain.Event, len(labels))
	for i, l := range labels {
		events[i] = domain.Event{Seq: i + 1, Label: l, Time: at(offsets[i])}
	}
	trip, err := timeline.ReconcileTrip(domain.Trip{ID: id, Events: events})
	if err != nil {
		panic(err)
	}
	return trip
}
