package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/repo"
)

// tripFixture returns a consistent two-event trip with sensible defaults.
// Callers can override individual fields after calling this function.
func tripFixture() domain.Trip {
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(125 * time.Second)
	d := int64(125)
	return domain.Trip{
		StartTime: start,
		EndTime:   end,
		Events: []domain.Event{
			{Seq: 1, Label: domain.StartLabel, Time: start},
			{Seq: 2, Label: "arrived", Time: end, Delta: &d, PhotoRef: "file:///a.jpg"},
		},
		Summary:       "Trip summary:\n\n1- trip start at 08:00:00\n2- arrived at 08:02:05 (after 2 m and 5 s from previous event)",
		StartLocation: "Home",
		Notes:         "Test notes",
	}
}

// testTripRepoContract runs the behaviour every TripRepo backend must share.
// newRepo must return an empty repo on every call.
func testTripRepoContract(t *testing.T, newRepo func(t *testing.T) repo.TripRepo) {
	t.Run("Create", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		input := tripFixture()
		got, err := r.Create(ctx, input)

		require.NoError(t, err)
		assert.NotEmpty(t, got.ID, "ID should be generated")
		assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.True(t, got.StartTime.Equal(input.StartTime), "StartTime mismatch")
		assert.Equal(t, input.Summary, got.Summary)
	})

	t.Run("GetByID round-trips events", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		created, err := r.Create(ctx, tripFixture())
		require.NoError(t, err)

		got, err := r.GetByID(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Home", got.StartLocation)
		assert.Equal(t, "Test notes", got.Notes)
		require.Len(t, got.Events, 2)
		assert.Nil(t, got.Events[0].Delta)
		require.NotNil(t, got.Events[1].Delta)
		assert.Equal(t, int64(125), *got.Events[1].Delta)
		assert.Equal(t, "file:///a.jpg", got.Events[1].PhotoRef)
		assert.True(t, got.Events[1].Time.Equal(created.Events[1].Time))
	})

	t.Run("GetByID keeps bounds on the events", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		input := tripFixture()
		input.Events[0].Time = input.Events[0].Time.Add(123456789 * time.Nanosecond)
		input.Events[1].Time = input.Events[1].Time.Add(987654321 * time.Nanosecond)
		input.StartTime = input.Events[0].Time
		input.EndTime = input.Events[1].Time

		created, err := r.Create(ctx, input)
		require.NoError(t, err)
		got, err := r.GetByID(ctx, created.ID)

		require.NoError(t, err)
		require.Len(t, got.Events, 2)
		assert.True(t, got.StartTime.Equal(got.Events[0].Time), "StartTime must equal the first event")
		assert.True(t, got.EndTime.Equal(got.Events[1].Time), "EndTime must equal the last event")
		assert.Equal(t, int64(125), got.DurationSeconds())
	})

	t.Run("GetByID not found", func(t *testing.T) {
		r := newRepo(t)

		_, err := r.GetByID(context.Background(), "missing")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("List is most recent first", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		older := tripFixture()
		older.Notes = "older"
		older.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		newer := tripFixture()
		newer.Notes = "newer"
		newer.CreatedAt = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

		_, err := r.Create(ctx, older)
		require.NoError(t, err)
		_, err = r.Create(ctx, newer)
		require.NoError(t, err)

		trips, err := r.List(ctx)

		require.NoError(t, err)
		require.Len(t, trips, 2)
		assert.Equal(t, "newer", trips[0].Notes)
		assert.Equal(t, "older", trips[1].Notes)
	})

	t.Run("Replace", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		created, err := r.Create(ctx, tripFixture())
		require.NoError(t, err)

		created.Events = created.Events[:1]
		created.EndTime = created.StartTime
		created.Summary = "Trip summary:\n\n1- trip start at 08:00:00"
		created.Notes = "edited"

		_, err = r.Replace(ctx, created)
		require.NoError(t, err)

		got, err := r.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Len(t, got.Events, 1)
		assert.Equal(t, "edited", got.Notes)
		assert.Equal(t, created.Summary, got.Summary)
		assert.True(t, got.EndTime.Equal(got.StartTime))
	})

	t.Run("Replace not found", func(t *testing.T) {
		r := newRepo(t)
		ghost := tripFixture()
		ghost.ID = "ghost"

		_, err := r.Replace(context.Background(), ghost)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		created, err := r.Create(ctx, tripFixture())
		require.NoError(t, err)

		require.NoError(t, r.Delete(ctx, created.ID))

		_, err = r.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be gone after delete")
		assert.ErrorIs(t, r.Delete(ctx, created.ID), domain.ErrNotFound)
	})

	t.Run("ReplaceAll and DeleteAll", func(t *testing.T) {
		r := newRepo(t)
		ctx := context.Background()

		_, err := r.Create(ctx, tripFixture())
		require.NoError(t, err)

		restored := tripFixture()
		restored.ID = "restored-1"
		restored.CreatedAt = time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)
		require.NoError(t, r.ReplaceAll(ctx, []domain.Trip{restored}))

		trips, err := r.List(ctx)
		require.NoError(t, err)
		require.Len(t, trips, 1)
		assert.Equal(t, "restored-1", trips[0].ID)
		assert.True(t, trips[0].CreatedAt.Equal(restored.CreatedAt))

		require.NoError(t, r.DeleteAll(ctx))
		trips, err = r.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, trips)
	})
}
