package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/service"
)

func TestAggregate_Empty(t *testing.T) {
	st := service.Aggregate(nil, t0)

	assert.Equal(t, 0, st.TotalTrips)
	assert.Nil(t, st.ShortestTrip)
	assert.NotNil(t, st.MostCommonEvents)
	assert.Empty(t, st.TripsByDayOfWeek)
}

func TestAggregate(t *testing.T) {
	a := storedTrip("a", []int{0, 60, 120}, domain.StartLabel, "bus", "office")
	b := storedTrip("b", []int{0, 300}, domain.StartLabel, "bus")
	old := storedTrip("old", []int{0, 30}, domain.StartLabel, "walk")
	old.StartTime = old.StartTime.AddDate(0, 0, -20)
	old.EndTime = old.EndTime.AddDate(0, 0, -20)

	st := service.Aggregate([]domain.Trip{a, b, old}, t0.Add(time.Hour))

	assert.Equal(t, 3, st.TotalTrips)
	assert.Equal(t, int64(120+300+30), st.TotalDuration)
	assert.Equal(t, int64(150), st.AverageDuration)
	require.NotNil(t, st.ShortestTrip)
	assert.Equal(t, int64(30), st.ShortestTrip.Duration)
	require.NotNil(t, st.LongestTrip)
	assert.Equal(t, int64(300), st.LongestTrip.Duration)
	assert.Equal(t, 7, st.TotalEvents)
	assert.Equal(t, 2, st.AverageEventsPerTrip)
	assert.Equal(t, []domain.EventCount{{Label: "bus", Count: 2}, {Label: "office", Count: 1}, {Label: "walk", Count: 1}}, st.MostCommonEvents)
	assert.Equal(t, 2, st.TripsByDayOfWeek["Monday"])
	assert.Equal(t, 1, st.TripsByDayOfWeek[old.StartTime.Weekday().String()])
	assert.Len(t, st.TripsByDayOfWeek, 7)
	assert.Equal(t, 3, st.TripsByHourOfDay[7])
	assert.Equal(t, 2, st.Last7Days)
	assert.Equal(t, 3, st.Last30Days)
}

func TestAggregate_TopFiveLabels(t *testing.T) {
	labels := []string{domain.StartLabel, "a", "b", "c", "d", "e", "f"}
	offsets := []int{0, 1, 2, 3, 4, 5, 6}
	trip := storedTrip("t", offsets, labels...)

	st := service.Aggregate([]domain.Trip{trip}, t0)

	assert.Len(t, st.MostCommonEvents, 5)
}

func TestStatsService_Compute(t *testing.T) {
	svc := service.NewStatsService(&mockTripRepo{
		list: func(_ context.Context) ([]domain.Trip, error) {
			return []domain.Trip{storedTrip("a", []int{0, 90}, domain.StartLabel, "done")}, nil
		},
	}, newManualClock(t0))

	st, err := svc.Compute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, st.TotalTrips)
	assert.Equal(t, int64(90), st.TotalDuration)
}
