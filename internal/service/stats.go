package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/repo"
	"github.com/pkordes/triplog/internal/timeline"
)

// topEventLabels is how many labels MostCommonEvents reports.
const topEventLabels = 5

// StatsService reduces the saved trips into aggregate statistics.
type StatsService struct {
	trips repo.TripRepo
	clock timeline.Clock
}

// NewStatsService constructs a StatsService. A nil clock selects the system clock.
func NewStatsService(r repo.TripRepo, clock timeline.Clock) *StatsService {
	if clock == nil {
		clock = timeline.SystemClock{}
	}
	return &StatsService{trips: r, clock: clock}
}

// Compute loads every trip and aggregates it.
func (s *StatsService) Compute(ctx context.Context) (domain.Statistics, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return domain.Statistics{}, fmt.Errorf("service.StatsService.Compute: %w", err)
	}
	return Aggregate(trips, s.clock.Now()), nil
}

// Aggregate computes statistics over trips relative to now. Weekday and
// hour buckets use each trip's own start time zone.
func Aggregate(trips []domain.Trip, now time.Time) domain.Statistics {
	st := domain.Statistics{
		TotalTrips:       len(trips),
		MostCommonEvents: []domain.EventCount{},
		TripsByDayOfWeek: map[string]int{},
		TripsByHourOfDay: map[int]int{},
	}
	if len(trips) == 0 {
		return st
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		st.TripsByDayOfWeek[d.String()] = 0
	}

	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)
	labels := map[string]int{}

	for _, t := range trips {
		dur := t.DurationSeconds()
		st.TotalDuration += dur
		if st.ShortestTrip == nil || dur < st.ShortestTrip.Duration {
			st.ShortestTrip = &domain.TripExtreme{Duration: dur, Date: t.StartTime}
		}
		if st.LongestTrip == nil || dur > st.LongestTrip.Duration {
			st.LongestTrip = &domain.TripExtreme{Duration: dur, Date: t.StartTime}
		}

		st.TotalEvents += len(t.Events)
		for _, e := range t.Events {
			if e.Label != domain.StartLabel {
				labels[e.Label]++
			}
		}

		st.TripsByDayOfWeek[t.StartTime.Weekday().String()]++
		st.TripsByHourOfDay[t.StartTime.Hour()]++

		if !t.StartTime.Before(weekAgo) {
			st.Last7Days++
		}
		if !t.StartTime.Before(monthAgo) {
			st.Last30Days++
		}
	}

	st.AverageDuration = st.TotalDuration / int64(len(trips))
	st.AverageEventsPerTrip = st.TotalEvents / len(trips)

	for label, n := range labels {
		st.MostCommonEvents = append(st.MostCommonEvents, domain.EventCount{Label: label, Count: n})
	}
	sort.Slice(st.MostCommonEvents, func(i, j int) bool {
		a, b := st.MostCommonEvents[i], st.MostCommonEvents[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Label < b.Label
	})
	if len(st.MostCommonEvents) > topEventLabels {
		st.MostCommonEvents = st.MostCommonEvents[:topEventLabels]
	}
	return st
}
