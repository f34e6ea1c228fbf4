package domain

import "time"

// Statistics is an aggregate view over every saved trip.
// Durations are whole seconds.
type Statistics struct {
	TotalTrips           int            `json:"totalTrips"`
	TotalDuration        int64          `json:"totalDuration"`
	AverageDuration      int64          `json:"averageDuration"`
	ShortestTrip         *TripExtreme   `json:"shortestTrip"`
	LongestTrip          *TripExtreme   `json:"longestTrip"`
	TotalEvents          int            `json:"totalEvents"`
	AverageEventsPerTrip int            `json:"averageEventsPerTrip"`
	MostCommonEvents     []EventCount   `json:"mostCommonEvents"`
	TripsByDayOfWeek     map[string]int `json:"tripsByDayOfWeek"`
	TripsByHourOfDay     map[int]int    `json:"tripsByHourOfDay"`
	Last7Days            int            `json:"last7Days"`
	Last30Days           int            `json:"last30Days"`
}

// TripExtreme identifies the shortest or longest trip by duration and start.
type TripExtreme struct {
	Duration int64     `json:"duration"`
	Date     time.Time `json:"date"`
}

// EventCount is how many times an event label occurs across all trips.
type EventCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}
