package timeline_test

import (
	"time"

	"github.com/pkordes/triplog/internal/domain"
	"github.com/pkordes/triplog/internal/timeline"
)

// ---- helpers ---------------------------------------------------------------

// t0 is 08:15:30 local wall time; summaries render it as "08:15:30".
var t0 = time.Date(2025, 6, 1, 8, 15, 30, 0, time.UTC)

// fakeClock returns the queued instants in order and repeats the last one.
type fakeClock struct {
	times []time.Time
}

func (c *fakeClock) Now() time.Time {
	now := c.times[0]
	if len(c.times) > 1 {
		c.times = c.times[1:]
	}
	return now
}

var _ timeline.Clock = (*fakeClock)(nil)

func clockAt(times ...time.Time) *fakeClock {
	return &fakeClock{times: times}
}

func at(seconds int) time.Time {
	return t0.Add(time.Duration(seconds) * time.Second)
}

func delta(n int64) *int64 { return &n }

// savedTrip returns a consistent three-event trip: start, +125s, +40s.
func savedTrip() domain.Trip {
	return domain.Trip{
		ID:        "trip-1",
		StartTime: at(0),
		EndTime:   at(165),
		Events: []domain.Event{
			{Seq: 1, Label: "start", Time: at(0)},
			{Seq: 2, Label: "left home", Time: at(125), Delta: delta(125), PhotoRef: "file:///home.jpg"},
			{Seq: 3, Label: "arrived", Time: at(165), Delta: delta(40)},
		},
		Summary: "stale",
		Notes:   "rainy",
	}
}
