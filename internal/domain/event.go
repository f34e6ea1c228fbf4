package domain

import "time"

// StartLabel is the label of the event created automatically when a live
// recording starts.
const StartLabel = "trip start"

// Event is a single timestamped moment in a trip.
//
// Seq is 1-based and dense within a trip. Delta is nil for the first event
// and otherwise holds the whole seconds since the previous event; it is
// always derived, never accepted from callers.
type Event struct {
	Seq      int       `json:"id"`
	Label    string    `json:"label"`
	Time     time.Time `json:"time"`
	Delta    *int64    `json:"timeDiff,omitempty"`
	PhotoRef string    `json:"photoUri,omitempty"`
}

// Clone returns a copy of e that shares no pointers with it.
func (e Event) Clone() Event {
	if e.Delta != nil {
		d := *e.Delta
		e.Delta = &d
	}
	return e
}
