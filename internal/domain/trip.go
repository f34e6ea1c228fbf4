// Package domain contains the core data types for the trip logbook.
// This package depends only on the standard library and is imported by every
// other internal package (timeline, repo, service, handler).
package domain

import "time"

// Trip is a saved, finished trip. It is the top-level aggregate; events
// belong to a trip and are only ever replaced as a whole.
//
// StartTime, EndTime and Summary are derived from Events. They are written
// by the timeline package and must never be edited independently.
type Trip struct {
	ID            string    `json:"id"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Events        []Event   `json:"events"`
	Summary       string    `json:"summary"`
	StartLocation string    `json:"startLocation,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DurationSeconds returns the whole seconds between the first and last event.
func (t Trip) DurationSeconds() int64 {
	return int64(t.EndTime.Sub(t.StartTime) / time.Second)
}

// Clone returns a deep copy of t so callers can modify the event slice
// without touching the original record.
func (t Trip) Clone() Trip {
	out := t
	out.Events = make([]Event, len(t.Events))
	for i, e := range t.Events {
		out.Events[i] = e.Clone()
	}
	return out
}
