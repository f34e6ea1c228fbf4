package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/triplog/internal/domain"
)

// Reconciled holds the derived fields of a saved trip rebuilt from its events.
type Reconciled struct {
	Events    []domain.Event
	Summary   string
	StartTime time.Time
	EndTime   time.Time
}

// Reconcile rebuilds a saved trip's derived fields from events, which must
// already be in their final order. Sequence numbers are reassigned densely
// from 1 and incoming deltas are ignored. The input slice is not modified.
//
// Reconciling the output of Reconcile again yields an identical result.
func Reconcile(events []domain.Event, startLocation string) (Reconciled, error) {
	if len(events) == 0 {
		return Reconciled{}, fmt.Errorf("timeline.Reconcile: %w", domain.ErrEmptyTimeline)
	}
	d, err := Derive(pointsOf(events), startLocation)
	if err != nil {
		return Reconciled{}, fmt.Errorf("timeline.Reconcile: %w", err)
	}
	return Reconciled{
		Events:    d.Events,
		Summary:   d.Summary,
		StartTime: d.Events[0].Time,
		EndTime:   d.Events[len(d.Events)-1].Time,
	}, nil
}

// Apply returns a copy of trip with its derived fields replaced by r.
// Identity and user-owned fields (ID, StartLocation, Notes, CreatedAt) are kept.
func (r Reconciled) Apply(trip domain.Trip) domain.Trip {
	out := trip.Clone()
	out.Events = cloneEvents(r.Events)
	out.Summary = r.Summary
	out.StartTime = r.StartTime
	out.EndTime = r.EndTime
	return out
}

// ReconcileTrip rebuilds trip from its own events and start location.
func ReconcileTrip(trip domain.Trip) (domain.Trip, error) {
	r, err := Reconcile(trip.Events, trip.StartLocation)
	if err != nil {
		return domain.Trip{}, err
	}
	return r.Apply(trip), nil
}

// DeleteEvent returns a new trip without the event numbered seq, with every
// later event renumbered and re-measured. Removing the only event is refused
// with domain.ErrLastEvent; the whole trip must be deleted instead.
func DeleteEvent(trip domain.Trip, seq int) (domain.Trip, error) {
	idx, err := indexOf(trip, seq)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("timeline.DeleteEvent: %w", err)
	}
	if len(trip.Events) == 1 {
		return domain.Trip{}, fmt.Errorf("timeline.DeleteEvent: %w", domain.ErrLastEvent)
	}

	kept := make([]domain.Event, 0, len(trip.Events)-1)
	kept = append(kept, trip.Events[:idx]...)
	kept = append(kept, trip.Events[idx+1:]...)

	r, err := Reconcile(kept, trip.StartLocation)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("timeline.DeleteEvent: %w", err)
	}
	return r.Apply(trip), nil
}

// RenameEvent returns a new trip in which event seq carries label.
// The summary is regenerated even though no delta changes.
func RenameEvent(trip domain.Trip, seq int, label string) (domain.Trip, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.Trip{}, fmt.Errorf("timeline.RenameEvent: %w: label is required", domain.ErrValidation)
	}
	idx, err := indexOf(trip, seq)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("timeline.RenameEvent: %w", err)
	}

	events := cloneEvents(trip.Events)
	events[idx].Label = label

	r, err := Reconcile(events, trip.StartLocation)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("timeline.RenameEvent: %w", err)
	}
	return r.Apply(trip), nil
}

// SetEventPhoto returns a new trip in which event seq carries ref as its
// photo. Derived fields are unaffected.
func SetEventPhoto(trip domain.Trip, seq int, ref string) (domain.Trip, error) {
	idx, err := indexOf(trip, seq)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("timeline.SetEventPhoto: %w", err)
	}
	out := trip.Clone()
	out.Events[idx].PhotoRef = ref
	return out, nil
}

// indexOf finds the event with sequence number seq. It searches by value
// rather than position so a trip with stale numbering is still addressable.
func indexOf(trip domain.Trip, seq int) (int, error) {
	for i, e := range trip.Events {
		if e.Seq == seq {
			return i, nil
		}
	}
	return -1, fmt.Errorf("event %d: %w", seq, domain.ErrNotFound)
}
