package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/triplog/internal/domain"
)

// State is the recording state of an Engine.
type State string

const (
	Idle      State = "idle"
	Recording State = "recording"
)

// Snapshot is a copy of an Engine's state at one moment, safe to hand to
// callers and to encode.
type Snapshot struct {
	State          State          `json:"state"`
	StartTime      *time.Time     `json:"startTime,omitempty"`
	StartLocation  string         `json:"startLocation,omitempty"`
	Events         []domain.Event `json:"events"`
	Summary        string         `json:"summary"`
	ElapsedSeconds int64          `json:"elapsedSeconds"`
	Elapsed        string         `json:"elapsed"`
}

// Engine owns the event list of the trip currently being recorded.
//
// Engine is not safe for concurrent use; callers that share one across
// goroutines must serialise access.
type Engine struct {
	clock         Clock
	state         State
	startTime     time.Time
	startLocation string

	// events and summary are written only by commit.
	events  []domain.Event
	summary string
}

// NewEngine returns an idle Engine reading time from clock.
// A nil clock selects SystemClock.
func NewEngine(clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Engine{clock: clock, state: Idle}
}

// State reports whether a trip is being recorded.
func (e *Engine) State() State { return e.state }

// Start begins a new trip: it clears any previous events and records the
// automatic start event at the current time.
func (e *Engine) Start() (domain.Event, error) {
	if e.state == Recording {
		return domain.Event{}, fmt.Errorf("timeline.Engine.Start: %w", domain.ErrAlreadyRecording)
	}
	now := e.clock.Now()
	if err := e.commit([]Point{{Label: domain.StartLabel, Time: now}}); err != nil {
		return domain.Event{}, fmt.Errorf("timeline.Engine.Start: %w", err)
	}
	e.startTime = now
	e.state = Recording
	return e.events[0].Clone(), nil
}

// AddEvent appends an event stamped with the current time and regenerates
// the summary. label is trimmed and must not be blank.
func (e *Engine) AddEvent(label string) (domain.Event, error) {
	if e.state != Recording {
		return domain.Event{}, fmt.Errorf("timeline.Engine.AddEvent: %w", domain.ErrNotRecording)
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return domain.Event{}, fmt.Errorf("timeline.Engine.AddEvent: %w: label is required", domain.ErrValidation)
	}

	points := append(pointsOf(e.events), Point{Label: label, Time: e.clock.Now()})
	if err := e.commit(points); err != nil {
		return domain.Event{}, fmt.Errorf("timeline.Engine.AddEvent: %w", err)
	}
	return e.events[len(e.events)-1].Clone(), nil
}

// AttachPhoto sets the photo reference of the event with sequence number seq.
// An empty ref removes the photo. Timestamps, deltas and summary are unchanged.
func (e *Engine) AttachPhoto(seq int, ref string) (domain.Event, error) {
	if len(e.events) == 0 {
		return domain.Event{}, fmt.Errorf("timeline.Engine.AttachPhoto: %w", domain.ErrEmptyTimeline)
	}
	if seq < 1 || seq > len(e.events) {
		return domain.Event{}, fmt.Errorf("timeline.Engine.AttachPhoto: event %d: %w", seq, domain.ErrNotFound)
	}
	e.events[seq-1].PhotoRef = ref
	return e.events[seq-1].Clone(), nil
}

// SetStartLocation sets the optional "From:" label and regenerates the summary.
func (e *Engine) SetStartLocation(label string) error {
	e.startLocation = strings.TrimSpace(label)
	if len(e.events) == 0 {
		return nil
	}
	if err := e.commit(pointsOf(e.events)); err != nil {
		return fmt.Errorf("timeline.Engine.SetStartLocation: %w", err)
	}
	return nil
}

// Reset discards every event and returns to Idle. It never saves anything.
func (e *Engine) Reset() {
	e.state = Idle
	e.startTime = time.Time{}
	e.startLocation = ""
	e.events = nil
	e.summary = ""
}

// Elapsed returns whole seconds since Start, or 0 while idle. It is a
// display value only and never feeds into a saved trip.
func (e *Engine) Elapsed() int64 {
	if e.state != Recording {
		return 0
	}
	return wholeSeconds(e.startTime, e.clock.Now())
}

// Snapshot returns a deep copy of the engine state.
func (e *Engine) Snapshot() Snapshot {
	elapsed := e.Elapsed()
	s := Snapshot{
		State:          e.state,
		StartLocation:  e.startLocation,
		Events:         cloneEvents(e.events),
		Summary:        e.summary,
		ElapsedSeconds: elapsed,
		Elapsed:        FormatElapsed(elapsed),
	}
	if e.state == Recording {
		st := e.startTime
		s.StartTime = &st
	}
	return s
}

// Draft builds the trip to persist from the recorded events. The returned
// trip has no ID; the store assigns one. The engine is left untouched so a
// failed save loses nothing.
func (e *Engine) Draft(notes string) (domain.Trip, error) {
	if e.state != Recording || len(e.events) == 0 {
		return domain.Trip{}, fmt.Errorf("timeline.Engine.Draft: %w", domain.ErrNothingToSave)
	}
	events := cloneEvents(e.events)
	return domain.Trip{
		StartTime:     events[0].Time,
		EndTime:       events[len(events)-1].Time,
		Events:        events,
		Summary:       e.summary,
		StartLocation: e.startLocation,
		Notes:         strings.TrimSpace(notes),
	}, nil
}

// commit is the only writer of events and summary.
func (e *Engine) commit(points []Point) error {
	d, err := Derive(points, e.startLocation)
	if err != nil {
		return err
	}
	e.events = d.Events
	e.summary = d.Summary
	return nil
}

func cloneEvents(events []domain.Event) []domain.Event {
	out := make([]domain.Event, len(events))
	for i, ev := range events {
		out[i] = ev.Clone()
	}
	return out
}
