package timeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/triplog/internal/domain"
)

// Summary line templates.
const (
	summaryHeader = "Trip summary:"
	fromLine      = "From: %s"
	firstLine     = "%d- %s at %s"
	laterLine     = "%d- %s at %s (after %s from previous event)"
	totalLine     = "Approximate total trip duration: %s"
)

// Point is the caller-owned part of an event: what happened and when.
// Sequence numbers and deltas are always derived from the order of points.
type Point struct {
	Label    string
	Time     time.Time
	PhotoRef string
}

// Derivation is the output of Derive: fully derived events plus the summary.
type Derivation struct {
	Events  []domain.Event
	Summary string
}

// Derive numbers points densely from 1, computes the whole-second gap from
// each point to its predecessor and renders the summary text.
//
// points must be non-empty and chronologically non-decreasing. Equal
// neighbouring timestamps are legal and produce a zero delta. Derive is pure:
// the same input always yields byte-identical output.
func Derive(points []Point, startLocation string) (Derivation, error) {
	if len(points) == 0 {
		return Derivation{}, fmt.Errorf("timeline.Derive: %w", domain.ErrEmptyTimeline)
	}

	events := make([]domain.Event, len(points))
	for i, p := range points {
		e := domain.Event{
			Seq:      i + 1,
			Label:    p.Label,
			Time:     p.Time,
			PhotoRef: p.PhotoRef,
		}
		if i > 0 {
			prev := points[i-1].Time
			if p.Time.Before(prev) {
				return Derivation{}, fmt.Errorf("timeline.Derive: %w: event %d at %s precedes event %d at %s",
					domain.ErrNonMonotonic, i+1, FormatClock(p.Time), i, FormatClock(prev))
			}
			d := wholeSeconds(prev, p.Time)
			e.Delta = &d
		}
		events[i] = e
	}

	return Derivation{Events: events, Summary: renderSummary(events, startLocation)}, nil
}

// renderSummary builds the summary from already-derived events.
func renderSummary(events []domain.Event, startLocation string) string {
	lines := []string{summaryHeader, ""}

	if loc := strings.TrimSpace(startLocation); loc != "" {
		lines = append(lines, fmt.Sprintf(fromLine, loc), "")
	}

	for _, e := range events {
		clock := FormatClock(e.Time)
		if e.Delta == nil {
			lines = append(lines, fmt.Sprintf(firstLine, e.Seq, e.Label, clock))
			continue
		}
		lines = append(lines, fmt.Sprintf(laterLine, e.Seq, e.Label, clock, FormatDelta(*e.Delta)))
	}

	if len(events) > 1 {
		total := wholeSeconds(events[0].Time, events[len(events)-1].Time)
		lines = append(lines, "", fmt.Sprintf(totalLine, FormatDelta(total)))
	}

	return strings.Join(lines, "\n")
}

// pointsOf strips derived fields from events, keeping caller order.
func pointsOf(events []domain.Event) []Point {
	points := make([]Point, len(events))
	for i, e := range events {
		points[i] = Point{Label: e.Label, Time: e.Time, PhotoRef: e.PhotoRef}
	}
	return points
}
