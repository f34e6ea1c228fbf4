// Package timeline is the trip event timeline engine: it records timestamped
// events, derives the gaps between them and renders the trip summary.
//
// Derive is the single algorithm behind both lifecycles. Engine appends to
// a live recording; Reconcile rebuilds a saved trip after an edit or delete.
package timeline

import (
	"fmt"
	"strings"
	"time"
)

// NoDelta is rendered where an event has no predecessor to measure from.
const NoDelta = "-"

// FormatClock renders the wall-clock time of t as 24-hour HH:MM:SS in t's
// own location.
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}

// FormatDelta renders a gap in whole seconds as "S s", "M m" or "M m and S s".
// Minutes are not folded into hours. A zero gap renders as "0 s".
func FormatDelta(seconds int64) string {
	mins, secs := seconds/60, seconds%60
	switch {
	case mins == 0:
		return fmt.Sprintf("%d s", secs)
	case secs == 0:
		return fmt.Sprintf("%d m", mins)
	default:
		return fmt.Sprintf("%d m and %d s", mins, secs)
	}
}

// FormatOptionalDelta renders d with FormatDelta, or NoDelta when d is nil.
func FormatOptionalDelta(d *int64) string {
	if d == nil {
		return NoDelta
	}
	return FormatDelta(*d)
}

// FormatElapsed renders a running counter as HH:MM:SS. Hours are not
// wrapped at 24.
func FormatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// FormatDuration renders a long duration with hours, e.g. "1 h and 5 s".
// Zero parts are omitted; zero itself renders as "0 s".
func FormatDuration(seconds int64) string {
	if seconds <= 0 {
		return "0 s"
	}
	var parts []string
	if h := seconds / 3600; h > 0 {
		parts = append(parts, fmt.Sprintf("%d h", h))
	}
	if m := (seconds % 3600) / 60; m > 0 {
		parts = append(parts, fmt.Sprintf("%d m", m))
	}
	if s := seconds % 60; s > 0 {
		parts = append(parts, fmt.Sprintf("%d s", s))
	}
	return strings.Join(parts, " and ")
}

// wholeSeconds floors the gap from a to b to whole seconds.
func wholeSeconds(a, b time.Time) int64 {
	return int64(b.Sub(a) / time.Second)
}
