package timeline

import "time"

// Clock supplies the current time. It is the only non-deterministic input
// to the timeline; tests inject a fixed sequence.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the local time zone.
type SystemClock struct{}

// Now returns the wall-clock time at microsecond precision. The monotonic
// reading is stripped so live deltas match the ones recomputed from stored
// timestamps, and the precision matches what Postgres keeps.
func (SystemClock) Now() time.Time { return time.Now().Round(0).Truncate(time.Microsecond) }

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }
