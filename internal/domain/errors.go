package domain

import "errors"

// ErrNotFound is returned when the requested trip or event does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. a blank event label).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrEmptyTimeline is returned when an operation needs at least one event.
var ErrEmptyTimeline = errors.New("timeline has no events")

// ErrNonMonotonic is returned when an event is timestamped before its predecessor.
var ErrNonMonotonic = errors.New("event timestamps are not in chronological order")

// ErrLastEvent is returned when deleting an event would leave a saved trip empty.
// The caller should delete the whole trip instead.
var ErrLastEvent = errors.New("cannot delete the only remaining event")

// ErrNotRecording is returned by live-recording operations that need a
// trip in progress.
var ErrNotRecording = errors.New("no trip is being recorded")

// ErrAlreadyRecording is returned when starting a trip while one is in progress.
var ErrAlreadyRecording = errors.New("a trip is already being recorded")

// ErrNothingToSave is returned when saving with no recorded events.
var ErrNothingToSave = errors.New("nothing to save")

// ErrStorage wraps every failure reported by a persistence backend.
var ErrStorage = errors.New("storage failure")

// Error kinds returned by Kind. They are stable, machine-readable codes.
const (
	KindNotFound      = "not_found"
	KindValidation    = "validation_error"
	KindInvalidState  = "invalid_state"
	KindNothingToSave = "nothing_to_save"
	KindStorage       = "storage_error"
	KindInternal      = "internal"
)

// Kind classifies err so callers can tell failures apart without parsing
// error text. A nil error has an empty kind.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrEmptyTimeline),
		errors.Is(err, ErrNonMonotonic),
		errors.Is(err, ErrLastEvent):
		return KindValidation
	case errors.Is(err, ErrNothingToSave):
		return KindNothingToSave
	case errors.Is(err, ErrNotRecording), errors.Is(err, ErrAlreadyRecording):
		return KindInvalidState
	case errors.Is(err, ErrStorage):
		return KindStorage
	default:
		return KindInternal
	}
}
