package domain

import "strings"

// SortOrder controls the order of trips returned by a history listing.
type SortOrder string

const (
	SortNewest     SortOrder = "newest"
	SortOldest     SortOrder = "oldest"
	SortLongest    SortOrder = "longest"
	SortShortest   SortOrder = "shortest"
	SortMostEvents SortOrder = "most_events"
)

// ListQuery carries search and sort options from the HTTP layer to the
// trip service. Search is matched case-insensitively against event labels,
// the summary, the start location and the notes.
type ListQuery struct {
	Search string
	Sort   SortOrder
}

// NewListQuery builds a ListQuery from optional query params.
// Unknown or empty sort values fall back to SortNewest.
func NewListQuery(search, sort string) ListQuery {
	q := ListQuery{Search: strings.TrimSpace(search), Sort: SortNewest}
	switch s := SortOrder(strings.ToLower(strings.TrimSpace(sort))); s {
	case SortOldest, SortLongest, SortShortest, SortMostEvents:
		q.Sort = s
	}
	return q
}
