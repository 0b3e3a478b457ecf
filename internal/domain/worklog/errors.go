package worklog

import "errors"

var (
	// ErrNotFound is returned when an id lookup misses or the record
	// belongs to another user or day.
	ErrNotFound = errors.New("record not found")

	// ErrDayConflict rejects a work segment on a day that already has
	// an absence entry, and vice versa.
	ErrDayConflict = errors.New("day already holds the other record kind")

	// ErrEndBeforeStart rejects a segment whose end precedes its start.
	ErrEndBeforeStart = errors.New("segment end is before start")
)
