package schedule

import "errors"

var (
	// ErrNotFound is returned when no condition matches a lookup.
	ErrNotFound = errors.New("condition not found")

	// ErrOverlap rejects an insert or replace whose window collides
	// with another condition of the same user.
	ErrOverlap = errors.New("condition overlaps an existing window")

	// ErrInvalidWindow rejects a window whose end precedes its start.
	ErrInvalidWindow = errors.New("condition window end is before start")

	// ErrIntegrity signals stored data violating the non-overlap
	// invariant: more than one condition active on the same day.
	ErrIntegrity = errors.New("multiple conditions active for one day")
)
