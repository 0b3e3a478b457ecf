package schedule

import "time"

// Overlaps reports whether the closed day intervals [aFrom, aTo] and
// [bFrom, bTo] intersect. Touching endpoints count as overlap.
func Overlaps(aFrom, aTo, bFrom, bTo time.Time) bool {
	return !aFrom.After(bTo) && !bFrom.After(aTo)
}

// Contains reports whether day falls inside the closed interval [from, to].
func Contains(from, to, day time.Time) bool {
	return !day.Before(from) && !day.After(to)
}

// CanInsert reports whether candidate's window is disjoint from every
// existing condition. Existing is the persisted set for one user; the
// candidate is never compared against itself, so callers must re-read
// state before each insert.
func CanInsert(existing []Condition, candidate Condition) bool {
	for _, condition := range existing {
		if Overlaps(condition.From, condition.To, candidate.From, candidate.To) {
			return false
		}
	}
	return true
}

// ResolveActive returns the condition governing day. With validated
// windows at most one can match; finding several means the stored data
// broke the invariant and the caller must treat it as corruption.
func ResolveActive(conditions []Condition, day time.Time) (Condition, error) {
	var active Condition
	found := false
	for _, condition := range conditions {
		if !Contains(condition.From, condition.To, day) {
			continue
		}
		if found {
			return Condition{}, ErrIntegrity
		}
		active = condition
		found = true
	}
	if !found {
		return Condition{}, ErrNotFound
	}
	return active, nil
}
