package worklog

import (
	"fmt"
	"strings"
	"time"

	"timecard/internal/domain/schedule"
)

// WorkSegment is one contiguous logged work interval within a day.
// End is nil while the segment is still open.
type WorkSegment struct {
	ID     string              `json:"id"`
	UserID string              `json:"-"`
	Day    time.Time           `json:"day"`
	Start  schedule.ClockTime  `json:"start"`
	End    *schedule.ClockTime `json:"end,omitempty"`
}

// Validate rejects a segment whose end precedes its start. Called
// before any store access.
func (s WorkSegment) Validate() error {
	if s.End != nil && s.End.Before(s.Start) {
		return ErrEndBeforeStart
	}
	return nil
}

// AbsenceEntry is a whole-day record explaining why no work was logged.
type AbsenceEntry struct {
	ID     string        `json:"id"`
	UserID string        `json:"-"`
	Day    time.Time     `json:"day"`
	Reason AbsenceReason `json:"reason"`
}

type AbsenceReason string

const (
	ReasonVacation AbsenceReason = "VACATION"
	ReasonIll      AbsenceReason = "ILL"
	ReasonHoliday  AbsenceReason = "HOLIDAY"
	ReasonTraining AbsenceReason = "TRAINING"
)

// ParseAbsenceReason validates the string form at the boundary; the
// engine only ever sees the typed value.
func ParseAbsenceReason(value string) (AbsenceReason, error) {
	switch AbsenceReason(strings.ToUpper(strings.TrimSpace(value))) {
	case ReasonVacation:
		return ReasonVacation, nil
	case ReasonIll:
		return ReasonIll, nil
	case ReasonHoliday:
		return ReasonHoliday, nil
	case ReasonTraining:
		return ReasonTraining, nil
	default:
		return "", fmt.Errorf("unknown absence reason %q", value)
	}
}
