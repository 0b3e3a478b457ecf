package worklog

import (
	"errors"
	"testing"

	"timecard/internal/domain/schedule"
)

func TestValidateEndBeforeStart(t *testing.T) {
	end := schedule.ClockTime{Hour: 8}
	segment := WorkSegment{Start: schedule.ClockTime{Hour: 9}, End: &end}
	if err := segment.Validate(); !errors.Is(err, ErrEndBeforeStart) {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}
}

func TestValidateOpenSegment(t *testing.T) {
	segment := WorkSegment{Start: schedule.ClockTime{Hour: 9}}
	if err := segment.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateEqualStartEnd(t *testing.T) {
	end := schedule.ClockTime{Hour: 9}
	segment := WorkSegment{Start: schedule.ClockTime{Hour: 9}, End: &end}
	if err := segment.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseAbsenceReason(t *testing.T) {
	reason, err := ParseAbsenceReason("vacation")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reason != ReasonVacation {
		t.Fatalf("unexpected reason: %s", reason)
	}

	if _, err := ParseAbsenceReason("SABBATICAL"); err == nil {
		t.Fatal("expected error for unknown reason")
	}
}
