package schedule

import (
	"encoding/json"
	"testing"
)

func TestParseClockTime(t *testing.T) {
	parsed, err := ParseClockTime("09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != (ClockTime{Hour: 9, Minute: 30}) {
		t.Fatalf("unexpected value: %+v", parsed)
	}
	if parsed.String() != "09:30" {
		t.Fatalf("unexpected format: %s", parsed.String())
	}
}

func TestParseClockTimeInvalid(t *testing.T) {
	for _, raw := range []string{"", "9", "24:00", "12:60", "ab:cd", "12:00:00"} {
		if _, err := ParseClockTime(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestClockTimeBefore(t *testing.T) {
	if !(ClockTime{Hour: 9}).Before(ClockTime{Hour: 9, Minute: 1}) {
		t.Fatal("expected 09:00 before 09:01")
	}
	if (ClockTime{Hour: 9}).Before(ClockTime{Hour: 9}) {
		t.Fatal("expected equal times not to be before each other")
	}
}

func TestClockTimePgRoundTrip(t *testing.T) {
	clock := ClockTime{Hour: 13, Minute: 37}
	pg := clock.PgTime()
	if !pg.Valid {
		t.Fatal("expected valid TIME value")
	}
	if pg.Microseconds != int64(13*60+37)*60_000_000 {
		t.Fatalf("unexpected microseconds: %d", pg.Microseconds)
	}
	if got := ClockTimeFromPg(pg); got != clock {
		t.Fatalf("round trip changed value: %+v", got)
	}
}

func TestClockTimeJSON(t *testing.T) {
	raw, err := json.Marshal(ClockTime{Hour: 7, Minute: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `"07:05"` {
		t.Fatalf("unexpected JSON: %s", raw)
	}

	var decoded ClockTime
	if err := json.Unmarshal([]byte(`"18:45"`), &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded != (ClockTime{Hour: 18, Minute: 45}) {
		t.Fatalf("unexpected value: %+v", decoded)
	}

	if err := json.Unmarshal([]byte(`"25:00"`), &decoded); err == nil {
		t.Fatal("expected error for out-of-range time")
	}
}
