package shared

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	parsed, err := ParseDay("2019-07-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Fatalf("expected %v, got %v", want, parsed)
	}
}

func TestParseDayRejectsOtherFormats(t *testing.T) {
	for _, raw := range []string{"", "2019-7-1", "01.07.2019", "2019-07-01T00:00:00Z"} {
		if _, err := ParseDay(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
