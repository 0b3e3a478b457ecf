package schedule

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// ClockTime is a minute-precision time of day. It doubles as the
// expected work length for a weekday (e.g. "08:00" meaning eight hours)
// and as a segment boundary within a day.
type ClockTime struct {
	Hour   int
	Minute int
}

func ParseClockTime(value string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return ClockTime{}, fmt.Errorf("time %q is not in HH:mm format", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return ClockTime{}, fmt.Errorf("time %q is not in HH:mm format", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return ClockTime{}, fmt.Errorf("time %q is not in HH:mm format", value)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return ClockTime{}, fmt.Errorf("time %q is out of range", value)
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c ClockTime) Before(other ClockTime) bool {
	return c.Minutes() < other.Minutes()
}

// PgTime maps the clock onto a Postgres TIME value, which pgx counts
// in microseconds since midnight.
func (c ClockTime) PgTime() pgtype.Time {
	return pgtype.Time{Microseconds: int64(c.Minutes()) * 60_000_000, Valid: true}
}

// ClockTimeFromPg is the inverse of PgTime; sub-minute precision is
// dropped.
func ClockTimeFromPg(t pgtype.Time) ClockTime {
	minutes := int(t.Microseconds / 60_000_000)
	return ClockTime{Hour: minutes / 60, Minute: minutes % 60}
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseClockTime(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
