package shared

import "time"

// ParseDay accepts YYYY-MM-DD only and returns a UTC-midnight date.
func ParseDay(value string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}
