package schedule

import "time"

// Condition declares a user's expected weekly hours over a validity
// window, plus the vacation quota for that window. Windows are closed
// intervals of whole days and must not overlap per user.
type Condition struct {
	ID               string    `json:"id"`
	UserID           string    `json:"-"`
	Monday           ClockTime `json:"monday"`
	Tuesday          ClockTime `json:"tuesday"`
	Wednesday        ClockTime `json:"wednesday"`
	Thursday         ClockTime `json:"thursday"`
	Friday           ClockTime `json:"friday"`
	Saturday         ClockTime `json:"saturday"`
	Sunday           ClockTime `json:"sunday"`
	From             time.Time `json:"from"`
	To               time.Time `json:"to"`
	InitialVacation  int       `json:"initialVacation"`
	ConsumedVacation int       `json:"consumedVacation"`
}

func (c Condition) VacationLeft() int {
	return c.InitialVacation - c.ConsumedVacation
}

// ExpectedTime returns the expected work length for day's weekday.
func (c Condition) ExpectedTime(day time.Time) ClockTime {
	switch day.Weekday() {
	case time.Monday:
		return c.Monday
	case time.Tuesday:
		return c.Tuesday
	case time.Wednesday:
		return c.Wednesday
	case time.Thursday:
		return c.Thursday
	case time.Friday:
		return c.Friday
	case time.Saturday:
		return c.Saturday
	default:
		return c.Sunday
	}
}

// DayOf truncates t to its UTC calendar date. All dates handled by the
// engine are normalized this way before comparison.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
