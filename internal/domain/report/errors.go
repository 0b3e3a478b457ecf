package report

import "errors"

// ErrScheduleGap aborts report generation when a reported day has no
// governing condition. The report is all-or-nothing; no blank goal
// columns are emitted.
var ErrScheduleGap = errors.New("no active condition for a reported day")
