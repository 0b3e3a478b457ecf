package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"timecard/internal/domain/schedule"
	"timecard/internal/domain/worklog"
)

const dayFormat = "2006-01-02"

type ConditionSource interface {
	FindByWindow(ctx context.Context, userID string, from, to time.Time) ([]schedule.Condition, error)
}

type LogSource interface {
	SegmentsByWindow(ctx context.Context, userID string, from, to time.Time) ([]worklog.WorkSegment, error)
	AbsencesByWindow(ctx context.Context, userID string, from, to time.Time) ([]worklog.AbsenceEntry, error)
}

// Builder produces attendance reports for one user and window. It is
// stateless; every call works on a fresh snapshot from the sources.
type Builder struct {
	Conditions ConditionSource
	Log        LogSource
}

func NewBuilder(conditions ConditionSource, log LogSource) *Builder {
	return &Builder{Conditions: conditions, Log: log}
}

// BuildCSV renders the semicolon-delimited report: one header line,
// one line per day with work logged (in date order), then one line per
// absence day (in date order). Every line carries a trailing semicolon.
func (b *Builder) BuildCSV(ctx context.Context, userID string, from, to time.Time) (string, error) {
	rows, err := b.tabulate(ctx, userID, from, to)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(row, ";"))
		sb.WriteString(";\n")
	}
	return sb.String(), nil
}

// tabulate returns the header row followed by data rows. Every row has
// exactly 2*width+2 cells.
func (b *Builder) tabulate(ctx context.Context, userID string, from, to time.Time) ([][]string, error) {
	from = schedule.DayOf(from)
	to = schedule.DayOf(to)

	segments, err := b.Log.SegmentsByWindow(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	absences, err := b.Log.AbsencesByWindow(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	conditions, err := b.Conditions.FindByWindow(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	grouped := GroupByDay(segments)
	width := MaxColumns(grouped)

	rows := [][]string{headerCells(width)}

	for _, day := range SortedDays(grouped) {
		active, err := schedule.ResolveActive(conditions, day)
		if err != nil {
			if errors.Is(err, schedule.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrScheduleGap, day.Format(dayFormat))
			}
			return nil, err
		}

		cells := make([]string, 0, 2*width+2)
		cells = append(cells, day.Format(dayFormat))
		cells = append(cells, PadRow(grouped[day], width)...)
		cells = append(cells, active.ExpectedTime(day).String())
		rows = append(rows, cells)
	}

	// Absence rows come after all work rows, not interleaved by date.
	for _, entry := range absences {
		cells := make([]string, 0, 2*width+2)
		cells = append(cells, entry.Day.Format(dayFormat))
		for i := 0; i < width; i++ {
			cells = append(cells, "", "")
		}
		cells = append(cells, string(entry.Reason))
		rows = append(rows, cells)
	}

	return rows, nil
}

func headerCells(width int) []string {
	cells := make([]string, 0, 2*width+2)
	cells = append(cells, "Day")
	for i := 1; i <= width; i++ {
		cells = append(cells, fmt.Sprintf("Start %d", i), fmt.Sprintf("End %d", i))
	}
	return append(cells, "Time Goal")
}
