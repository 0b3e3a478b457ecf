package report

import (
	"sort"
	"time"

	"timecard/internal/domain/schedule"
	"timecard/internal/domain/worklog"
)

// GroupByDay buckets segments by calendar day and orders each bucket by
// start time. Equal starts keep their retrieval order.
func GroupByDay(segments []worklog.WorkSegment) map[time.Time][]worklog.WorkSegment {
	grouped := make(map[time.Time][]worklog.WorkSegment, len(segments))
	for _, segment := range segments {
		day := schedule.DayOf(segment.Day)
		grouped[day] = append(grouped[day], segment)
	}
	for day := range grouped {
		bucket := grouped[day]
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Start.Before(bucket[j].Start)
		})
	}
	return grouped
}

func SortedDays(grouped map[time.Time][]worklog.WorkSegment) []time.Time {
	days := make([]time.Time, 0, len(grouped))
	for day := range grouped {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// MaxColumns is the largest segment count on any single day; it sizes
// the Start/End column pairs so every row has the same shape.
func MaxColumns(grouped map[time.Time][]worklog.WorkSegment) int {
	max := 0
	for _, bucket := range grouped {
		if len(bucket) > max {
			max = len(bucket)
		}
	}
	return max
}

// PadRow emits one (start, end) cell pair per segment, then empty pairs
// up to width. An open segment leaves its end cell empty. Width is
// computed from the same data set, so it is never smaller than the
// bucket.
func PadRow(segments []worklog.WorkSegment, width int) []string {
	cells := make([]string, 0, width*2)
	for _, segment := range segments {
		cells = append(cells, segment.Start.String())
		if segment.End != nil {
			cells = append(cells, segment.End.String())
		} else {
			cells = append(cells, "")
		}
	}
	for i := len(segments); i < width; i++ {
		cells = append(cells, "", "")
	}
	return cells
}
