package reporting

import (
	"strconv"
	"time"
)

const (
	RangeWeek  = "week"
	RangeMonth = "month"
	RangeYear  = "year"
)

var (
	weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	monthLabels   = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

// series is the bucket layout of one range: rows created in [start, end)
// land in labels[index(createdAt)].
type series struct {
	start, end time.Time
	labels     []string
	index      func(time.Time) int
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// lastSevenDays is today and the six days before it, in now's location.
func lastSevenDays(now time.Time) (start, end time.Time) {
	today := midnight(now)
	return today.AddDate(0, 0, -6), today.AddDate(0, 0, 1)
}

// newSeries lays out rng around now. ok is false for an unknown range.
func newSeries(rng string, now time.Time) (series, bool) {
	loc := now.Location()
	today := midnight(now)

	switch rng {
	case RangeWeek:
		start, end := lastSevenDays(now)
		return series{
			start:  start,
			end:    end,
			labels: weekdayLabels,
			// Monday=0 .. Sunday=6
			index: func(t time.Time) int { return (int(t.In(loc).Weekday()) + 6) % 7 },
		}, true

	case RangeMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		days := start.AddDate(0, 1, -1).Day()
		labels := make([]string, days)
		for i := range labels {
			labels[i] = strconv.Itoa(i + 1)
		}
		return series{
			start:  start,
			end:    today.AddDate(0, 0, 1),
			labels: labels,
			index:  func(t time.Time) int { return t.In(loc).Day() - 1 },
		}, true

	case RangeYear:
		return series{
			start:  time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc),
			end:    today.AddDate(0, 0, 1),
			labels: monthLabels,
			index:  func(t time.Time) int { return int(t.In(loc).Month()) - 1 },
		}, true
	}
	return series{}, false
}
