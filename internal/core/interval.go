package core

import "time"

const (
	IntervalDay       Interval = "day"
	IntervalYesterday Interval = "yesterday"
	IntervalWeek      Interval = "week"
	IntervalMonth     Interval = "month"
	IntervalYear      Interval = "year"
)

// Interval is a symbolic report period resolved against "now".
type Interval string

// ParseInterval validates a period token.
func ParseInterval(s string) (Interval, error) {
	switch iv := Interval(s); iv {
	case IntervalDay, IntervalYesterday, IntervalWeek, IntervalMonth, IntervalYear:
		return iv, nil
	default:
		return "", ErrUnknownInterval
	}
}

// Resolve maps the interval to an inclusive [start, end] range in now's
// location. Except for "yesterday" the range always ends at now:
//
//	day:       [midnight today, now]
//	yesterday: [midnight yesterday, last microsecond of yesterday]
//	week:      [midnight on this ISO week's Monday, now]
//	month:     [midnight on the 1st of this month, now]
//	year:      [midnight on Jan 1 of this year, now]
func (iv Interval) Resolve(now time.Time) (start, end time.Time, err error) {
	loc := now.Location()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch iv {
	case IntervalDay:
		return midnight, now, nil
	case IntervalYesterday:
		start = midnight.AddDate(0, 0, -1)
		return start, midnight.Add(-time.Microsecond), nil
	case IntervalWeek:
		// time.Weekday counts Sunday as 0; ISO weeks start on Monday.
		offset := (int(now.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -offset), now, nil
	case IntervalMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), now, nil
	case IntervalYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc), now, nil
	default:
		return time.Time{}, time.Time{}, ErrUnknownInterval
	}
}
