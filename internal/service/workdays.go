package service

import "time"

// StartOfDay truncates a timestamp to its civil day in UTC. The civil day is
// the attendance granularity key throughout the system.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same civil day.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}

// MonthRange returns the first and last civil day of the given month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// WorkingDays counts the weekdays in the given month excluding any day that
// matches, by civil date, an entry in holidays. Holidays falling on weekends
// or outside the month change nothing.
func WorkingDays(year int, month time.Month, holidays []time.Time) int {
	start, end := MonthRange(year, month)
	count := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		holiday := false
		for _, h := range holidays {
			if SameDay(day, h) {
				holiday = true
				break
			}
		}
		if holiday {
			continue
		}
		count++
	}
	return count
}
