package schedule

import "time"

// WeekDates returns the seven dates of the week containing ref, at midnight,
// starting on firstDayOfWeek (0 = Sunday, 1 = Monday).
func WeekDates(ref time.Time, firstDayOfWeek int) []time.Time {
	day := int(ref.Weekday())
	var diff int
	if day < firstDayOfWeek {
		diff = -((7 - firstDayOfWeek + day) % 7)
	} else {
		diff = -(day - firstDayOfWeek)
	}

	start := StartOfDay(ref).AddDate(0, 0, diff)
	week := make([]time.Time, 7)
	for i := range week {
		week[i] = start.AddDate(0, 0, i)
	}
	return week
}

// IsDayInPast reports whether day falls on a calendar date before today.
func IsDayInPast(day, today time.Time) bool {
	return StartOfDay(day).Before(StartOfDay(today))
}

// StartOfDay returns midnight of t in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
