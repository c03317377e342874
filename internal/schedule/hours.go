// Package schedule evaluates and describes the working-hours window.
package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/manav03panchal/tabguard/internal/model"
)

// Fallback window bounds, in minutes of the day.
const (
	DefaultStartMinutes = 9 * 60
	DefaultEndMinutes   = 17 * 60
)

// InWorkingHours reports whether now falls inside the window. A disabled
// window never restricts, so it always returns true. Both bounds are
// inclusive and the window does not wrap past midnight: start > end selects
// no time at all.
func InWorkingHours(wh model.WorkingHours, now time.Time) bool {
	if !wh.Enabled {
		return true
	}
	if !wh.HasWeekday(int(now.Weekday())) {
		return false
	}
	current := MinutesOfDay(now)
	start := ParseClock(wh.Start, DefaultStartMinutes)
	end := ParseClock(wh.End, DefaultEndMinutes)
	return start <= current && current <= end
}

// MinutesOfDay returns hour*60+minute of t in its own location.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ParseClock converts "HH:MM" to minutes of the day. A missing or malformed
// hour or minute component takes that component from fallback.
func ParseClock(s string, fallback int) int {
	hour, minute := fallback/60, fallback%60

	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if h, err := strconv.Atoi(parts[0]); err == nil && h >= 0 && h <= 23 {
		hour = h
	}
	if len(parts) == 2 {
		if m, err := strconv.Atoi(parts[1]); err == nil && m >= 0 && m <= 59 {
			minute = m
		}
	}
	return hour*60 + minute
}
