package schedule

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/manav03panchal/tabguard/internal/model"
)

// DayNames are the full weekday names, indexed from Sunday.
var DayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayAbbrevs are the 3-letter weekday names, indexed from Sunday.
var DayAbbrevs = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var workWeek = []int{1, 2, 3, 4, 5}

// Description is the three-line summary of a schedule.
type Description struct {
	Days      string `json:"days"`
	TimeRange string `json:"time_range"`
	Today     string `json:"today"`
	Protected bool   `json:"today_protected"`
}

// Lines returns the display lines in order.
func (d Description) Lines() []string {
	return []string{d.Days, d.TimeRange, d.Today}
}

// Describe summarizes a weekday set, a daily time range and whether today is
// one of the selected days.
func Describe(days []int, start, end string, today int) Description {
	set := normalizeDays(days)
	return Description{
		Days:      DescribeDays(set),
		TimeRange: FormatTimeRange(start, end),
		Today:     TodayStatus(set, today),
		Protected: lo.Contains(set, today),
	}
}

// DescribeDays turns a weekday set into a phrase such as "weekdays",
// "weekends" or "Monday, Wednesday and Friday".
func DescribeDays(days []int) string {
	set := normalizeDays(days)
	hasSaturday := lo.Contains(set, 6)
	hasSunday := lo.Contains(set, 0)
	hasWorkWeek := lo.Every(set, workWeek)

	switch {
	case len(set) == 7:
		return "every day"
	case hasWorkWeek && hasSaturday && hasSunday:
		return "weekdays, Saturday and Sunday"
	case hasWorkWeek && hasSaturday:
		return "weekdays and Saturday"
	case hasWorkWeek && hasSunday:
		return "weekdays and Sunday"
	case hasWorkWeek && len(set) == 5:
		return "weekdays"
	case len(set) == 2 && hasSaturday && hasSunday:
		return "weekends"
	}

	names := lo.Map(set, func(d int, _ int) string { return DayNames[d] })
	return joinNames(names)
}

// joinNames joins with ", " and a final " and ".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

// FormatClock renders "HH:MM" in 12-hour form, e.g. "13:05" as "1:05 PM".
// Input that is not HH:MM is returned unchanged.
func FormatClock(s string) string {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return s
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return s
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%s %s", display, mm, ampm)
}

// FormatTimeRange renders "<start> - <end>" in 12-hour form.
func FormatTimeRange(start, end string) string {
	return FormatClock(start) + " - " + FormatClock(end)
}

// DayAbbrev returns the 3-letter name of day, or "" when out of range.
func DayAbbrev(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return DayAbbrevs[day]
}

// TodayStatus says whether today is one of the selected days.
func TodayStatus(days []int, today int) string {
	if lo.Contains(days, today) {
		return fmt.Sprintf("Today (%s) is protected", DayAbbrev(today))
	}
	return fmt.Sprintf("Today (%s) is not protected", DayAbbrev(today))
}

// Preview is the short status shown next to the working-hours controls.
func Preview(wh model.WorkingHours, today int) []string {
	if !wh.Enabled {
		return []string{"Protection runs 24/7 (working hours disabled)"}
	}
	if len(normalizeDays(wh.Weekdays)) == 0 {
		return []string{"No work days selected - protection inactive"}
	}
	d := Describe(wh.Weekdays, wh.Start, wh.End, today)
	return []string{
		fmt.Sprintf("Active on %s, %s", d.Days, d.TimeRange),
		d.Today,
	}
}

// normalizeDays returns the sorted, de-duplicated days within 0..6.
func normalizeDays(days []int) []int {
	set := lo.Uniq(lo.Filter(days, func(d int, _ int) bool { return d >= 0 && d <= 6 }))
	slices.Sort(set)
	return set
}
