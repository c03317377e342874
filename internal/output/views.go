package output

import (
	"time"

	"github.com/manav03panchal/tabguard/internal/model"
	"github.com/manav03panchal/tabguard/internal/redirect"
	"github.com/manav03panchal/tabguard/internal/schedule"
	"github.com/manav03panchal/tabguard/internal/scheduler"
)

// StatusView is everything the status screens show.
type StatusView struct {
	At             time.Time
	Enabled        bool
	Protected      bool
	HoursEnabled   bool
	Preview        []string
	Schedule       schedule.Description
	BlockedDomains []string
	RedirectURL    string
}

// NewStatusView evaluates s at now.
func NewStatusView(s *model.Settings, now time.Time) StatusView {
	today := int(now.Weekday())
	wh := s.WorkingHours
	return StatusView{
		At:             now,
		Enabled:        s.Enabled,
		Protected:      scheduler.Protected(s, now),
		HoursEnabled:   wh.Enabled,
		Preview:        schedule.Preview(wh, today),
		Schedule:       schedule.Describe(wh.Weekdays, wh.Start, wh.End, today),
		BlockedDomains: s.BlockedDomains,
		RedirectURL:    redirect.Target(s),
	}
}

// StateLabel is the one-word protection state.
func (v StatusView) StateLabel() string {
	switch {
	case !v.Enabled:
		return "disabled"
	case v.Protected:
		return "active"
	default:
		return "paused"
	}
}

// WeekDay is one cell of the week strip.
type WeekDay struct {
	Date     time.Time
	Abbrev   string
	Selected bool
	Today    bool
	Past     bool
}

// NewWeek builds the week strip containing now.
func NewWeek(s *model.Settings, now time.Time) []WeekDay {
	dates := schedule.WeekDates(now, s.FirstDayOfWeek)
	week := make([]WeekDay, len(dates))
	for i, d := range dates {
		wd := int(d.Weekday())
		week[i] = WeekDay{
			Date:     d,
			Abbrev:   schedule.DayAbbrev(wd),
			Selected: s.WorkingHours.HasWeekday(wd),
			Today:    schedule.StartOfDay(d).Equal(schedule.StartOfDay(now)),
			Past:     schedule.IsDayInPast(d, now),
		}
	}
	return week
}
