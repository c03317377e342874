package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/manav03panchal/tabguard/internal/model"
	"github.com/manav03panchal/tabguard/internal/output"
	"github.com/manav03panchal/tabguard/internal/schedule"
)

// StatusComponent displays the current protection state.
type StatusComponent struct {
	Status output.StatusView
	Width  int
}

// NewStatusComponent creates a new status component.
func NewStatusComponent(v output.StatusView, width int) *StatusComponent {
	return &StatusComponent{Status: v, Width: width}
}

// View renders the status component.
func (sc *StatusComponent) View() string {
	v := sc.Status
	label := v.StateLabel()

	var content strings.Builder
	content.WriteString(StateStyle(label).Render("● " + strings.ToUpper(label)))
	content.WriteString("\n\n")

	if !v.Enabled {
		content.WriteString(StyleSubtitle.Render("Blocking is turned off. Press 'e' to turn it on."))
		return StyleStatusBox.Width(boxWidth(sc.Width)).Render(content.String())
	}

	for i, line := range v.Preview {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(line)
	}
	content.WriteString("\n\n")
	content.WriteString(StyleSubtitle.Render(fmt.Sprintf("Redirecting to %s", v.RedirectURL)))

	box := StyleStatusBox
	if v.Protected {
		box = StyleActiveStatusBox
	}
	return box.Width(boxWidth(sc.Width)).Render(content.String())
}

// ScheduleComponent displays the week strip and today's progress through the
// working-hours window.
type ScheduleComponent struct {
	Hours model.WorkingHours
	Week  []output.WeekDay
	Now   time.Time
	Width int
}

// NewScheduleComponent creates a new schedule component.
func NewScheduleComponent(s *model.Settings, now time.Time, width int) *ScheduleComponent {
	return &ScheduleComponent{
		Hours: s.WorkingHours,
		Week:  output.NewWeek(s, now),
		Now:   now,
		Width: width,
	}
}

// View renders the schedule component.
func (sc *ScheduleComponent) View() string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render("Working Hours"))
	content.WriteString("\n")

	if !sc.Hours.Enabled {
		content.WriteString(StyleMuted.Render("Off: protection runs 24/7"))
		content.WriteString("\n\n")
	}

	days := make([]string, len(sc.Week))
	for i, d := range sc.Week {
		style := StyleMuted
		if d.Selected {
			style = StyleDay
		}
		if d.Today {
			style = style.Inherit(StyleToday)
		}
		days[i] = style.Render(d.Abbrev)
	}
	content.WriteString(strings.Join(days, " "))
	content.WriteString("\n")
	content.WriteString(StyleClock.Render(schedule.FormatTimeRange(sc.Hours.Start, sc.Hours.End)))

	if sc.Hours.Enabled && sc.Hours.HasWeekday(int(sc.Now.Weekday())) {
		barWidth := sc.Width - 16
		if barWidth < 10 {
			barWidth = 10
		}
		pct := WindowProgress(sc.Hours, sc.Now)
		content.WriteString("\n\n")
		content.WriteString(ProgressBar(pct, barWidth))
		content.WriteString(StyleSubtitle.Render(fmt.Sprintf(" %3.0f%%", pct)))
	}

	return StyleScheduleBox.Width(boxWidth(sc.Width)).Render(content.String())
}

// WindowProgress returns how far now is through today's window, from 0 to
// 100. Days outside the window and empty windows report 0.
func WindowProgress(wh model.WorkingHours, now time.Time) float64 {
	if !wh.HasWeekday(int(now.Weekday())) {
		return 0
	}
	start := schedule.ParseClock(wh.Start, schedule.DefaultStartMinutes)
	end := schedule.ParseClock(wh.End, schedule.DefaultEndMinutes)
	if end <= start {
		return 0
	}
	current := schedule.MinutesOfDay(now)
	switch {
	case current <= start:
		return 0
	case current >= end:
		return 100
	}
	return float64(current-start) * 100 / float64(end-start)
}

// DomainsComponent displays the block-list.
type DomainsComponent struct {
	Domains []string
	Width   int
	Limit   int
}

// NewDomainsComponent creates a new domains component.
func NewDomainsComponent(domains []string, width, limit int) *DomainsComponent {
	return &DomainsComponent{
		Domains: domains,
		Width:   width,
		Limit:   limit,
	}
}

// View renders the domains component.
func (dc *DomainsComponent) View() string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render(fmt.Sprintf("Blocked Domains (%d)", len(dc.Domains))))
	content.WriteString("\n")

	if len(dc.Domains) == 0 {
		content.WriteString(StyleMuted.Render("No blocked domains"))
	} else {
		shown := dc.Domains
		if dc.Limit > 0 && len(shown) > dc.Limit {
			shown = shown[:dc.Limit]
		}
		for i, d := range shown {
			if i > 0 {
				content.WriteString("\n")
			}
			content.WriteString(StyleDomain.Render(d))
		}
		if rest := len(dc.Domains) - len(shown); rest > 0 {
			content.WriteString("\n")
			content.WriteString(StyleMuted.Render(fmt.Sprintf("and %d more", rest)))
		}
	}

	return StyleDomainsBox.Width(boxWidth(dc.Width)).Render(content.String())
}

// HelpBar renders the help bar at the bottom.
func HelpBar() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"e", "toggle blocking"},
		{"h", "toggle hours"},
		{"0-6", "toggle day"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}

func boxWidth(width int) int {
	if width < 24 {
		return 20
	}
	return width - 4
}
