package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/tabguard/internal/domain"
	"github.com/manav03panchal/tabguard/internal/redirect"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleDomain = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleToday = lipgloss.NewStyle().
			Bold(true).
			Underline(true)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// DomainName formats a domain.
func (c *CLIFormatter) DomainName(name string) string {
	return c.render(styleDomain, name)
}

// State formats a protection state label.
func (c *CLIFormatter) State(label string) string {
	switch label {
	case "active":
		return c.render(styleSuccess, label)
	case "paused":
		return c.render(styleWarning, label)
	default:
		return c.render(styleMuted, label)
	}
}

// PrintStatus prints the protection status.
func (c *CLIFormatter) PrintStatus(v StatusView) {
	c.Printf("Protection: %s\n", c.State(v.StateLabel()))
	if !v.Enabled {
		c.Muted("  Blocking is turned off. Use 'tabguard enable' to turn it on.")
		return
	}
	for _, line := range v.Preview {
		c.Printf("  %s\n", line)
	}
	c.Printf("  Blocking %d %s, redirecting to %s\n",
		len(v.BlockedDomains), plural(len(v.BlockedDomains), "domain", "domains"), v.RedirectURL)
}

// PrintSchedule prints the three schedule lines.
func (c *CLIFormatter) PrintSchedule(v StatusView) {
	if !v.HoursEnabled {
		c.Muted("Working hours are off; protection runs 24/7.")
		c.Println()
	}
	c.Printf("Days:  %s\n", v.Schedule.Days)
	c.Printf("Hours: %s\n", v.Schedule.TimeRange)
	c.Println(v.Schedule.Today)
}

// PrintDomains prints the block-list.
func (c *CLIFormatter) PrintDomains(domains []string) {
	if len(domains) == 0 {
		c.Muted("No blocked domains.")
		c.Muted("Use 'tabguard domains add <domain>' to block one.")
		return
	}
	c.Title(fmt.Sprintf("Blocked domains (%d)", len(domains)))
	for _, d := range domains {
		c.Printf("  %s\n", c.DomainName(d))
	}
}

// PrintValidation prints a domain validation result.
func (c *CLIFormatter) PrintValidation(r domain.Result) {
	if r.Valid {
		c.Println(c.render(styleSuccess, r.Message))
		return
	}
	c.Error(r.Message)
}

// PrintDecision prints a dry-run redirect decision for url.
func (c *CLIFormatter) PrintDecision(url string, d redirect.Decision) {
	if d.Redirected {
		c.Printf("%s %s\n", c.render(styleError, "blocked"), url)
		c.Printf("  matched %s, would redirect to %s\n", c.DomainName(d.Match), d.Target)
		return
	}
	c.Printf("%s %s\n", c.render(styleSuccess, "allowed"), url)
	c.Muted("  " + DescribeReason(d.Reason))
}

// PrintWeek prints the week strip.
func (c *CLIFormatter) PrintWeek(week []WeekDay) {
	rows := make([]TableRow, 0, len(week))
	for _, d := range week {
		day := d.Abbrev
		if d.Today {
			day = c.render(styleToday, day)
		}
		protected := "-"
		if d.Selected {
			protected = "protected"
		}
		note := ""
		switch {
		case d.Today:
			note = "today"
		case d.Past:
			note = "past"
		}
		rows = append(rows, TableRow{Columns: []string{day, FormatDate(d.Date), protected, note}})
	}
	c.PrintTable([]string{"DAY", "DATE", "STATUS", ""}, rows)
}

// DescribeReason explains why a navigation was not redirected.
func DescribeReason(r redirect.Reason) string {
	switch r {
	case redirect.ReasonSubframe:
		return "not a top-level frame"
	case redirect.ReasonDisabled:
		return "blocking is turned off"
	case redirect.ReasonPending:
		return "a redirect for this tab is already in flight"
	case redirect.ReasonOutsideHours:
		return "outside working hours"
	case redirect.ReasonInternalPage:
		return "browser-internal page"
	case redirect.ReasonRedirectTarget:
		return "this is the redirect destination"
	case redirect.ReasonUnparseable:
		return "not a valid URL"
	case redirect.ReasonNotListed:
		return "not on the block-list"
	default:
		return string(r)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Table helpers for CLI output.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && lipgloss.Width(col) > widths[i] {
				widths[i] = lipgloss.Width(col)
			}
		}
	}

	// Print headers
	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(pad(h, widths[i]) + "  ")
	}
	c.Println(c.render(styleBold, strings.TrimRight(headerLine.String(), " ")))

	// Print separator
	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	// Print rows
	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(pad(col, widths[i]) + "  ")
			}
		}
		c.Println(strings.TrimRight(rowLine.String(), " "))
	}
}

// pad right-pads s to width visible cells.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
