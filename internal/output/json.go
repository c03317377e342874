package output

import (
	"time"

	"github.com/manav03panchal/tabguard/internal/domain"
	"github.com/manav03panchal/tabguard/internal/model"
	"github.com/manav03panchal/tabguard/internal/redirect"
	"github.com/manav03panchal/tabguard/internal/schedule"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// StatusResponse represents the status output in JSON.
type StatusResponse struct {
	Status         string               `json:"status"`
	At             string               `json:"at"`
	Enabled        bool                 `json:"enabled"`
	Protected      bool                 `json:"protected"`
	WorkingHours   bool                 `json:"working_hours"`
	Preview        []string             `json:"preview"`
	Schedule       schedule.Description `json:"schedule"`
	BlockedDomains []string             `json:"blocked_domains"`
	RedirectURL    string               `json:"redirect_url"`
}

// NewStatusResponse creates a StatusResponse from a StatusView.
func NewStatusResponse(v StatusView) *StatusResponse {
	return &StatusResponse{
		Status:         v.StateLabel(),
		At:             v.At.Format(time.RFC3339),
		Enabled:        v.Enabled,
		Protected:      v.Protected,
		WorkingHours:   v.HoursEnabled,
		Preview:        v.Preview,
		Schedule:       v.Schedule,
		BlockedDomains: nonNil(v.BlockedDomains),
		RedirectURL:    v.RedirectURL,
	}
}

// SettingsResponse wraps the stored settings record.
type SettingsResponse struct {
	Status   string          `json:"status"`
	Settings *model.Settings `json:"settings"`
}

// DomainsResponse represents the block-list output in JSON.
type DomainsResponse struct {
	Domains []string `json:"domains"`
	Count   int      `json:"count"`
}

// DomainChangeResponse reports an add or remove.
type DomainChangeResponse struct {
	Status  string `json:"status"`
	Domain  string `json:"domain"`
	Changed bool   `json:"changed"`
}

// DecisionResponse represents a dry-run decision.
type DecisionResponse struct {
	URL        string `json:"url"`
	At         string `json:"at"`
	Redirected bool   `json:"redirected"`
	Reason     string `json:"reason"`
	Match      string `json:"match,omitempty"`
	Target     string `json:"target,omitempty"`
}

// WeekDayOutput is one day of the week strip.
type WeekDayOutput struct {
	Date      string `json:"date"`
	Day       string `json:"day"`
	Protected bool   `json:"protected"`
	Today     bool   `json:"today"`
	Past      bool   `json:"past"`
}

// WeekResponse represents the week strip.
type WeekResponse struct {
	Days []WeekDayOutput `json:"days"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Category   string `json:"category"`
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

// PrintStatus outputs status in JSON format.
func (j *JSONFormatter) PrintStatus(v StatusView) error {
	return j.JSON(NewStatusResponse(v))
}

// PrintSettings outputs a settings record after a change.
func (j *JSONFormatter) PrintSettings(status string, s *model.Settings) error {
	return j.JSON(SettingsResponse{Status: status, Settings: s})
}

// PrintDomains outputs the block-list in JSON format.
func (j *JSONFormatter) PrintDomains(domains []string) error {
	return j.JSON(DomainsResponse{Domains: nonNil(domains), Count: len(domains)})
}

// PrintDomainChange outputs an add or remove result.
func (j *JSONFormatter) PrintDomainChange(status, d string, changed bool) error {
	return j.JSON(DomainChangeResponse{Status: status, Domain: d, Changed: changed})
}

// PrintValidation outputs a validation result in JSON format.
func (j *JSONFormatter) PrintValidation(r domain.Result) error {
	return j.JSON(r)
}

// PrintDecision outputs a dry-run decision in JSON format.
func (j *JSONFormatter) PrintDecision(url string, at time.Time, d redirect.Decision) error {
	return j.JSON(DecisionResponse{
		URL:        url,
		At:         at.Format(time.RFC3339),
		Redirected: d.Redirected,
		Reason:     string(d.Reason),
		Match:      d.Match,
		Target:     d.Target,
	})
}

// PrintWeek outputs the week strip in JSON format.
func (j *JSONFormatter) PrintWeek(week []WeekDay) error {
	days := make([]WeekDayOutput, len(week))
	for i, d := range week {
		days[i] = WeekDayOutput{
			Date:      FormatDate(d.Date),
			Day:       d.Abbrev,
			Protected: d.Selected,
			Today:     d.Today,
			Past:      d.Past,
		}
	}
	return j.JSON(WeekResponse{Days: days})
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(category, errMsg, suggestion string) error {
	return j.JSON(ErrorResponse{
		Status:     "error",
		Category:   category,
		Error:      errMsg,
		Suggestion: suggestion,
	})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
