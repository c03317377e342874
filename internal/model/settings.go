package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/manav03panchal/tabguard/internal/errors"
)

// Defaults for a fresh install.
const (
	DefaultStart          = "09:00"
	DefaultEnd            = "17:00"
	DefaultRedirectURL    = "https://calendar.google.com"
	DefaultSiteURL        = "https://oopswrongtab.net/"
	DefaultFirstDayOfWeek = 1
)

// DefaultBlockedDomains are the example entries seeded on install.
var DefaultBlockedDomains = []string{
	"facebook.com",
	"instagram.com",
	"twitter.com",
	"youtube.com",
	"reddit.com",
}

// DefaultWeekdays is Monday through Friday.
var DefaultWeekdays = []int{1, 2, 3, 4, 5}

// clockRegex matches a 24-hour HH:MM time of day.
var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// WorkingHours restricts redirection to a daily window on selected weekdays.
type WorkingHours struct {
	Enabled  bool   `json:"enabled"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Weekdays []int  `json:"weekdays"` // 0 = Sunday
}

// HasWeekday reports whether day is selected.
func (w WorkingHours) HasWeekday(day int) bool {
	return lo.Contains(w.Weekdays, day)
}

// Settings is the single settings record.
type Settings struct {
	Key            string       `json:"-"`
	Enabled        bool         `json:"enabled"`
	WorkingHours   WorkingHours `json:"workingHours"`
	BlockedDomains []string     `json:"blockedDomains"`
	RedirectURL    string       `json:"redirectUrl"`
	SiteURL        string       `json:"siteUrl"`
	FirstDayOfWeek int          `json:"firstDayOfWeek"`
}

// SetKey sets the database key for the settings record.
func (s *Settings) SetKey(key string) {
	s.Key = key
}

// GetKey returns the database key for the settings record.
func (s *Settings) GetKey() string {
	return s.Key
}

// DefaultSettings returns a fresh copy of the built-in defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Key:     KeySettings,
		Enabled: true,
		WorkingHours: WorkingHours{
			Enabled:  false,
			Start:    DefaultStart,
			End:      DefaultEnd,
			Weekdays: slices.Clone(DefaultWeekdays),
		},
		BlockedDomains: slices.Clone(DefaultBlockedDomains),
		RedirectURL:    DefaultRedirectURL,
		SiteURL:        DefaultSiteURL,
		FirstDayOfWeek: DefaultFirstDayOfWeek,
	}
}

// MergeSettings decodes a persisted record over the defaults. Fields absent
// from data keep their default value, including fields of workingHours.
func MergeSettings(data []byte) (*Settings, error) {
	s := DefaultSettings()
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, &errors.ValidationError{
			Message: "cannot decode settings",
			Cause:   fmt.Errorf("%w: %v", errors.ErrSettingsCorrupted, err),
		}
	}
	s.Key = KeySettings
	if s.BlockedDomains == nil {
		s.BlockedDomains = []string{}
	}
	if s.WorkingHours.Weekdays == nil {
		s.WorkingHours.Weekdays = []int{}
	}
	return s, nil
}

// Clone returns a deep copy.
func (s *Settings) Clone() *Settings {
	c := *s
	c.BlockedDomains = slices.Clone(s.BlockedDomains)
	c.WorkingHours.Weekdays = slices.Clone(s.WorkingHours.Weekdays)
	return &c
}

// Validate checks the record invariants.
func (s *Settings) Validate() error {
	for _, d := range s.WorkingHours.Weekdays {
		if d < 0 || d > 6 {
			return errors.NewValidationError("workingHours.weekdays",
				fmt.Sprintf("weekday %d out of range 0-6", d))
		}
	}
	if len(lo.Uniq(s.WorkingHours.Weekdays)) != len(s.WorkingHours.Weekdays) {
		return errors.NewValidationError("workingHours.weekdays", "duplicate weekday")
	}
	if !IsClock(s.WorkingHours.Start) {
		return errors.NewValidationError("workingHours.start",
			fmt.Sprintf("%q is not a 24-hour HH:MM time", s.WorkingHours.Start))
	}
	if !IsClock(s.WorkingHours.End) {
		return errors.NewValidationError("workingHours.end",
			fmt.Sprintf("%q is not a 24-hour HH:MM time", s.WorkingHours.End))
	}
	if s.FirstDayOfWeek != 0 && s.FirstDayOfWeek != 1 {
		return errors.NewValidationError("firstDayOfWeek", "must be 0 (Sunday) or 1 (Monday)")
	}
	seen := make(map[string]struct{}, len(s.BlockedDomains))
	for _, d := range s.BlockedDomains {
		if d == "" || d != strings.ToLower(d) {
			return errors.NewValidationError("blockedDomains",
				fmt.Sprintf("%q must be a non-empty lowercase domain", d))
		}
		if strings.HasPrefix(d, "http://") || strings.HasPrefix(d, "https://") ||
			strings.HasPrefix(d, "www.") || strings.HasSuffix(d, "/") {
			return errors.NewValidationError("blockedDomains",
				fmt.Sprintf("%q must not carry a protocol, www. or trailing slash", d))
		}
		if _, dup := seen[d]; dup {
			return errors.NewValidationError("blockedDomains", fmt.Sprintf("duplicate domain %q", d))
		}
		seen[d] = struct{}{}
	}
	return nil
}

// IsClock reports whether s is a well-formed 24-hour HH:MM time.
func IsClock(s string) bool {
	return clockRegex.MatchString(s)
}

// IsBlocked reports whether domain is on the block-list, ignoring case.
func (s *Settings) IsBlocked(domain string) bool {
	domain = strings.ToLower(domain)
	return lo.ContainsBy(s.BlockedDomains, func(d string) bool {
		return strings.ToLower(d) == domain
	})
}

// AddDomain appends a normalized domain. Returns false if already present.
func (s *Settings) AddDomain(domain string) bool {
	if s.IsBlocked(domain) {
		return false
	}
	s.BlockedDomains = append(s.BlockedDomains, strings.ToLower(domain))
	return true
}

// RemoveDomain drops domain from the block-list. Returns false if absent.
func (s *Settings) RemoveDomain(domain string) bool {
	if !lo.Contains(s.BlockedDomains, domain) {
		return false
	}
	s.BlockedDomains = lo.Without(s.BlockedDomains, domain)
	return true
}

// SetEnabled flips the master switch. Turning protection off also turns the
// working-hours restriction off.
func (s *Settings) SetEnabled(enabled bool) {
	s.Enabled = enabled
	if !enabled {
		s.WorkingHours.Enabled = false
	}
}

// SetWorkingHoursEnabled flips the working-hours restriction.
func (s *Settings) SetWorkingHoursEnabled(enabled bool) {
	s.WorkingHours.Enabled = enabled
}

// SetTimes sets the daily window. Both values must be HH:MM.
func (s *Settings) SetTimes(start, end string) error {
	for _, v := range []string{start, end} {
		if !IsClock(v) {
			return &errors.UserError{
				Message:    "Invalid time of day",
				Field:      "time",
				Value:      v,
				Suggestion: errors.Suggestions[errors.ErrInvalidClock],
				Cause:      errors.ErrInvalidClock,
			}
		}
	}
	s.WorkingHours.Start = start
	s.WorkingHours.End = end
	return nil
}

// SetWeekdays replaces the selected weekdays.
func (s *Settings) SetWeekdays(days []int) error {
	for _, d := range days {
		if d < 0 || d > 6 {
			return invalidWeekday(d)
		}
	}
	days = lo.Uniq(days)
	slices.Sort(days)
	s.WorkingHours.Weekdays = days
	return nil
}

// ToggleWeekday selects day if it is not selected, and deselects it otherwise.
func (s *Settings) ToggleWeekday(day int) error {
	if day < 0 || day > 6 {
		return invalidWeekday(day)
	}
	if s.WorkingHours.HasWeekday(day) {
		s.WorkingHours.Weekdays = lo.Without(s.WorkingHours.Weekdays, day)
		return nil
	}
	s.WorkingHours.Weekdays = append(s.WorkingHours.Weekdays, day)
	return nil
}

func invalidWeekday(day int) error {
	return &errors.UserError{
		Message:    "Invalid weekday",
		Field:      "weekday",
		Value:      fmt.Sprint(day),
		Suggestion: errors.Suggestions[errors.ErrInvalidWeekday],
		Cause:      errors.ErrInvalidWeekday,
	}
}
