// Package parser turns human input into the instants and clock times the
// rest of tabguard works with.
package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// TimestampResult holds the parsed timestamp and any error.
type TimestampResult struct {
	Time  time.Time
	Error error
}

// clockRegex matches an already canonical HH:MM value.
var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// shortClockRegex matches H:MM, which is canonical apart from the padding.
var shortClockRegex = regexp.MustCompile(`^([0-9]):([0-5][0-9])$`)

// ParseTimestamp parses a natural language instant relative to now.
func ParseTimestamp(input string, now time.Time) TimestampResult {
	input = strings.TrimSpace(input)
	if input == "" || strings.ToLower(input) == "now" {
		return TimestampResult{Time: now}
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return TimestampResult{Error: err}
	}
	if result.Time.IsZero() {
		return TimestampResult{Error: fmt.Errorf("no time found in %q", input)}
	}

	return TimestampResult{Time: result.Time}
}

// ParseInstant is ParseTimestamp with a typed error for command handlers.
func ParseInstant(input string, now time.Time) (time.Time, error) {
	result := ParseTimestamp(input, now)
	if result.Error != nil {
		return time.Time{}, NewTimestampError(input).ToUserError()
	}
	return result.Time, nil
}

// NormalizeClock turns a clock expression such as "9am", "5:30 pm" or "9:00"
// into the HH:MM form stored in settings.
func NormalizeClock(input string) (string, error) {
	input = strings.TrimSpace(input)
	if clockRegex.MatchString(input) {
		return input, nil
	}
	if m := shortClockRegex.FindStringSubmatch(input); m != nil {
		return "0" + m[1] + ":" + m[2], nil
	}
	if input == "" {
		return "", NewClockError(input).ToUserError()
	}

	ref := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	cfg := &dateparser.Configuration{
		CurrentTime: ref,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return "", NewClockError(input).ToUserError()
	}
	return result.Time.Format("15:04"), nil
}
