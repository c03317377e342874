package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/tabguard/internal/errors"
)

// TimeParseError represents a time parsing error with helpful suggestions.
type TimeParseError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
	Cause      error
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

func (e *TimeParseError) Unwrap() error {
	return e.Cause
}

// TimestampExamples provides example instant formats.
var TimestampExamples = []string{
	"now",
	"9am",
	"friday 5pm",
	"tomorrow at 8:30",
	"2 hours ago",
	"2024-01-03 14:00",
}

// ClockExamples provides example clock formats for working hours.
var ClockExamples = []string{
	"09:00",
	"9am",
	"5:30pm",
	"17:00",
}

// NewTimestampError creates a timestamp parse error with standard examples.
func NewTimestampError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "time",
		Message:    "could not parse time",
		Examples:   TimestampExamples,
		Suggestion: "Try natural language like 'friday 5pm' or an exact '2024-01-03 14:00'.",
		Cause:      errors.ErrInvalidTimestamp,
	}
}

// NewClockError creates a clock parse error with standard examples.
func NewClockError(input string) *TimeParseError {
	return &TimeParseError{
		Input:      input,
		Field:      "clock",
		Message:    "could not parse clock time",
		Examples:   ClockExamples,
		Suggestion: "Use 24-hour HH:MM like '09:00', or '9am'.",
		Cause:      errors.ErrInvalidClock,
	}
}

// ToUserError converts a TimeParseError to a UserError for consistent handling.
func (e *TimeParseError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if len(e.Examples) > 0 && suggestion == "" {
		suggestion = fmt.Sprintf("Try: %s", strings.Join(e.Examples[:min(3, len(e.Examples))], ", "))
	}

	ue := errors.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion)
	ue.Cause = e.Cause
	return ue
}

// min returns the minimum of two integers.
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
