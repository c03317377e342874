package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	ErrDomainRejected:    "Use a bare domain like 'example.com'.",
	ErrDomainNotBlocked:  "Use 'tabguard domains list' to see blocked domains.",
	ErrInvalidWeekday:    "Weekdays are 0-6 (0 = Sunday) or names like 'mon', 'tue'.",
	ErrInvalidClock:      "Use 24-hour HH:MM, e.g. '09:00' or '17:30'.",
	ErrInvalidTimestamp:  "Try formats like 'wednesday 9am', 'tomorrow at 17:00', or 'now'.",
	ErrInvalidURL:        "Provide an absolute URL such as https://example.com/page.",
	ErrUnknownCommand:    "The only supported command is 'emergency_redirect'.",
	ErrSettingsCorrupted: "Run 'tabguard reset' to restore the default settings.",
	ErrStoreUnavailable:  "Check permissions on the data directory (~/.local/share/tabguard/).",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// A UserError carries the most specific hint
	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}
