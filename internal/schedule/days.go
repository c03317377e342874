package schedule

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/manav03panchal/tabguard/internal/errors"
)

// Named weekday sets accepted by ParseDays.
var daySets = map[string][]int{
	"weekdays": {1, 2, 3, 4, 5},
	"weekend":  {0, 6},
	"weekends": {0, 6},
	"all":      {0, 1, 2, 3, 4, 5, 6},
	"everyday": {0, 1, 2, 3, 4, 5, 6},
	"none":     {},
}

// ParseWeekday accepts 0-6 (0 = Sunday) or a day name or abbreviation.
func ParseWeekday(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, weekdayError(s)
		}
		return n, nil
	}
	for i, name := range DayNames {
		full := strings.ToLower(name)
		if len(s) >= 2 && strings.HasPrefix(full, s) {
			return i, nil
		}
	}
	return 0, weekdayError(s)
}

// ParseDays turns a named set ("weekdays", "weekend", "all", "none") or a
// list of days separated by commas or spaces into a sorted weekday set.
func ParseDays(args ...string) ([]int, error) {
	joined := strings.ToLower(strings.Join(args, ","))
	if set, ok := daySets[strings.TrimSpace(joined)]; ok {
		return slices.Clone(set), nil
	}

	fields := strings.FieldsFunc(joined, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, weekdayError(strings.Join(args, " "))
	}
	days := make([]int, 0, len(fields))
	for _, f := range fields {
		d, err := ParseWeekday(f)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	days = lo.Uniq(days)
	slices.Sort(days)
	return days, nil
}

func weekdayError(value string) error {
	return &errors.UserError{
		Message:    fmt.Sprintf("Unknown weekday %q", value),
		Field:      "weekday",
		Value:      value,
		Suggestion: errors.Suggestions[errors.ErrInvalidWeekday],
		Cause:      errors.ErrInvalidWeekday,
	}
}
