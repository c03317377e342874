package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/tabguard/internal/errors"
	"github.com/manav03panchal/tabguard/internal/model"
)

// 2024-01-03 is a Wednesday.
func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.January, day, hour, minute, 0, 0, time.UTC)
}

func officeHours() model.WorkingHours {
	return model.WorkingHours{
		Enabled:  true,
		Start:    "09:00",
		End:      "17:00",
		Weekdays: []int{1, 2, 3, 4, 5},
	}
}

// =============================================================================
// InWorkingHours Tests
// =============================================================================

func TestInWorkingHours(t *testing.T) {
	wh := officeHours()

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"wednesday_0859", at(3, 8, 59), false},
		{"wednesday_0900", at(3, 9, 0), true},
		{"wednesday_1200", at(3, 12, 0), true},
		{"wednesday_1700", at(3, 17, 0), true},
		{"wednesday_1701", at(3, 17, 1), false},
		{"saturday_1000", at(6, 10, 0), false},
		{"sunday_1000", at(7, 10, 0), false},
		{"monday_1700_59s", at(1, 17, 0).Add(59 * time.Second), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InWorkingHours(wh, tt.now))
		})
	}
}

func TestInWorkingHoursDisabledAlwaysTrue(t *testing.T) {
	wh := officeHours()
	wh.Enabled = false
	wh.Weekdays = nil

	for h := 0; h < 24; h++ {
		for d := 1; d <= 7; d++ {
			assert.True(t, InWorkingHours(wh, at(d, h, 30)))
		}
	}
}

func TestInWorkingHoursNoWraparound(t *testing.T) {
	wh := officeHours()
	wh.Start = "22:00"
	wh.End = "06:00"

	assert.False(t, InWorkingHours(wh, at(3, 23, 0)))
	assert.False(t, InWorkingHours(wh, at(3, 3, 0)))
	assert.False(t, InWorkingHours(wh, at(3, 12, 0)))
}

func TestInWorkingHoursMalformedTimesFallBack(t *testing.T) {
	wh := officeHours()
	wh.Start = ""
	wh.End = "garbage"

	assert.False(t, InWorkingHours(wh, at(3, 8, 59)))
	assert.True(t, InWorkingHours(wh, at(3, 9, 0)))
	assert.True(t, InWorkingHours(wh, at(3, 17, 0)))
	assert.False(t, InWorkingHours(wh, at(3, 17, 1)))
}

func TestInWorkingHoursUsesLocationOfNow(t *testing.T) {
	wh := officeHours()
	tz := time.FixedZone("UTC+10", 10*60*60)

	// 23:00 UTC Tuesday is 09:00 Wednesday in UTC+10.
	now := time.Date(2024, time.January, 2, 23, 0, 0, 0, time.UTC).In(tz)
	assert.True(t, InWorkingHours(wh, now))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"09:00", 540},
		{"17:30", 1050},
		{"00:00", 0},
		{"23:59", 1439},
		{"9", 540},
		{"", DefaultStartMinutes},
		{"xx:15", 9*60 + 15},
		{"10:xx", 600},
		{"25:00", DefaultStartMinutes},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseClock(tt.in, DefaultStartMinutes))
		})
	}
}

// =============================================================================
// Describe Tests
// =============================================================================

func TestDescribeDays(t *testing.T) {
	tests := []struct {
		name string
		days []int
		want string
	}{
		{"every_day", []int{0, 1, 2, 3, 4, 5, 6}, "every day"},
		{"every_day_unsorted", []int{6, 5, 4, 3, 2, 1, 0}, "every day"},
		{"weekdays", []int{1, 2, 3, 4, 5}, "weekdays"},
		{"weekdays_unsorted", []int{5, 3, 1, 4, 2}, "weekdays"},
		{"weekends", []int{0, 6}, "weekends"},
		{"weekdays_and_saturday", []int{1, 2, 3, 4, 5, 6}, "weekdays and Saturday"},
		{"weekdays_and_sunday", []int{0, 1, 2, 3, 4, 5}, "weekdays and Sunday"},
		{"single", []int{3}, "Wednesday"},
		{"pair", []int{5, 1}, "Monday and Friday"},
		{"three", []int{5, 3, 1}, "Monday, Wednesday and Friday"},
		{"four_missing_weekday", []int{0, 1, 2, 6}, "Sunday, Monday, Tuesday and Saturday"},
		{"duplicates_ignored", []int{0, 6, 6}, "weekends"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DescribeDays(tt.days))
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"00:00", "12:00 AM"},
		{"00:30", "12:30 AM"},
		{"09:00", "9:00 AM"},
		{"11:59", "11:59 AM"},
		{"12:00", "12:00 PM"},
		{"13:05", "1:05 PM"},
		{"23:45", "11:45 PM"},
		{"bogus", "bogus"},
		{"ab:00", "ab:00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClock(tt.in))
		})
	}
}

func TestFormatTimeRange(t *testing.T) {
	assert.Equal(t, "9:00 AM - 5:00 PM", FormatTimeRange("09:00", "17:00"))
}

func TestTodayStatus(t *testing.T) {
	assert.Equal(t, "Today (Wed) is protected", TodayStatus([]int{1, 2, 3, 4, 5}, 3))
	assert.Equal(t, "Today (Sat) is not protected", TodayStatus([]int{1, 2, 3, 4, 5}, 6))
}

func TestDescribe(t *testing.T) {
	d := Describe([]int{1, 2, 3, 4, 5}, "09:00", "17:00", 0)

	assert.Equal(t, "weekdays", d.Days)
	assert.Equal(t, "9:00 AM - 5:00 PM", d.TimeRange)
	assert.Equal(t, "Today (Sun) is not protected", d.Today)
	assert.False(t, d.Protected)
	assert.Equal(t, []string{"weekdays", "9:00 AM - 5:00 PM", "Today (Sun) is not protected"}, d.Lines())
}

func TestPreview(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		wh := officeHours()
		wh.Enabled = false
		assert.Equal(t, []string{"Protection runs 24/7 (working hours disabled)"}, Preview(wh, 3))
	})

	t.Run("no_days", func(t *testing.T) {
		wh := officeHours()
		wh.Weekdays = []int{}
		assert.Equal(t, []string{"No work days selected - protection inactive"}, Preview(wh, 3))
	})

	t.Run("active", func(t *testing.T) {
		assert.Equal(t, []string{
			"Active on weekdays, 9:00 AM - 5:00 PM",
			"Today (Wed) is protected",
		}, Preview(officeHours(), 3))
	})
}

// =============================================================================
// Week Tests
// =============================================================================

func TestWeekDates(t *testing.T) {
	t.Run("monday_first", func(t *testing.T) {
		week := WeekDates(at(3, 15, 4), 1)
		require.Len(t, week, 7)
		assert.Equal(t, at(1, 0, 0), week[0])
		assert.Equal(t, time.Monday, week[0].Weekday())
		assert.Equal(t, at(7, 0, 0), week[6])
	})

	t.Run("monday_first_on_sunday", func(t *testing.T) {
		week := WeekDates(at(7, 10, 0), 1)
		assert.Equal(t, at(1, 0, 0), week[0])
		assert.Equal(t, at(7, 0, 0), week[6])
	})

	t.Run("sunday_first", func(t *testing.T) {
		week := WeekDates(at(3, 10, 0), 0)
		assert.Equal(t, time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC), week[0])
		assert.Equal(t, time.Sunday, week[0].Weekday())
		assert.Equal(t, at(6, 0, 0), week[6])
	})
}

func TestIsDayInPast(t *testing.T) {
	today := at(3, 12, 0)
	assert.True(t, IsDayInPast(at(2, 23, 59), today))
	assert.False(t, IsDayInPast(at(3, 0, 0), today))
	assert.False(t, IsDayInPast(at(4, 0, 0), today))
}

// =============================================================================
// Day Parsing Tests
// =============================================================================

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"6", 6},
		{"sun", 0},
		{"Mon", 1},
		{"tues", 2},
		{"wednesday", 3},
		{"th", 4},
		{" fri ", 5},
		{"SATURDAY", 6},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"7", "-1", "s", "t", "funday", ""} {
		t.Run("invalid_"+bad, func(t *testing.T) {
			_, err := ParseWeekday(bad)
			assert.ErrorIs(t, err, errors.ErrInvalidWeekday)
		})
	}
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []int
	}{
		{"weekdays", []string{"weekdays"}, []int{1, 2, 3, 4, 5}},
		{"weekend", []string{"Weekend"}, []int{0, 6}},
		{"all", []string{"all"}, []int{0, 1, 2, 3, 4, 5, 6}},
		{"none", []string{"none"}, []int{}},
		{"comma_list", []string{"mon,wed,fri"}, []int{1, 3, 5}},
		{"arg_list", []string{"fri", "1", "mon"}, []int{1, 5}},
		{"mixed", []string{"sat, 0"}, []int{0, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDays(tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseDays("mon", "someday")
		assert.True(t, errors.IsUserError(err))
	})

	t.Run("empty", func(t *testing.T) {
		_, err := ParseDays()
		assert.Error(t, err)
	})

	t.Run("named_set_is_copied", func(t *testing.T) {
		got, err := ParseDays("weekdays")
		require.NoError(t, err)
		got[0] = 9
		again, _ := ParseDays("weekdays")
		assert.Equal(t, 1, again[0])
	})
}
