package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/tabguard/internal/model"
	"github.com/manav03panchal/tabguard/internal/output"
	"github.com/manav03panchal/tabguard/internal/parser"
	"github.com/manav03panchal/tabguard/internal/schedule"
)

// Hours command flags.
var (
	hoursFlagStart string
	hoursFlagEnd   string
)

// hoursCmd represents the hours command.
var hoursCmd = &cobra.Command{
	Use:     "hours",
	Aliases: []string{"schedule", "wh"},
	Short:   "Manage the working-hours window",
	Long: `Show or change when protection is active. With working hours off,
protection runs around the clock.

Examples:
  tabguard hours
  tabguard hours on
  tabguard hours set --start 9am --end 5:30pm
  tabguard hours days weekdays
  tabguard hours days mon,wed,fri
  tabguard hours days toggle sat`,
	Args: cobra.NoArgs,
	RunE: runHoursShow,
}

var hoursOnCmd = &cobra.Command{
	Use:   "on",
	Short: "Only protect during working hours",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateHours(func(s *model.Settings) error {
			s.SetWorkingHoursEnabled(true)
			return nil
		})
	},
}

var hoursOffCmd = &cobra.Command{
	Use:   "off",
	Short: "Protect around the clock",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateHours(func(s *model.Settings) error {
			s.SetWorkingHoursEnabled(false)
			return nil
		})
	},
}

var hoursSetCmd = &cobra.Command{
	Use:   "set --start TIME --end TIME",
	Short: "Set the daily window",
	Long: `Set the start and end of the daily window. Times may be 24-hour HH:MM
or written like "9am" or "5:30pm". Both bounds are inclusive.`,
	Args: cobra.NoArgs,
	RunE: runHoursSet,
}

var hoursDaysCmd = &cobra.Command{
	Use:   "days weekdays|weekend|all|none|DAY[,DAY...]",
	Short: "Choose the protected weekdays",
	Long: `Replace the protected weekdays. Days are 0-6 (0 = Sunday) or names
such as mon, tue, wednesday.`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeDays,
	RunE:              runHoursDays,
}

var hoursDaysToggleCmd = &cobra.Command{
	Use:               "toggle DAY",
	Short:             "Select or deselect one weekday",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeDays,
	RunE:              runHoursDaysToggle,
}

func init() {
	hoursSetCmd.Flags().StringVarP(&hoursFlagStart, "start", "s", "", "Start of the window")
	hoursSetCmd.Flags().StringVarP(&hoursFlagEnd, "end", "e", "", "End of the window")
	hoursSetCmd.MarkFlagsOneRequired("start", "end")

	hoursDaysCmd.AddCommand(hoursDaysToggleCmd)
	hoursCmd.AddCommand(hoursOnCmd)
	hoursCmd.AddCommand(hoursOffCmd)
	hoursCmd.AddCommand(hoursSetCmd)
	hoursCmd.AddCommand(hoursDaysCmd)
	rootCmd.AddCommand(hoursCmd)
}

func runHoursShow(cmd *cobra.Command, args []string) error {
	s, err := ctx.Settings.Get()
	if err != nil {
		return err
	}
	return printHours(s)
}

func runHoursSet(cmd *cobra.Command, args []string) error {
	return updateHours(func(s *model.Settings) error {
		start, end := s.WorkingHours.Start, s.WorkingHours.End
		var err error
		if hoursFlagStart != "" {
			if start, err = parser.NormalizeClock(hoursFlagStart); err != nil {
				return err
			}
		}
		if hoursFlagEnd != "" {
			if end, err = parser.NormalizeClock(hoursFlagEnd); err != nil {
				return err
			}
		}
		return s.SetTimes(start, end)
	})
}

func runHoursDays(cmd *cobra.Command, args []string) error {
	days, err := schedule.ParseDays(args...)
	if err != nil {
		return err
	}
	return updateHours(func(s *model.Settings) error {
		return s.SetWeekdays(days)
	})
}

func runHoursDaysToggle(cmd *cobra.Command, args []string) error {
	day, err := schedule.ParseWeekday(args[0])
	if err != nil {
		return err
	}
	return updateHours(func(s *model.Settings) error {
		return s.ToggleWeekday(day)
	})
}

// updateHours applies fn and prints the resulting schedule.
func updateHours(fn func(s *model.Settings) error) error {
	s, err := ctx.Settings.Update(fn)
	if err != nil {
		return err
	}
	return printHours(s)
}

func printHours(s *model.Settings) error {
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSettings("ok", s)
	}

	cli := ctx.CLIFormatter()
	cli.PrintSchedule(output.NewStatusView(s, now()))
	wh := s.WorkingHours
	if schedule.ParseClock(wh.Start, schedule.DefaultStartMinutes) > schedule.ParseClock(wh.End, schedule.DefaultEndMinutes) {
		cli.Warning("Start is after end, so the window never matches.")
	}
	if wh.Enabled && len(wh.Weekdays) == 0 {
		cli.Warning("No weekdays are selected, so protection never runs.")
	}
	return nil
}
