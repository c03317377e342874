package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/tabguard/internal/output"
)

var weekFlagAt string

// weekCmd prints the week strip.
var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show which days of this week are protected",
	Long: `Show the current week, starting on the configured first day, with the
protected days, today and the days already past.

Examples:
  tabguard week
  tabguard week --at "next monday"`,
	Args: cobra.NoArgs,
	RunE: runWeek,
}

func init() {
	weekCmd.Flags().StringVar(&weekFlagAt, "at", "", "Show the week containing this instant")
	rootCmd.AddCommand(weekCmd)
}

func runWeek(cmd *cobra.Command, args []string) error {
	at, err := resolveAt(weekFlagAt)
	if err != nil {
		return err
	}

	s, err := ctx.Settings.Get()
	if err != nil {
		return err
	}

	week := output.NewWeek(s, at)
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintWeek(week)
	}
	ctx.CLIFormatter().PrintWeek(week)
	return nil
}
