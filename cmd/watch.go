package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/tabguard/internal/tui"
)

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:     "watch",
	Aliases: []string{"dash", "tui"},
	Short:   "Open the live status dashboard",
	Long: `Open an interactive terminal dashboard that follows the protection
state as the clock moves through the working-hours window.

Keyboard Controls:
  e   - Toggle blocking
  h   - Toggle working hours
  0-6 - Toggle a weekday (0 = Sunday)
  r   - Reload settings
  q   - Quit`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	return tui.Run(tui.DashboardConfig{
		Store: ctx.Settings,
		Now:   now,
	})
}
