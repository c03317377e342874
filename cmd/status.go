package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/tabguard/internal/output"
	"github.com/manav03panchal/tabguard/internal/parser"
)

// Status command flags.
var statusFlagAt string

// statusCmd represents the status command.
var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"st", "s"},
	Short:   "Show whether protection is active",
	Long: `Show the protection state, the schedule preview and the block-list.

Examples:
  tabguard status
  tabguard status --at "saturday 10am"
  tabguard status --at "tomorrow at 8pm" --format json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusFlagAt, "at", "", "Evaluate at this instant instead of now")
	rootCmd.AddCommand(statusCmd)
}

// runStatus shows the protection state.
func runStatus(cmd *cobra.Command, args []string) error {
	at, err := resolveAt(statusFlagAt)
	if err != nil {
		return err
	}

	s, err := ctx.Settings.Get()
	if err != nil {
		return err
	}

	view := output.NewStatusView(s, at)
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintStatus(view)
	}

	ctx.CLIFormatter().PrintStatus(view)
	return nil
}

// resolveAt parses an --at value, defaulting to now.
func resolveAt(value string) (time.Time, error) {
	if value == "" {
		return now(), nil
	}
	return parser.ParseInstant(value, now())
}
