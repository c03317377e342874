package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/tabguard/internal/output"
)

// resetCmd restores the default settings.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Long: `Overwrite the stored settings with the defaults: blocking on, working
hours off (Monday to Friday, 09:00 to 17:00) and the default block-list.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	s, err := ctx.Settings.Reset()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSettings("reset", s)
	}
	cli := ctx.CLIFormatter()
	cli.Success("Settings restored to defaults")
	cli.PrintStatus(output.NewStatusView(s, now()))
	return nil
}
