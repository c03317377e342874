package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/tabguard/internal/model"
	"github.com/manav03panchal/tabguard/internal/output"
)

// enableCmd turns blocking on.
var enableCmd = &cobra.Command{
	Use:     "enable",
	Aliases: []string{"on"},
	Short:   "Turn blocking on",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(true)
	},
}

// disableCmd turns blocking off.
var disableCmd = &cobra.Command{
	Use:     "disable",
	Aliases: []string{"off"},
	Short:   "Turn blocking off",
	Long: `Turn blocking off. This also turns the working-hours restriction off,
so enabling again starts with round-the-clock protection.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(false)
	},
}

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

func setEnabled(enabled bool) error {
	s, err := ctx.Settings.Update(func(s *model.Settings) error {
		s.SetEnabled(enabled)
		return nil
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintSettings("updated", s)
	}

	cli := ctx.CLIFormatter()
	if enabled {
		cli.Success("Blocking enabled")
	} else {
		cli.Success("Blocking disabled")
	}
	cli.PrintStatus(output.NewStatusView(s, now()))
	return nil
}
