package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/tabguard/internal/domain"
	tgerrors "github.com/manav03panchal/tabguard/internal/errors"
	"github.com/manav03panchal/tabguard/internal/logging"
	"github.com/manav03panchal/tabguard/internal/redirect"
)

// Check command flags.
var (
	checkFlagAt    string
	checkFlagFrame int
)

// checkCmd represents the check command.
var checkCmd = &cobra.Command{
	Use:   "check URL",
	Short: "Show whether a navigation would be redirected",
	Long: `Run the redirect decision for URL without touching any tab and
explain the outcome.

Examples:
  tabguard check https://www.youtube.com/watch?v=abc
  tabguard check https://reddit.com --at "saturday 11am"
  tabguard check https://reddit.com --frame 3`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkFlagAt, "at", "", "Decide as of this instant instead of now")
	checkCmd.Flags().IntVar(&checkFlagFrame, "frame", 0, "Frame ID of the navigation (0 = top level)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	at, err := resolveAt(checkFlagAt)
	if err != nil {
		return err
	}

	mode, err := domain.ParseMatchMode(ctx.Config.Redirect.MatchMode)
	if err != nil {
		return tgerrors.NewUserErrorWithField("match mode", ctx.Config.Redirect.MatchMode, err.Error(), "Use substring or suffix.")
	}

	s, err := ctx.Settings.Get()
	if err != nil {
		return err
	}

	nav := redirect.Navigation{TabID: redirect.NoTab, FrameID: checkFlagFrame, URL: args[0]}
	d := redirect.Decide(nav, s, at, false, mode)
	logging.LogOperation("check", logging.KeyURL, logging.MaskURL(args[0]), logging.KeyReason, string(d.Reason))

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDecision(args[0], at, d)
	}
	ctx.CLIFormatter().PrintDecision(args[0], d)
	return nil
}
