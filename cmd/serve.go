package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/tabguard/internal/daemon"
	"github.com/manav03panchal/tabguard/internal/logging"
	"github.com/manav03panchal/tabguard/internal/redirect"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the redirect event loop on stdin/stdout",
	Long: `Read browser events as newline-delimited JSON on stdin and write tab
commands to stdout. Logs go to stderr.

Events:
  {"type":"navigation","tabId":1,"frameId":0,"url":"https://youtube.com/"}
  {"type":"tab_closed","tabId":1}
  {"type":"command","command":"emergency_redirect","tabId":1}
  {"type":"installed","reason":"install"}
  {"type":"status"}

Commands:
  {"action":"navigate","tabId":1,"url":"https://calendar.google.com"}
  {"action":"open","url":"https://example.com"}

Environment:
  TABGUARD_REDIRECT_COOLDOWN  how long a redirected tab is left alone (default 2s)
  TABGUARD_MATCH_MODE         substring or suffix (default substring)
  TABGUARD_TICK               cron spec for protection-state logging`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logging.Init(logging.ServeConfig(flagDebug))

	sigCtx, stop := daemon.WithShutdown(cmd.Context())
	defer stop()

	d := daemon.NewDaemon(redirect.NewRepoSource(ctx.Settings), ctx.Config, Version)
	return d.Run(sigCtx, cmd.InOrStdin(), cmd.OutOrStdout())
}
