package cmd

import (
	"github.com/spf13/cobra"
)

// completionCmd represents the completion command.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for tabguard.

To load completions:

Bash:
  $ source <(tabguard completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ tabguard completion bash > /etc/bash_completion.d/tabguard
  # macOS:
  $ tabguard completion bash > $(brew --prefix)/etc/bash_completion.d/tabguard

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ tabguard completion zsh > "${fpath[1]}/_tabguard"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ tabguard completion fish | source

  # To load completions for each session, execute once:
  $ tabguard completion fish > ~/.config/fish/completions/tabguard.fish

PowerShell:
  PS> tabguard completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
