package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for bookshelf.

To load completions:

Bash:
  $ source <(bookshelf completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ bookshelf completion bash > /etc/bash_completion.d/bookshelf
  # macOS:
  $ bookshelf completion bash > /usr/local/etc/bash_completion.d/bookshelf

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ bookshelf completion zsh > "${fpath[1]}/_bookshelf"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ bookshelf completion fish | source

  # To load completions for each session, execute once:
  $ bookshelf completion fish > ~/.config/fish/completions/bookshelf.fish

PowerShell:
  PS> bookshelf completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> bookshelf completion powershell > bookshelf.ps1
  # and source this file from your PowerShell profile.`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.ExactValidArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, out := cmd.Root(), cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return root.GenBashCompletionV2(out, true)
		case "zsh":
			return root.GenZshCompletion(out)
		case "fish":
			return root.GenFishCompletion(out, true)
		case "powershell":
			return root.GenPowerShellCompletionWithDesc(out)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

// fixedCompletions completes a flag from a closed set of values
func fixedCompletions(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
