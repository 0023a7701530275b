package cli

import (
	"github.com/spf13/cobra"
)

// sceneExtensions are offered when completing a scene file argument.
var sceneExtensions = []string{"toml", "yaml", "yml", "json"}

// completeScene completes the single scene file argument of solve, graph and
// explore.
func completeScene(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return sceneExtensions, cobra.ShellCompDirectiveFilterFileExt
}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for anchorflow.

Scene arguments of solve, graph and explore complete to .toml, .yaml and .json
files.

Bash:
  $ source <(anchorflow completion bash)

Zsh:
  $ anchorflow completion zsh > "${fpath[1]}/_anchorflow"

Fish:
  $ anchorflow completion fish > ~/.config/fish/completions/anchorflow.fish

PowerShell:
  PS> anchorflow completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(w)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}
}
