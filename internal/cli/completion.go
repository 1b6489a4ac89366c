package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/prism/pkg/chart"
	"github.com/matzehuels/prism/pkg/layout"
	"github.com/matzehuels/prism/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for prism.

Bash:
  $ source <(prism completion bash)

Zsh:
  $ prism completion zsh > "${fpath[1]}/_prism"

Fish:
  $ prism completion fish > ~/.config/fish/completions/prism.fish

PowerShell:
  PS> prism completion powershell | Out-String | Invoke-Expression

Chart types, formats and nearest strategies complete as flag values.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(os.Stdout, true)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// registerCompletions attaches value completions to the chart flags that
// cmd defines.
func registerCompletions(cmd *cobra.Command) {
	complete := func(name string, values func() []string) {
		if cmd.Flags().Lookup(name) == nil {
			return
		}
		_ = cmd.RegisterFlagCompletionFunc(name, func(_ *cobra.Command, _ []string, prefix string) ([]string, cobra.ShellCompDirective) {
			var out []string
			for _, v := range values() {
				if strings.HasPrefix(v, prefix) {
					out = append(out, v)
				}
			}
			return out, cobra.ShellCompDirectiveNoFileComp
		})
	}

	complete("chart", chartNames)
	complete("format", func() []string { return pipeline.Formats })
	complete("nearest", func() []string {
		return []string{string(layout.NearestAuto), string(layout.NearestScan), string(layout.NearestKDTree)}
	})
}

func chartNames() []string {
	var names []string
	for _, t := range chart.Types() {
		names = append(names, string(t))
	}
	return names
}
