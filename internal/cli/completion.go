package cli

import (
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// completionScripts maps each supported shell to its script generator.
var completionScripts = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":  func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish": func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

// completionCommand prints a completion script. Besides commands and flags,
// the scripts complete --format values and the flight codes of
// "flighttree search" from the schedule given with -f or -d.
func (c *CLI) completionCommand() *cobra.Command {
	shells := slices.Sorted(maps.Keys(completionScripts))
	return &cobra.Command{
		Use:   "completion [" + strings.Join(shells, "|") + "]",
		Short: "Print a shell completion script",
		Long: `Print a completion script for flighttree to stdout.

  flighttree completion bash > ~/.local/share/bash-completion/completions/flighttree
  flighttree completion zsh > "${fpath[1]}/_flighttree"
  flighttree completion fish > ~/.config/fish/completions/flighttree.fish
  flighttree completion powershell | Out-String | Invoke-Expression

Open a new shell afterwards. "flighttree search -f Jadwal_Penerbangan.csv GA<TAB>"
then offers the codes of that schedule.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             shells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionScripts[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}
