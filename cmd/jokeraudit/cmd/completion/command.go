// Package completion provides the shell completion command.
package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/jokeraudit/internal/cmd/output"
)

// Shells lists the shells a completion script can be generated for.
var Shells = []string{"bash", "zsh", "fish", "powershell"}

// NewCommand creates the completion command. It replaces Cobra's
// generated one so the root command can disable the default.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for jokeraudit.

To load completions in your current shell session:

  source <(jokeraudit completion bash)
  source <(jokeraudit completion zsh)
  jokeraudit completion fish | source

To load completions for every new session, write the script to your
shell's completion directory, for example:

  jokeraudit completion bash > /etc/bash_completion.d/jokeraudit`,
		GroupID: "management",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	for _, shell := range Shells {
		cmd.AddCommand(newShellCommand(shell))
	}
	return cmd
}

func newShellCommand(shell string) *cobra.Command {
	return &cobra.Command{
		Use:                   shell,
		Short:                 fmt.Sprintf("Generate %s completion script", shell),
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Generate(cmd.Root(), shell, cmd.OutOrStdout())
		},
	}
}

// Generate writes the completion script for shell to w.
func Generate(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell %q", shell)
	}
}

// FormatValues completes the --format flag.
func FormatValues(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	formats := output.Formats()
	values := make([]string, 0, len(formats))
	for _, f := range formats {
		values = append(values, string(f))
	}
	return values, cobra.ShellCompDirectiveNoFileComp
}
