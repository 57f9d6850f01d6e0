package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/jokeraudit/cmd/jokeraudit/cmd/audit"
	"github.com/agentstation/jokeraudit/cmd/jokeraudit/cmd/canonicalize"
	"github.com/agentstation/jokeraudit/cmd/jokeraudit/cmd/completion"
	"github.com/agentstation/jokeraudit/cmd/jokeraudit/cmd/overrides"
	"github.com/agentstation/jokeraudit/cmd/jokeraudit/cmd/serve"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(audit.NewCommand(a))
	rootCmd.AddCommand(canonicalize.NewCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(overrides.NewCommand(a))
	rootCmd.AddCommand(completion.NewCommand())

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("jokeraudit %s\n", a.version)
			if a.Config().Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
