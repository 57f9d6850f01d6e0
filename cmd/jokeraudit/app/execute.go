package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/jokeraudit/cmd/jokeraudit/cmd/completion"
	"github.com/agentstation/jokeraudit/internal/cmd/output"
	"github.com/agentstation/jokeraudit/pkg/logging"
)

// Execute runs the jokeraudit CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "jokeraudit",
		Short:   "Audit the joker reference document against the engine",
		Version: a.version,
		Long: `jokeraudit compares the joker reference document (JOKERS.md) with the
jokers registered in the engine source (core/src/joker.rs).

It reports documented jokers that have no implementation, names listed
more than once, and implemented identifiers that no documented name maps to.
Display names are mapped to identifiers by a general rule plus a small table
of overrides for names the rule cannot handle.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	config := a.Config()
	rootCmd.PersistentFlags().StringVar(&config.ConfigFile, "config", "", "config file (default is ./.jokeraudit.yaml or $HOME/.jokeraudit.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&config.Verbose, "verbose", "v", config.Verbose, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&config.Quiet, "quiet", "q", config.Quiet, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&config.NoColor, "no-color", config.NoColor, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&config.Format, "format", "o", config.Format, "output format: table, wide, json, yaml, markdown, text")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")

	_ = rootCmd.RegisterFlagCompletionFunc("format", completion.FormatValues)

	rootCmd.SetVersionTemplate("jokeraudit {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// These flags are defined as persistent flags in createRootCommand, so errors indicate programming errors
	configFile := mustGetString(cmd, "config")
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")

	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	if cmd.Flags().Changed("config") {
		loaded, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		a.mu.Lock()
		a.config = loaded
		a.mu.Unlock()
	}

	config := a.Config()
	config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)

	a.setLogger(NewLogger(config))
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.Logger()))

	a.Logger().Debug().
		Str("command", cmd.CommandPath()).
		Str("config_file", config.ConfigFile).
		Msg("Command setup complete")
	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
