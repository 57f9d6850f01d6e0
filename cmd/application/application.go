// Package application provides the application interface for jokeraudit commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            client, err := app.Client(app.Settings().Options()...)
//	            if err != nil {
//	                return err
//	            }
//	            report, err := client.Audit(cmd.Context())
//	            // ... render report
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    ClientFunc: func(opts ...jokeraudit.Option) (jokeraudit.Client, error) {
//	        return jokeraudit.New(append(opts, jokeraudit.WithDocumentString(doc))...)
//	    },
//	    SettingsFunc: func() application.Settings {
//	        return application.Settings{Target: 150}
//	    },
//	}
//	cmd := audit.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/jokeraudit"
	"github.com/agentstation/jokeraudit/pkg/extract"
)

// Settings are the audit inputs resolved from flags, environment and config file.
type Settings struct {
	Document  string `json:"document" yaml:"document"`
	Source    string `json:"source" yaml:"source"`
	Registry  string `json:"registry,omitempty" yaml:"registry,omitempty"`
	Construct string `json:"construct" yaml:"construct"`
	Target    int    `json:"target" yaml:"target"`
	Host      string `json:"host" yaml:"host"`
	Port      int    `json:"port" yaml:"port"`
}

// Application provides the application interface that commands need.
// The App struct from cmd/jokeraudit/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Client returns a new audit client built from opts. Commands usually
	// pass Settings().Options() plus their own overrides.
	Client(opts ...jokeraudit.Option) (jokeraudit.Client, error)

	// Settings returns the resolved audit settings.
	Settings() Settings

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, ...).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}

// Server defaults.
const (
	DefaultHost = "localhost"
	DefaultPort = 8080
)

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Document:  jokeraudit.DefaultDocumentPath,
		Source:    jokeraudit.DefaultSourcePath,
		Construct: extract.DefaultConstruct,
		Target:    jokeraudit.DefaultTarget,
		Host:      DefaultHost,
		Port:      DefaultPort,
	}
}

// Options converts the settings into client options. A registry export,
// when set, replaces the engine source.
func (s Settings) Options() []jokeraudit.Option {
	var opts []jokeraudit.Option
	if s.Document != "" {
		opts = append(opts, jokeraudit.WithDocumentPath(s.Document))
	}
	if s.Source != "" {
		opts = append(opts, jokeraudit.WithSourcePath(s.Source))
	}
	if s.Registry != "" {
		opts = append(opts, jokeraudit.WithRegistryPath(s.Registry))
	}
	if s.Construct != "" {
		opts = append(opts, jokeraudit.WithConstruct(s.Construct))
	}
	return opts
}
