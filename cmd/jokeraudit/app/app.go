// Package app provides the application context and dependency management
// for the jokeraudit CLI. It centralizes configuration, logging and client
// construction so commands receive everything through application.Application.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/jokeraudit"
	"github.com/agentstation/jokeraudit/cmd/application"
	"github.com/agentstation/jokeraudit/pkg/logging"
)

// App represents the jokeraudit application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	mu     sync.RWMutex
	config *Config
	logger *zerolog.Logger
}

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and the default config file
// and can be replaced with functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.Config().Format
}

// Settings returns the resolved audit settings.
func (a *App) Settings() application.Settings {
	return a.Config().Settings()
}

// Client creates a new audit client. Hooks registered on one client are
// never seen by another.
func (a *App) Client(opts ...jokeraudit.Option) (jokeraudit.Client, error) {
	return jokeraudit.New(opts...)
}

// Shutdown releases application resources.
func (a *App) Shutdown(_ context.Context) error {
	a.Logger().Debug().Msg("Shutdown complete")
	return nil
}

// setLogger replaces the logger and makes it the package default.
func (a *App) setLogger(logger zerolog.Logger) {
	a.mu.Lock()
	a.logger = &logger
	a.mu.Unlock()
	logging.SetDefault(logger)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if err := config.Validate(); err != nil {
			return err
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
