// Package serve provides the serve command, which exposes audits over HTTP
// with WebSocket and SSE event streams.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/jokeraudit/cmd/application"
	"github.com/agentstation/jokeraudit/internal/server"
)

// shutdownTimeout bounds connection draining after the command context ends.
const shutdownTimeout = 30 * time.Second

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: "core",
		Aliases: []string{"server", "api"},
		Short:   "Serve audits over a REST API with real-time updates",
		Long: `Start an HTTP server that audits the configured document and source.

Endpoints (under --prefix, /api/v1 by default):
  GET  /health, /ready           liveness and input readiness
  GET  /audit                    audit the configured inputs (?target=, ?hints=true)
  POST /audit                    audit a document and source sent as JSON
  GET  /canonicalize?name=...    map display names to identifiers
  GET  /overrides                list identifier overrides (?name= filters)
  GET  /stats                    server counters
  GET  /updates/ws               WebSocket stream of audit events
  GET  /updates/stream           Server-Sent Events stream of audit events

Reports are cached until --cache-ttl expires or an input file changes.
With --auth, requests must carry the API_KEY value in the auth header.`,
		Example: `  # Start on the configured host and port (localhost:8080 by default)
  jokeraudit serve

  # Listen on all interfaces with authentication
  API_KEY=secret jokeraudit serve --host 0.0.0.0 --auth

  # Allow a browser dashboard to connect
  jokeraudit serve --cors-origins https://dash.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := parseConfig(cmd, app.Settings())
			if err != nil {
				return err
			}
			return run(cmd, app, cfg)
		},
	}

	def := server.DefaultConfig()

	cmd.Flags().IntP("port", "p", 0, "server port (default from settings, 8080)")
	cmd.Flags().String("host", "", "bind address (default from settings, localhost)")
	cmd.Flags().String("prefix", def.PathPrefix, "API path prefix")

	cmd.Flags().Bool("cors", false, "enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", nil, "allowed CORS origins, implies --cors")

	cmd.Flags().Bool("auth", false, "require the API_KEY value on every non-health request")
	cmd.Flags().String("auth-header", def.AuthHeader, "authentication header name")

	cmd.Flags().Int("rate-limit", def.RateLimit, "requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("cache-ttl", def.CacheTTL, "how long audit reports are cached")

	cmd.Flags().Duration("read-timeout", def.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", def.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", def.IdleTimeout, "HTTP idle timeout")

	cmd.Flags().Bool("metrics", def.MetricsEnabled, "serve Prometheus metrics at /metrics")

	return cmd
}

// parseConfig builds the server configuration from flags, falling back to
// settings for host and port.
func parseConfig(cmd *cobra.Command, settings application.Settings) (server.Config, error) {
	cfg := server.DefaultConfig()
	flags := cmd.Flags()

	if settings.Host != "" {
		cfg.Host = settings.Host
	}
	if settings.Port != 0 {
		cfg.Port = settings.Port
	}
	if flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}

	cfg.PathPrefix, _ = flags.GetString("prefix")
	cfg.CORSEnabled, _ = flags.GetBool("cors")
	cfg.CORSOrigins, _ = flags.GetStringSlice("cors-origins")
	if len(cfg.CORSOrigins) > 0 {
		cfg.CORSEnabled = true
	}
	cfg.AuthEnabled, _ = flags.GetBool("auth")
	cfg.AuthHeader, _ = flags.GetString("auth-header")
	cfg.RateLimit, _ = flags.GetInt("rate-limit")
	cfg.CacheTTL, _ = flags.GetDuration("cache-ttl")
	cfg.ReadTimeout, _ = flags.GetDuration("read-timeout")
	cfg.WriteTimeout, _ = flags.GetDuration("write-timeout")
	cfg.IdleTimeout, _ = flags.GetDuration("idle-timeout")
	cfg.MetricsEnabled, _ = flags.GetBool("metrics")

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("invalid port %d: must be between 1 and 65535", cfg.Port)
	}
	if cfg.CacheTTL <= 0 {
		return cfg, fmt.Errorf("invalid cache TTL %s: must be positive", cfg.CacheTTL)
	}
	return cfg, nil
}

// run serves until the command context is cancelled, then drains
// connections and stops background services.
func run(cmd *cobra.Command, app application.Application, cfg server.Config) error {
	logger := app.Logger()

	srv, err := server.New(app, cfg)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	srv.Start()

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", httpServer.Addr).
			Str("prefix", srv.Config().PathPrefix).
			Bool("cors", cfg.CORSEnabled).
			Bool("auth", cfg.AuthEnabled).
			Int("rate_limit", cfg.RateLimit).
			Dur("cache_ttl", cfg.CacheTTL).
			Msg("Starting API server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	cmd.Printf("Serving jokeraudit API on http://%s%s\n", httpServer.Addr, srv.Config().PathPrefix)

	select {
	case err := <-serverErr:
		_ = srv.Shutdown(context.Background())
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-cmd.Context().Done():
		logger.Info().Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Event streams never go idle, so end them before draining.
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("background services shutdown failed: %w", err)
	}
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.Info().Msg("Server stopped gracefully")
	return nil
}
