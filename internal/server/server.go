// Package server provides the HTTP API for jokeraudit.
//
// The architecture follows the pattern: CLI → App → Server → Router → Handlers.
// Audit findings are published to an event broker, which fans them out to
// WebSocket and SSE clients.
//
// Usage:
//
//	cfg := server.DefaultConfig()
//	srv, err := server.New(app, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv.Start()
//	defer srv.Shutdown(context.Background())
//	http.ListenAndServe(":8080", srv.Handler())
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/jokeraudit/cmd/application"
	"github.com/agentstation/jokeraudit/internal/server/cache"
	"github.com/agentstation/jokeraudit/internal/server/events"
	"github.com/agentstation/jokeraudit/internal/server/events/adapters"
	"github.com/agentstation/jokeraudit/internal/server/handlers"
	"github.com/agentstation/jokeraudit/internal/server/middleware"
	"github.com/agentstation/jokeraudit/internal/server/sse"
	ws "github.com/agentstation/jokeraudit/internal/server/websocket"
)

// cachePurgeInterval is how often expired audit reports are dropped.
const cachePurgeInterval = time.Minute

// Server holds the HTTP server state and dependencies.
type Server struct {
	app            application.Application
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	rateLimiter    *middleware.RateLimiter
	handlers       *handlers.Handlers
	logger         *zerolog.Logger
	config         Config

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// New creates a new server instance with the given configuration. Zero
// fields of cfg take their DefaultConfig values.
func New(app application.Application, cfg Config) (*Server, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	logger := app.Logger()

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)
	wsHub.AllowedOrigins = cfg.CORSOrigins
	sseBroadcaster := sse.NewBroadcaster(logger)

	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))
	broker.Subscribe(adapters.NewSSESubscriber(sseBroadcaster))

	c := cache.New(cfg.CacheTTL)

	var rl *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		rl = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	ctx, cancel := context.WithCancel(context.Background())

	logger.Debug().
		Str("prefix", cfg.PathPrefix).
		Dur("cache_ttl", cfg.CacheTTL).
		Int("rate_limit", cfg.RateLimit).
		Msg("Server instance created")

	return &Server{
		app:            app,
		cache:          c,
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		rateLimiter:    rl,
		handlers:       handlers.New(app, c, broker, wsHub, sseBroadcaster, logger),
		logger:         logger,
		config:         cfg,
		ctx:            ctx,
		cancel:         cancel,
	}, nil
}

// Start starts background services: the event broker, both streaming
// transports, cache purging and rate limiter sweeping. Calling it more
// than once has no effect.
func (s *Server) Start() {
	s.once.Do(func() {
		s.goRun(s.broker.Run)
		s.goRun(s.wsHub.Run)
		s.goRun(s.sseBroadcaster.Run)
		s.goRun(func(ctx context.Context) { s.cache.Run(ctx, cachePurgeInterval) })
		if s.rateLimiter != nil {
			s.goRun(s.rateLimiter.Run)
		}
		s.logger.Debug().Msg("Background services started")
	})
}

func (s *Server) goRun(fn func(context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(s.ctx)
	}()
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Config returns the normalized configuration.
func (s *Server) Config() Config {
	return s.config
}

// Shutdown stops background services and waits for them, or for ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info().Msg("Background services shut down")
		return nil
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
		return ctx.Err()
	}
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Broker returns the event broker for publishing events.
func (s *Server) Broker() *events.Broker {
	return s.broker
}
