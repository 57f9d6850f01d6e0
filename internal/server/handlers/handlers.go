// Package handlers provides HTTP request handlers for the jokeraudit API.
package handlers

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/jokeraudit/cmd/application"
	"github.com/agentstation/jokeraudit/internal/server/cache"
	"github.com/agentstation/jokeraudit/internal/server/events"
	"github.com/agentstation/jokeraudit/internal/server/sse"
	ws "github.com/agentstation/jokeraudit/internal/server/websocket"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	app            application.Application
	cache          *cache.Cache
	broker         *events.Broker
	wsHub          *ws.Hub
	sseBroadcaster *sse.Broadcaster
	logger         *zerolog.Logger
	started        time.Time

	audits   atomic.Uint64
	failures atomic.Uint64
}

// New creates a new Handlers instance.
func New(
	app application.Application,
	cache *cache.Cache,
	broker *events.Broker,
	wsHub *ws.Hub,
	sseBroadcaster *sse.Broadcaster,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		app:            app,
		cache:          cache,
		broker:         broker,
		wsHub:          wsHub,
		sseBroadcaster: sseBroadcaster,
		logger:         logger,
		started:        time.Now(),
	}
}
