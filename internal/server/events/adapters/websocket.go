// Package adapters connects the event broker to the streaming transports.
package adapters

import (
	"github.com/agentstation/jokeraudit/internal/server/events"
	ws "github.com/agentstation/jokeraudit/internal/server/websocket"
)

// WebSocketSubscriber forwards broker events to the WebSocket hub.
type WebSocketSubscriber struct {
	hub *ws.Hub
}

// NewWebSocketSubscriber creates a new WebSocket subscriber.
func NewWebSocketSubscriber(hub *ws.Hub) *WebSocketSubscriber {
	return &WebSocketSubscriber{hub: hub}
}

// Send queues the event for every WebSocket client.
func (w *WebSocketSubscriber) Send(event events.Event) error {
	w.hub.Broadcast(ws.Message{
		Type:      string(event.Type),
		Timestamp: event.Timestamp,
		Data:      event.Data,
	})
	return nil
}

// Close does nothing; the hub is stopped by its own context.
func (w *WebSocketSubscriber) Close() error {
	return nil
}
