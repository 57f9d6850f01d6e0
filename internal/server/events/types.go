// Package events provides the event pipeline for real-time audit updates.
//
// Audit hooks publish to a Broker, which fans each event out to the
// transports (WebSocket, SSE) through the Subscriber interface.
package events

import "time"

// EventType represents the type of audit event.
type EventType string

// Event types published by the server.
const (
	// Audit events (from client hooks).
	AuditCompleted EventType = "audit.completed"
	DuplicateFound EventType = "audit.duplicate"
	MissingFound   EventType = "audit.missing"

	// Client events (from transport layers).
	ClientConnected EventType = "client.connected"
)

// Event represents an audit event with type, timestamp, and data.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
