package adapters

import (
	"strconv"
	"sync/atomic"

	"github.com/agentstation/jokeraudit/internal/server/events"
	"github.com/agentstation/jokeraudit/internal/server/sse"
)

// SSESubscriber forwards broker events to the SSE broadcaster. Event IDs
// are a per-subscriber sequence so clients can detect gaps.
type SSESubscriber struct {
	broadcaster *sse.Broadcaster
	seq         atomic.Uint64
}

// NewSSESubscriber creates a new SSE subscriber.
func NewSSESubscriber(broadcaster *sse.Broadcaster) *SSESubscriber {
	return &SSESubscriber{broadcaster: broadcaster}
}

// Send queues the event for every SSE client.
func (s *SSESubscriber) Send(event events.Event) error {
	s.broadcaster.Broadcast(sse.Event{
		Event: string(event.Type),
		ID:    strconv.FormatUint(s.seq.Add(1), 10),
		Data: map[string]any{
			"timestamp": event.Timestamp,
			"data":      event.Data,
		},
	})
	return nil
}

// Close does nothing; the broadcaster is stopped by its own context.
func (s *SSESubscriber) Close() error {
	return nil
}
