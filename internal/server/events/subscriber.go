package events

// Subscriber is an interface for event consumers.
// Implementations adapt the event stream to a specific transport and must
// be comparable, since Unsubscribe matches them with ==.
type Subscriber interface {
	// Send delivers an event to the subscriber. It must not block.
	Send(Event) error

	// Close cleanly shuts down the subscriber.
	Close() error
}
