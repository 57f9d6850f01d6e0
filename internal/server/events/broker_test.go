package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mockSubscriber struct {
	mu     sync.Mutex
	events []Event
	closed bool
}

func (m *mockSubscriber) Send(event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockSubscriber) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockSubscriber) types() []EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]EventType, len(m.events))
	for i, e := range m.events {
		out[i] = e.Type
	}
	return out
}

func (m *mockSubscriber) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func run(t *testing.T, b *Broker) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()
	return func() {
		cancel()
		<-done
	}
}

func TestBroker_SubscribeBeforeRun(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	done := make(chan struct{})
	go func() {
		b.Subscribe(&mockSubscriber{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Subscribe blocked without Run")
	}
}

func TestBroker_DeliversInOrder(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)
	sub := &mockSubscriber{}
	b.Subscribe(sub)
	stop := run(t, b)

	require.Eventually(t, func() bool { return b.SubscriberCount() == 1 }, time.Second, 5*time.Millisecond)

	b.Publish(DuplicateFound, map[string]any{"name": "Hack"})
	b.Publish(MissingFound, map[string]any{"name": "Madness"})
	b.Publish(AuditCompleted, nil)

	want := []EventType{DuplicateFound, MissingFound, AuditCompleted}
	require.Eventually(t, func() bool { return len(sub.types()) == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, want, sub.types())
	assert.Equal(t, Stats{Subscribers: 1, Published: 3}, b.Stats())

	stop()
	assert.True(t, sub.isClosed())
	assert.Equal(t, 0, b.SubscriberCount())
}

func TestBroker_Unsubscribe(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)
	stop := run(t, b)
	defer stop()

	keep, drop := &mockSubscriber{}, &mockSubscriber{}
	b.Subscribe(keep)
	b.Subscribe(drop)
	require.Eventually(t, func() bool { return b.SubscriberCount() == 2 }, time.Second, 5*time.Millisecond)

	b.Unsubscribe(drop)
	require.Eventually(t, func() bool { return b.SubscriberCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, drop.isClosed())

	b.Publish(AuditCompleted, nil)
	require.Eventually(t, func() bool { return len(keep.types()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Empty(t, drop.types())
}

func TestBroker_DropsWhenFull(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	for range cap(b.events) + 5 {
		b.Publish(AuditCompleted, nil)
	}

	stats := b.Stats()
	assert.Equal(t, uint64(cap(b.events)), stats.Published)
	assert.Equal(t, uint64(5), stats.Dropped)
}
