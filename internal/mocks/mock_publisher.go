package mocks

import (
	"context"
	"sync"

	"github.com/HarishKumarG/BMS-project/internal/events"
)

// MockPublisher records published events.
type MockPublisher struct {
	mu     sync.Mutex
	events []events.Event
	Err    error
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)

	return m.Err
}

func (m *MockPublisher) Close() error {
	return nil
}

// Events returns a copy of the events published so far.
func (m *MockPublisher) Events() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]events.Event, len(m.events))
	copy(out, m.events)
	return out
}
