package mocks

import (
	"context"
	"sync"

	"github.com/urmu/storefront/domain"
)

// MockEventLogger captures logged events
type MockEventLogger struct {
	mu     sync.Mutex
	Events []*domain.Event
}

func NewMockEventLogger() *MockEventLogger {
	return &MockEventLogger{}
}

func (m *MockEventLogger) LogEvent(ctx context.Context, event *domain.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
}

// Types returns the logged event types in order
func (m *MockEventLogger) Types() []domain.EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]domain.EventType, 0, len(m.Events))
	for _, e := range m.Events {
		types = append(types, e.Type)
	}
	return types
}

// Compile-time interface compliance verification
var _ domain.EventLogger = (*MockEventLogger)(nil)
