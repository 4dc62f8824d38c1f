package mocks

import (
	"sync"

	"github.com/urmu/storefront/domain"
)

// SentSMS is one message captured by MockNotificationService
type SentSMS struct {
	To      string
	Message string
}

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendSMSFunc func(to, message string) error

	mu   sync.Mutex
	Sent []SentSMS
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS sends an SMS message
func (m *MockNotificationService) SendSMS(to, message string) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, SentSMS{To: to, Message: message})
	m.mu.Unlock()

	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	// Default behavior: success (no actual SMS sent in tests)
	return nil
}

// Messages returns a copy of the captured messages
func (m *MockNotificationService) Messages() []SentSMS {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentSMS(nil), m.Sent...)
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
