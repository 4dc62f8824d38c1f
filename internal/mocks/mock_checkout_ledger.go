package mocks

import (
	"context"

	"github.com/urmu/storefront/domain"
)

// MockCheckoutLedger implements domain.CheckoutLedger interface for testing
type MockCheckoutLedger struct {
	RecordFunc      func(ctx context.Context, attempt *domain.CheckoutAttempt) error
	ListByPhoneFunc func(ctx context.Context, phone string) ([]domain.CheckoutAttempt, error)

	Recorded []domain.CheckoutAttempt
}

// NewMockCheckoutLedger creates a new MockCheckoutLedger with default behaviors
func NewMockCheckoutLedger() *MockCheckoutLedger {
	return &MockCheckoutLedger{}
}

// Record stores the attempt in Recorded
func (m *MockCheckoutLedger) Record(ctx context.Context, attempt *domain.CheckoutAttempt) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, attempt)
	}
	// Default behavior: keep in memory
	attempt.ID = uint(len(m.Recorded) + 1)
	m.Recorded = append(m.Recorded, *attempt)
	return nil
}

func (m *MockCheckoutLedger) ListByPhone(ctx context.Context, phone string) ([]domain.CheckoutAttempt, error) {
	if m.ListByPhoneFunc != nil {
		return m.ListByPhoneFunc(ctx, phone)
	}
	var out []domain.CheckoutAttempt
	for _, a := range m.Recorded {
		if a.Phone == phone {
			out = append(out, a)
		}
	}
	return out, nil
}

// Compile-time interface compliance verification
var _ domain.CheckoutLedger = (*MockCheckoutLedger)(nil)
