package mocks

import (
	"context"
	"sync"

	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/otpflow"
)

// MockFlowStore implements otpflow.Store. Without overrides it keeps flows in memory.
type MockFlowStore struct {
	SaveFunc   func(ctx context.Context, flow *otpflow.Flow) error
	FindFunc   func(ctx context.Context, id string) (*otpflow.Flow, error)
	DeleteFunc func(ctx context.Context, id string) error

	mu    sync.Mutex
	flows map[string]otpflow.Flow
}

func NewMockFlowStore() *MockFlowStore {
	return &MockFlowStore{flows: make(map[string]otpflow.Flow)}
}

func (m *MockFlowStore) Save(ctx context.Context, flow *otpflow.Flow) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, flow)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flows[flow.ID] = *flow
	return nil
}

func (m *MockFlowStore) Find(ctx context.Context, id string) (*otpflow.Flow, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	flow, ok := m.flows[id]
	if !ok {
		return nil, domain.ErrFlowNotFound
	}
	return &flow, nil
}

func (m *MockFlowStore) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flows, id)
	return nil
}

// Put seeds a flow directly
func (m *MockFlowStore) Put(flow otpflow.Flow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flows[flow.ID] = flow
}

// Compile-time interface compliance verification
var _ otpflow.Store = (*MockFlowStore)(nil)
