package mocks

// MockAuthorizer decides route access from a role -> "METHOD path" table
type MockAuthorizer struct {
	AllowedFunc func(role, path, method string) (bool, error)

	Rules map[string][]string
}

// NewMockAuthorizer creates a MockAuthorizer that denies everything not in Rules
func NewMockAuthorizer() *MockAuthorizer {
	return &MockAuthorizer{Rules: map[string][]string{}}
}

// Allow grants role access to method on path
func (m *MockAuthorizer) Allow(role, method, path string) *MockAuthorizer {
	m.Rules[role] = append(m.Rules[role], method+" "+path)
	return m
}

func (m *MockAuthorizer) Allowed(role, path, method string) (bool, error) {
	if m.AllowedFunc != nil {
		return m.AllowedFunc(role, path, method)
	}
	for _, rule := range m.Rules[role] {
		if rule == method+" "+path {
			return true, nil
		}
	}
	return false, nil
}
