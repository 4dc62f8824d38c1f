package mocks

import (
	"strings"
	"time"

	"github.com/urmu/storefront/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateSessionTokenFunc func(session *domain.Session) (string, error)
	ValidateSessionTokenFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateSessionToken issues a token for the session
func (m *MockTokenService) GenerateSessionToken(session *domain.Session) (string, error) {
	if m.GenerateSessionTokenFunc != nil {
		return m.GenerateSessionTokenFunc(session)
	}
	// Default behavior: token is derived from the session id
	return "session_token_" + session.ID, nil
}

// ValidateSessionToken validates a token and returns claims
func (m *MockTokenService) ValidateSessionToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateSessionTokenFunc != nil {
		return m.ValidateSessionTokenFunc(token)
	}
	// Default behavior: accept tokens produced by GenerateSessionToken
	sessionID, ok := strings.CutPrefix(token, "session_token_")
	if !ok || sessionID == "" {
		return nil, domain.ErrTokenInvalid
	}

	now := time.Now().Unix()
	return &domain.TokenClaims{
		Role:      domain.RoleCustomer,
		SessionID: sessionID,
		IssuedAt:  now,
		ExpiresAt: now + 3600,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
