package mocks

import (
	"context"

	"github.com/urmu/storefront/domain"
)

// MockAuthAPI implements domain.AuthAPI interface for testing
type MockAuthAPI struct {
	SendOTPFunc   func(ctx context.Context, phone string) error
	VerifyOTPFunc func(ctx context.Context, phone, code string) (*domain.OTPVerification, error)
	LoginFunc     func(ctx context.Context, shortTermToken string) (string, error)
	SignupFunc    func(ctx context.Context, shortTermToken, firstName, lastName string) error
	ProfileFunc   func(ctx context.Context, accessToken string) (*domain.Profile, error)
}

// NewMockAuthAPI creates a new MockAuthAPI with default behaviors
func NewMockAuthAPI() *MockAuthAPI {
	return &MockAuthAPI{}
}

func (m *MockAuthAPI) SendOTP(ctx context.Context, phone string) error {
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, phone)
	}
	return nil
}

func (m *MockAuthAPI) VerifyOTP(ctx context.Context, phone, code string) (*domain.OTPVerification, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, phone, code)
	}
	// Default behavior: known customer
	return &domain.OTPVerification{IsLoggedIn: true, ShortTermAccessToken: "short_term_token"}, nil
}

func (m *MockAuthAPI) Login(ctx context.Context, shortTermToken string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, shortTermToken)
	}
	return "access_token_for_" + shortTermToken, nil
}

func (m *MockAuthAPI) Signup(ctx context.Context, shortTermToken, firstName, lastName string) error {
	if m.SignupFunc != nil {
		return m.SignupFunc(ctx, shortTermToken, firstName, lastName)
	}
	return nil
}

func (m *MockAuthAPI) Profile(ctx context.Context, accessToken string) (*domain.Profile, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, accessToken)
	}
	return &domain.Profile{ID: "u1", Role: domain.RoleCustomer}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthAPI = (*MockAuthAPI)(nil)
