package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{name: "ErrPhoneTooShort", err: ErrPhoneTooShort, expectedMsg: "phone number is too short"},
		{name: "ErrInvalidCode", err: ErrInvalidCode, expectedMsg: "otp code must be 4 digits"},
		{name: "ErrFirstNameRequired", err: ErrFirstNameRequired, expectedMsg: "first name is required"},
		{name: "ErrInvalidNationalCode", err: ErrInvalidNationalCode, expectedMsg: "invalid national code"},
		{name: "ErrInvalidPostalCode", err: ErrInvalidPostalCode, expectedMsg: "invalid postal code"},
		{name: "ErrMissingField", err: ErrMissingField, expectedMsg: "required field is missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected error message %q, got %q", tt.expectedMsg, tt.err.Error())
			}

			// Test that these are different errors
			for _, other := range tests {
				if other.name != tt.name && errors.Is(tt.err, other.err) {
					t.Errorf("error %s should not be equal to %s", tt.name, other.name)
				}
			}
		})
	}
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name        string
		err         *APIError
		expectedMsg string
	}{
		{
			name:        "with backend message",
			err:         &APIError{Status: 400, Message: "شماره موبایل نامعتبر است"},
			expectedMsg: "backend responded with status 400: شماره موبایل نامعتبر است",
		},
		{
			name:        "without backend message",
			err:         &APIError{Status: 502},
			expectedMsg: "backend responded with status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, tt.err.Error())
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	const fallback = "خطا در ارسال کد"

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "backend message is surfaced verbatim",
			err:      &APIError{Status: 429, Message: "لطفا کمی صبر کنید"},
			expected: "لطفا کمی صبر کنید",
		},
		{
			name:     "wrapped backend message",
			err:      fmt.Errorf("send otp: %w", &APIError{Status: 400, Message: "invalid phone"}),
			expected: "invalid phone",
		},
		{
			name:     "empty backend message falls back",
			err:      &APIError{Status: 500},
			expected: fallback,
		},
		{
			name:     "transport error falls back",
			err:      errors.New("connection refused"),
			expected: fallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err, fallback); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestResendWaitError(t *testing.T) {
	err := error(&ResendWaitError{Remaining: 42})

	if !errors.Is(err, ErrResendNotReady) {
		t.Error("ResendWaitError should unwrap to ErrResendNotReady")
	}
	if err.Error() != "please wait 42 seconds before requesting new OTP" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestFieldError(t *testing.T) {
	err := error(&FieldError{Field: "phone", Err: ErrPhoneTooShort})

	if !errors.Is(err, ErrPhoneTooShort) {
		t.Error("FieldError should unwrap to its cause")
	}
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "phone" {
		t.Errorf("expected field phone, got %+v", fe)
	}
}
