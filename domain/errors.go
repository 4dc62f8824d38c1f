package domain

import (
	"errors"
	"fmt"
)

// Validation errors
var (
	ErrPhoneTooShort        = errors.New("phone number is too short")
	ErrInvalidCode          = errors.New("otp code must be 4 digits")
	ErrFirstNameRequired    = errors.New("first name is required")
	ErrInvalidNationalCode  = errors.New("invalid national code")
	ErrInvalidPostalCode    = errors.New("invalid postal code")
	ErrMissingField         = errors.New("required field is missing")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrInvalidProductFilter = errors.New("invalid product filter")
)

// OTP flow errors
var (
	ErrFlowNotFound        = errors.New("otp flow not found")
	ErrIllegalTransition   = errors.New("illegal otp flow transition")
	ErrResendNotReady      = errors.New("otp resend is not available yet")
	ErrShortTermTokenEmpty = errors.New("backend returned an empty short-term token")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Checkout errors
var (
	ErrOrderFailed   = errors.New("order creation failed")
	ErrPaymentFailed = errors.New("payment creation failed")
)

var ErrBackendTimeout = errors.New("backend request timed out")

// APIError is a non-2xx answer from the backend. Message is the backend's own
// text and may be empty.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded with status %d", e.Status)
	}
	return fmt.Sprintf("backend responded with status %d: %s", e.Status, e.Message)
}

// FieldError is a validation failure bound to one form field
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

// ResendWaitError carries the seconds left on the resend countdown
type ResendWaitError struct {
	Remaining int
}

func (e *ResendWaitError) Error() string {
	return fmt.Sprintf("please wait %d seconds before requesting new OTP", e.Remaining)
}

func (e *ResendWaitError) Unwrap() error { return ErrResendNotReady }

// UserMessage returns the backend-provided message of err when there is one,
// otherwise fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
