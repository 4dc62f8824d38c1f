package domain

import (
	"context"
	"time"
)

// EventType names a storefront business event
type EventType string

const (
	OTPRequestedEvent     EventType = "OTP_REQUESTED"
	OTPRequestFailedEvent EventType = "OTP_REQUEST_FAILED"
	OTPVerifiedEvent      EventType = "OTP_VERIFIED"
	OTPVerifyFailedEvent  EventType = "OTP_VERIFICATION_FAILED"

	UserSignupEvent  EventType = "USER_SIGNED_UP"
	UserLoginEvent   EventType = "USER_LOGIN"
	UserLogoutEvent  EventType = "USER_LOGOUT"
	LoginFailedEvent EventType = "USER_LOGIN_FAILED"

	OrderPlacedEvent      EventType = "ORDER_PLACED"
	CheckoutFailedEvent   EventType = "CHECKOUT_FAILED"
	WholesaleAppliedEvent EventType = "WHOLESALE_APPLIED"
)

// Event represents a business event that occurred in the storefront
type Event struct {
	Type      EventType              `json:"event_type"`
	Phone     string                 `json:"phone,omitempty"`
	SessionID string                 `json:"session_id,omitempty"`
	FlowID    string                 `json:"flow_id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// EventLogger records business events
type EventLogger interface {
	LogEvent(ctx context.Context, event *Event)
}

// NewEvent creates a new event with common fields populated
func NewEvent(eventType EventType) *Event {
	return &Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError sets error information on the event
func (e *Event) WithError(err error) *Event {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

func (e *Event) WithPhone(phone string) *Event {
	e.Phone = phone
	return e
}

func (e *Event) WithSession(sessionID string) *Event {
	e.SessionID = sessionID
	return e
}

func (e *Event) WithFlow(flowID string) *Event {
	e.FlowID = flowID
	return e
}

// WithMetadata adds metadata to the event
func (e *Event) WithMetadata(key string, value interface{}) *Event {
	e.Metadata[key] = value
	return e
}
