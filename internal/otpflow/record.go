package otpflow

import (
	"context"
	"fmt"
	"time"
)

// Flow is one wizard instance
type Flow struct {
	ID        string
	State     State
	CreatedAt time.Time
}

// Store persists flows between requests
type Store interface {
	Save(ctx context.Context, flow *Flow) error
	Find(ctx context.Context, id string) (*Flow, error)
	Delete(ctx context.Context, id string) error
}

// Record is the flat, serializable form of a Flow
type Record struct {
	ID              string    `json:"id"`
	Step            Step      `json:"step"`
	Phone           string    `json:"phone,omitempty"`
	SentAt          time.Time `json:"sent_at,omitempty"`
	ResendAt        time.Time `json:"resend_at,omitempty"`
	AttemptsAllowed int       `json:"attempts_allowed,omitempty"`
	ShortTermToken  string    `json:"short_term_token,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToRecord flattens a flow for storage
func ToRecord(f *Flow) Record {
	r := Record{ID: f.ID, Step: f.State.Step(), CreatedAt: f.CreatedAt}
	switch s := f.State.(type) {
	case OTPState:
		r.Phone = s.Phone
		r.SentAt = s.SentAt
		r.ResendAt = s.ResendAt
		r.AttemptsAllowed = s.AttemptsAllowed
	case SignupState:
		r.Phone = s.Phone
		r.ShortTermToken = s.ShortTermToken
	case DoneState:
		r.Phone = s.Phone
	}
	return r
}

// FromRecord rebuilds a flow, rejecting records that describe an impossible state
func FromRecord(r Record) (*Flow, error) {
	f := &Flow{ID: r.ID, CreatedAt: r.CreatedAt}
	switch r.Step {
	case StepPhone:
		f.State = PhoneState{}
	case StepOTP:
		if r.Phone == "" {
			return nil, fmt.Errorf("otp flow %s: otp step without phone", r.ID)
		}
		f.State = OTPState{Phone: r.Phone, SentAt: r.SentAt, ResendAt: r.ResendAt, AttemptsAllowed: r.AttemptsAllowed}
	case StepSignup:
		if r.ShortTermToken == "" {
			return nil, fmt.Errorf("otp flow %s: signup step without short-term token", r.ID)
		}
		f.State = SignupState{Phone: r.Phone, ShortTermToken: r.ShortTermToken}
	case StepDone:
		f.State = DoneState{Phone: r.Phone}
	default:
		return nil, fmt.Errorf("otp flow %s: unknown step %q", r.ID, r.Step)
	}
	return f, nil
}
