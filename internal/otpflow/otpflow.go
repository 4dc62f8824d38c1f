// Package otpflow is the phone -> otp -> signup -> done login wizard as an
// explicit state machine. Every state change goes through Transition.
package otpflow

import (
	"fmt"
	"time"

	"github.com/urmu/storefront/domain"
)

// Step names a wizard state
type Step string

const (
	StepPhone  Step = "phone"
	StepOTP    Step = "otp"
	StepSignup Step = "signup"
	StepDone   Step = "done"
)

// State is one of PhoneState, OTPState, SignupState or DoneState.
type State interface {
	Step() Step
	isState()
}

// PhoneState waits for a phone number
type PhoneState struct{}

// OTPState waits for the code sent to Phone
type OTPState struct {
	Phone           string
	SentAt          time.Time
	ResendAt        time.Time
	AttemptsAllowed int
}

// SignupState collects a new customer's name. It only exists with a short-term token.
type SignupState struct {
	Phone          string
	ShortTermToken string
}

// DoneState is terminal; the session has been established
type DoneState struct {
	Phone string
}

func (PhoneState) Step() Step  { return StepPhone }
func (OTPState) Step() Step    { return StepOTP }
func (SignupState) Step() Step { return StepSignup }
func (DoneState) Step() Step   { return StepDone }

func (PhoneState) isState()  {}
func (OTPState) isState()    {}
func (SignupState) isState() {}
func (DoneState) isState()   {}

// Remaining is the whole seconds left on the resend countdown
func (s OTPState) Remaining(now time.Time) int {
	left := s.ResendAt.Sub(now)
	if left <= 0 {
		return 0
	}
	secs := int(left / time.Second)
	if left%time.Second != 0 {
		secs++
	}
	return secs
}

// CanResend reports whether the countdown has reached zero
func (s OTPState) CanResend(now time.Time) bool {
	return s.Remaining(now) == 0
}

// Event drives a transition
type Event interface {
	isEvent()
}

// CodeSent: the backend accepted a send (phone -> otp) or a resend (otp -> otp).
type CodeSent struct {
	Phone           string
	At              time.Time
	Wait            time.Duration
	AttemptsAllowed int
}

// CodeVerified: the backend accepted the code. For an existing customer it is
// applied after the login completion succeeded.
type CodeVerified struct {
	IsLoggedIn     bool
	ShortTermToken string
}

// SignedUp: the signup call and login completion succeeded.
type SignedUp struct{}

// WentBack: the customer returned from the code step to edit the phone.
type WentBack struct{}

// Reset: discard any progress.
type Reset struct{}

func (CodeSent) isEvent()     {}
func (CodeVerified) isEvent() {}
func (SignedUp) isEvent()     {}
func (WentBack) isEvent()     {}
func (Reset) isEvent()        {}

// Transition returns the state that follows s on ev. Illegal pairs return s
// unchanged with an error wrapping domain.ErrIllegalTransition.
func Transition(s State, ev Event) (State, error) {
	if _, ok := ev.(Reset); ok {
		return PhoneState{}, nil
	}

	switch cur := s.(type) {
	case PhoneState:
		if e, ok := ev.(CodeSent); ok {
			return sentState(e), nil
		}

	case OTPState:
		switch e := ev.(type) {
		case CodeSent:
			if e.Phone != cur.Phone {
				break
			}
			if !cur.CanResend(e.At) {
				return cur, &domain.ResendWaitError{Remaining: cur.Remaining(e.At)}
			}
			return sentState(e), nil
		case CodeVerified:
			if e.ShortTermToken == "" {
				return cur, domain.ErrShortTermTokenEmpty
			}
			if e.IsLoggedIn {
				return DoneState{Phone: cur.Phone}, nil
			}
			return SignupState{Phone: cur.Phone, ShortTermToken: e.ShortTermToken}, nil
		case WentBack:
			return PhoneState{}, nil
		}

	case SignupState:
		if _, ok := ev.(SignedUp); ok {
			return DoneState{Phone: cur.Phone}, nil
		}
	}

	return s, fmt.Errorf("%w: %T in step %s", domain.ErrIllegalTransition, ev, s.Step())
}

func sentState(e CodeSent) OTPState {
	return OTPState{
		Phone:           e.Phone,
		SentAt:          e.At,
		ResendAt:        e.At.Add(e.Wait),
		AttemptsAllowed: e.AttemptsAllowed,
	}
}
