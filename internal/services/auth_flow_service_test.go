package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/mocks"
	"github.com/urmu/storefront/internal/otpflow"
)

type flowFixture struct {
	svc      *AuthFlowServiceImpl
	flows    *mocks.MockFlowStore
	authAPI  *mocks.MockAuthAPI
	sessions *mocks.MockSessionRepository
	tokens   *mocks.MockTokenService
	events   *mocks.MockEventLogger
	clock    *time.Time
}

func newFlowFixture(t *testing.T) *flowFixture {
	t.Helper()

	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	f := &flowFixture{
		flows:    mocks.NewMockFlowStore(),
		authAPI:  mocks.NewMockAuthAPI(),
		sessions: mocks.NewMockSessionRepository(),
		tokens:   mocks.NewMockTokenService(),
		events:   mocks.NewMockEventLogger(),
		clock:    &now,
	}
	svc := NewAuthFlowService(f.flows, f.authAPI, f.sessions, f.tokens, f.events, AuthFlowConfig{
		ResendWait:      60 * time.Second,
		AttemptsAllowed: 5,
		PhoneMinLength:  domain.MinPhoneLength,
		CodeLength:      domain.OTPCodeLength,
		SessionTTL:      720 * time.Hour,
	}).(*AuthFlowServiceImpl)
	svc.now = func() time.Time { return *f.clock }
	ids := 0
	svc.newID = func() string {
		ids++
		return fmt.Sprintf("id-%d", ids)
	}
	f.svc = svc
	return f
}

func (f *flowFixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func (f *flowFixture) seed(state otpflow.State) string {
	f.flows.Put(otpflow.Flow{ID: "seeded", State: state, CreatedAt: *f.clock})
	return "seeded"
}

func TestAuthFlowServiceImpl_Start(t *testing.T) {
	f := newFlowFixture(t)

	status, err := f.svc.Start(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "id-1", status.FlowID)
	assert.Equal(t, "phone", status.Step)

	stored, err := f.flows.Find(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, otpflow.StepPhone, stored.State.Step())
}

func TestAuthFlowServiceImpl_SubmitPhone(t *testing.T) {
	tests := []struct {
		name        string
		phone       string
		sendErr     error
		wantErr     error
		wantCalls   int
		wantStep    otpflow.Step
		wantEvent   domain.EventType
		checkStatus func(t *testing.T, status *domain.FlowStatus)
	}{
		{
			name:      "valid phone moves to otp with countdown",
			phone:     "09123456789",
			wantCalls: 1,
			wantStep:  otpflow.StepOTP,
			wantEvent: domain.OTPRequestedEvent,
			checkStatus: func(t *testing.T, status *domain.FlowStatus) {
				assert.Equal(t, "otp", status.Step)
				assert.Equal(t, "09123456789", status.Phone)
				assert.Equal(t, 60, status.ResendIn)
				assert.False(t, status.CanResend)
				assert.Equal(t, 5, status.AttemptsAllowed)
			},
		},
		{
			name:      "short phone is rejected without a backend call",
			phone:     "0912345678",
			wantErr:   domain.ErrPhoneTooShort,
			wantCalls: 0,
			wantStep:  otpflow.StepPhone,
		},
		{
			name:      "backend failure keeps the phone step",
			phone:     "09123456789",
			sendErr:   &domain.APIError{Status: 429, Message: "تعداد درخواست‌ها بیش از حد مجاز است"},
			wantCalls: 1,
			wantStep:  otpflow.StepPhone,
			wantEvent: domain.OTPRequestFailedEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFlowFixture(t)
			id := f.seed(otpflow.PhoneState{})
			calls := 0
			f.authAPI.SendOTPFunc = func(ctx context.Context, phone string) error {
				calls++
				assert.Equal(t, tt.phone, phone)
				return tt.sendErr
			}

			status, err := f.svc.SubmitPhone(context.Background(), id, tt.phone)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.sendErr != nil:
				var apiErr *domain.APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, "تعداد درخواست‌ها بیش از حد مجاز است", domain.UserMessage(err, "fallback"))
			default:
				require.NoError(t, err)
				tt.checkStatus(t, status)
			}
			assert.Equal(t, tt.wantCalls, calls)

			stored, err := f.flows.Find(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStep, stored.State.Step())
			if tt.wantEvent != "" {
				assert.Equal(t, []domain.EventType{tt.wantEvent}, f.events.Types())
			}
		})
	}
}

func TestAuthFlowServiceImpl_SubmitPhone_WrongStep(t *testing.T) {
	f := newFlowFixture(t)
	id := f.seed(otpflow.SignupState{Phone: "09123456789", ShortTermToken: "stt"})
	f.authAPI.SendOTPFunc = func(ctx context.Context, phone string) error {
		t.Fatal("backend must not be called")
		return nil
	}

	_, err := f.svc.SubmitPhone(context.Background(), id, "09123456789")

	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestAuthFlowServiceImpl_UnknownFlow(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()

	_, err := f.svc.Status(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrFlowNotFound)

	_, err = f.svc.SubmitPhone(ctx, "missing", "09123456789")
	assert.ErrorIs(t, err, domain.ErrFlowNotFound)

	_, err = f.svc.VerifyCode(ctx, "missing", "1234")
	assert.ErrorIs(t, err, domain.ErrFlowNotFound)
}

func TestAuthFlowServiceImpl_Resend(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()
	id := f.seed(otpflow.PhoneState{})
	sends := 0
	f.authAPI.SendOTPFunc = func(ctx context.Context, phone string) error {
		sends++
		return nil
	}

	_, err := f.svc.SubmitPhone(ctx, id, "09123456789")
	require.NoError(t, err)

	f.advance(59*time.Second + 500*time.Millisecond)
	_, err = f.svc.Resend(ctx, id)
	var waitErr *domain.ResendWaitError
	require.True(t, errors.As(err, &waitErr))
	assert.Equal(t, 1, waitErr.Remaining)
	assert.ErrorIs(t, err, domain.ErrResendNotReady)
	assert.Equal(t, 1, sends)

	f.advance(500 * time.Millisecond)
	status, err := f.svc.Resend(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, sends)
	assert.Equal(t, 60, status.ResendIn, "countdown restarts")

	status, err = f.svc.Status(ctx, id)
	require.NoError(t, err)
	assert.False(t, status.CanResend)
}

func TestAuthFlowServiceImpl_Resend_WrongStep(t *testing.T) {
	f := newFlowFixture(t)
	id := f.seed(otpflow.PhoneState{})

	_, err := f.svc.Resend(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestAuthFlowServiceImpl_VerifyCode(t *testing.T) {
	otpState := otpflow.OTPState{Phone: "09123456789", ResendAt: time.Date(2024, 3, 1, 10, 1, 0, 0, time.UTC)}

	tests := []struct {
		name         string
		code         string
		verification *domain.OTPVerification
		verifyErr    error
		loginErr     error
		wantErr      error
		wantStep     otpflow.Step
		wantResult   bool
		wantVerify   int
	}{
		{
			name:         "existing customer is logged in",
			code:         "1234",
			verification: &domain.OTPVerification{IsLoggedIn: true, ShortTermAccessToken: "stt"},
			wantStep:     otpflow.StepDone,
			wantResult:   true,
			wantVerify:   1,
		},
		{
			name:         "new customer goes to signup",
			code:         "1234",
			verification: &domain.OTPVerification{IsLoggedIn: false, ShortTermAccessToken: "stt"},
			wantStep:     otpflow.StepSignup,
			wantVerify:   1,
		},
		{
			name:       "three digit code makes no call",
			code:       "123",
			wantErr:    domain.ErrInvalidCode,
			wantStep:   otpflow.StepOTP,
			wantVerify: 0,
		},
		{
			name:       "non digit code makes no call",
			code:       "12a4",
			wantErr:    domain.ErrInvalidCode,
			wantStep:   otpflow.StepOTP,
			wantVerify: 0,
		},
		{
			name:         "empty short-term token",
			code:         "1234",
			verification: &domain.OTPVerification{IsLoggedIn: false},
			wantErr:      domain.ErrShortTermTokenEmpty,
			wantStep:     otpflow.StepOTP,
			wantVerify:   1,
		},
		{
			name:       "backend rejects the code",
			code:       "1234",
			verifyErr:  &domain.APIError{Status: 400, Message: "کد وارد شده صحیح نیست"},
			wantStep:   otpflow.StepOTP,
			wantVerify: 1,
		},
		{
			name:         "login failure keeps the otp step",
			code:         "1234",
			verification: &domain.OTPVerification{IsLoggedIn: true, ShortTermAccessToken: "stt"},
			loginErr:     &domain.APIError{Status: 500},
			wantStep:     otpflow.StepOTP,
			wantVerify:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFlowFixture(t)
			id := f.seed(otpState)
			verifies := 0
			f.authAPI.VerifyOTPFunc = func(ctx context.Context, phone, code string) (*domain.OTPVerification, error) {
				verifies++
				assert.Equal(t, "09123456789", phone)
				return tt.verification, tt.verifyErr
			}
			f.authAPI.LoginFunc = func(ctx context.Context, stt string) (string, error) {
				if tt.loginErr != nil {
					return "", tt.loginErr
				}
				return "access-" + stt, nil
			}

			status, err := f.svc.VerifyCode(context.Background(), id, tt.code)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.verifyErr != nil || tt.loginErr != nil:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, string(tt.wantStep), status.Step)
				assert.Equal(t, tt.wantResult, status.Result != nil)
			}
			assert.Equal(t, tt.wantVerify, verifies)

			stored, err := f.flows.Find(context.Background(), id)
			if tt.wantStep == otpflow.StepDone {
				assert.ErrorIs(t, err, domain.ErrFlowNotFound, "finished flows are removed")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStep, stored.State.Step())
			if signup, ok := stored.State.(otpflow.SignupState); ok {
				assert.Equal(t, "stt", signup.ShortTermToken)
			}
		})
	}
}

func TestAuthFlowServiceImpl_LoginCompletion(t *testing.T) {
	f := newFlowFixture(t)
	id := f.seed(otpflow.OTPState{Phone: "09123456789"})
	var created *domain.Session
	f.sessions.CreateFunc = func(ctx context.Context, session *domain.Session) error {
		created = session
		return nil
	}
	f.authAPI.ProfileFunc = func(ctx context.Context, accessToken string) (*domain.Profile, error) {
		assert.Equal(t, "access_token_for_short_term_token", accessToken)
		return &domain.Profile{ID: "u1", Phone: "09123456789", Role: "WHOLESALE_SELLER"}, nil
	}

	status, err := f.svc.VerifyCode(context.Background(), id, "1234")

	require.NoError(t, err)
	require.NotNil(t, status.Result)
	assert.Equal(t, "/", status.Result.RedirectTo)
	assert.Equal(t, "session_token_id-1", status.Result.SessionToken)
	assert.Equal(t, domain.RoleWholesale, status.Result.Role)
	assert.Equal(t, int64(720*3600), status.Result.ExpiresIn)

	require.NotNil(t, created)
	assert.Equal(t, "id-1", created.ID)
	assert.Equal(t, "access_token_for_short_term_token", created.AccessToken)
	assert.Equal(t, f.clock.Add(720*time.Hour), created.ExpiresAt)

	assert.Equal(t, []domain.EventType{domain.OTPVerifiedEvent, domain.UserLoginEvent}, f.events.Types())
}

func TestAuthFlowServiceImpl_ProfileFailureDefaultsToCustomer(t *testing.T) {
	f := newFlowFixture(t)
	id := f.seed(otpflow.OTPState{Phone: "09123456789"})
	f.authAPI.ProfileFunc = func(ctx context.Context, accessToken string) (*domain.Profile, error) {
		return nil, &domain.APIError{Status: 503}
	}

	status, err := f.svc.VerifyCode(context.Background(), id, "1234")

	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, status.Result.Role)
}

func TestAuthFlowServiceImpl_LoginDelayHonoursContext(t *testing.T) {
	f := newFlowFixture(t)
	f.svc.config.LoginDelay = time.Hour
	id := f.seed(otpflow.OTPState{Phone: "09123456789"})
	f.authAPI.LoginFunc = func(ctx context.Context, stt string) (string, error) {
		t.Fatal("login must not run after cancellation")
		return "", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := f.svc.VerifyCode(ctx, id, "1234")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAuthFlowServiceImpl_Signup(t *testing.T) {
	tests := []struct {
		name      string
		state     otpflow.State
		firstName string
		signupErr error
		wantErr   error
		wantStep  otpflow.Step
	}{
		{
			name:      "completes login",
			state:     otpflow.SignupState{Phone: "09123456789", ShortTermToken: "stt"},
			firstName: "علی",
			wantStep:  otpflow.StepDone,
		},
		{
			name:      "first name is required",
			state:     otpflow.SignupState{Phone: "09123456789", ShortTermToken: "stt"},
			firstName: "   ",
			wantErr:   domain.ErrFirstNameRequired,
			wantStep:  otpflow.StepSignup,
		},
		{
			name:      "not in signup step",
			state:     otpflow.OTPState{Phone: "09123456789"},
			firstName: "علی",
			wantErr:   domain.ErrIllegalTransition,
			wantStep:  otpflow.StepOTP,
		},
		{
			name:      "backend rejects signup",
			state:     otpflow.SignupState{Phone: "09123456789", ShortTermToken: "stt"},
			firstName: "علی",
			signupErr: &domain.APIError{Status: 400, Message: "نام معتبر نیست"},
			wantStep:  otpflow.StepSignup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFlowFixture(t)
			id := f.seed(tt.state)
			f.authAPI.SignupFunc = func(ctx context.Context, stt, first, last string) error {
				assert.Equal(t, "stt", stt)
				assert.Equal(t, "علی", first)
				assert.Equal(t, "", last)
				return tt.signupErr
			}

			status, err := f.svc.Signup(context.Background(), id, tt.firstName, "")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.signupErr != nil:
				assert.Equal(t, "نام معتبر نیست", domain.UserMessage(err, "fallback"))
			default:
				require.NoError(t, err)
				require.NotNil(t, status.Result)
				assert.Equal(t, "/", status.Result.RedirectTo)
			}

			stored, err := f.flows.Find(context.Background(), id)
			if tt.wantStep == otpflow.StepDone {
				assert.ErrorIs(t, err, domain.ErrFlowNotFound, "finished flows are removed")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStep, stored.State.Step())
		})
	}
}

func TestAuthFlowServiceImpl_Reset(t *testing.T) {
	states := []otpflow.State{
		otpflow.PhoneState{},
		otpflow.OTPState{Phone: "09123456789"},
		otpflow.SignupState{Phone: "09123456789", ShortTermToken: "stt"},
	}
	for _, state := range states {
		t.Run(string(state.Step()), func(t *testing.T) {
			f := newFlowFixture(t)
			id := f.seed(state)

			status, err := f.svc.Reset(context.Background(), id)

			require.NoError(t, err)
			assert.Equal(t, "phone", status.Step)
			stored, err := f.flows.Find(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, otpflow.PhoneState{}, stored.State)
		})
	}

	f := newFlowFixture(t)
	_, err := f.svc.Reset(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrFlowNotFound)
}

func TestAuthFlowServiceImpl_FinishedFlowDeleteFailureIsIgnored(t *testing.T) {
	f := newFlowFixture(t)
	id := f.seed(otpflow.SignupState{Phone: "09123456789", ShortTermToken: "stt"})
	f.flows.DeleteFunc = func(ctx context.Context, id string) error {
		return errors.New("redis down")
	}

	status, err := f.svc.Signup(context.Background(), id, "علی", "")

	require.NoError(t, err)
	require.NotNil(t, status.Result)
	assert.Equal(t, "done", status.Step)
}

func TestAuthFlowServiceImpl_Back(t *testing.T) {
	f := newFlowFixture(t)
	id := f.seed(otpflow.OTPState{Phone: "09123456789"})
	f.authAPI.SendOTPFunc = func(ctx context.Context, phone string) error {
		t.Fatal("back must not contact the backend")
		return nil
	}

	status, err := f.svc.Back(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "phone", status.Step)
	assert.Empty(t, status.Phone)

	_, err = f.svc.Back(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
}

func TestAuthFlowServiceImpl_Logout(t *testing.T) {
	f := newFlowFixture(t)
	var deleted string
	f.sessions.DeleteFunc = func(ctx context.Context, sessionID string) error {
		deleted = sessionID
		return nil
	}

	err := f.svc.Logout(context.Background(), &domain.Session{ID: "s1", Phone: "09123456789"})

	require.NoError(t, err)
	assert.Equal(t, "s1", deleted)
	assert.Equal(t, []domain.EventType{domain.UserLogoutEvent}, f.events.Types())

	assert.ErrorIs(t, f.svc.Logout(context.Background(), nil), domain.ErrSessionNotFound)
}

func TestSessionRole(t *testing.T) {
	tests := map[string]string{
		"wholesale":        domain.RoleWholesale,
		"WHOLESALE_SELLER": domain.RoleWholesale,
		"customer":         domain.RoleCustomer,
		"":                 domain.RoleCustomer,
		"admin":            domain.RoleCustomer,
	}
	for in, want := range tests {
		if got := sessionRole(in); got != want {
			t.Errorf("sessionRole(%q) = %q, want %q", in, got, want)
		}
	}
}
