package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/otpflow"
)

// AuthFlowConfig holds the OTP wizard settings
type AuthFlowConfig struct {
	ResendWait      time.Duration
	AttemptsAllowed int
	PhoneMinLength  int
	CodeLength      int
	LoginDelay      time.Duration
	SessionTTL      time.Duration
}

// AuthFlowServiceImpl implements domain.AuthFlowService
type AuthFlowServiceImpl struct {
	flows       otpflow.Store
	authAPI     domain.AuthAPI
	sessionRepo domain.SessionRepository
	tokenSvc    domain.TokenService
	events      domain.EventLogger
	config      AuthFlowConfig
	now         func() time.Time
	newID       func() string
}

// NewAuthFlowService creates the OTP login wizard
func NewAuthFlowService(
	flows otpflow.Store,
	authAPI domain.AuthAPI,
	sessionRepo domain.SessionRepository,
	tokenSvc domain.TokenService,
	events domain.EventLogger,
	config AuthFlowConfig,
) domain.AuthFlowService {
	return &AuthFlowServiceImpl{
		flows:       flows,
		authAPI:     authAPI,
		sessionRepo: sessionRepo,
		tokenSvc:    tokenSvc,
		events:      events,
		config:      config,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Start implements domain.AuthFlowService
func (s *AuthFlowServiceImpl) Start(ctx context.Context) (*domain.FlowStatus, error) {
	flow := &otpflow.Flow{
		ID:        s.newID(),
		State:     otpflow.PhoneState{},
		CreatedAt: s.now(),
	}
	if err := s.flows.Save(ctx, flow); err != nil {
		return nil, fmt.Errorf("failed to save otp flow: %w", err)
	}
	return s.status(flow), nil
}

// Status implements domain.AuthFlowService
func (s *AuthFlowServiceImpl) Status(ctx context.Context, flowID string) (*domain.FlowStatus, error) {
	flow, err := s.flows.Find(ctx, flowID)
	if err != nil {
		return nil, err
	}
	return s.status(flow), nil
}

// SubmitPhone sends the first code. Short phones never reach the backend.
func (s *AuthFlowServiceImpl) SubmitPhone(ctx context.Context, flowID, phone string) (*domain.FlowStatus, error) {
	phone = strings.TrimSpace(phone)
	if err := domain.ValidatePhone(phone, s.config.PhoneMinLength); err != nil {
		return nil, err
	}

	flow, err := s.flows.Find(ctx, flowID)
	if err != nil {
		return nil, err
	}
	if _, ok := flow.State.(otpflow.PhoneState); !ok {
		return nil, illegalStep(flow, "submit phone")
	}

	return s.sendCode(ctx, flow, phone)
}

// Resend re-sends the code once the countdown has reached zero
func (s *AuthFlowServiceImpl) Resend(ctx context.Context, flowID string) (*domain.FlowStatus, error) {
	flow, err := s.flows.Find(ctx, flowID)
	if err != nil {
		return nil, err
	}
	otp, ok := flow.State.(otpflow.OTPState)
	if !ok {
		return nil, illegalStep(flow, "resend")
	}
	now := s.now()
	if !otp.CanResend(now) {
		return nil, &domain.ResendWaitError{Remaining: otp.Remaining(now)}
	}

	return s.sendCode(ctx, flow, otp.Phone)
}

func (s *AuthFlowServiceImpl) sendCode(ctx context.Context, flow *otpflow.Flow, phone string) (*domain.FlowStatus, error) {
	if err := s.authAPI.SendOTP(ctx, phone); err != nil {
		s.events.LogEvent(ctx, domain.NewEvent(domain.OTPRequestFailedEvent).
			WithPhone(phone).WithFlow(flow.ID).WithError(err))
		return nil, fmt.Errorf("send otp: %w", err)
	}

	next, err := otpflow.Transition(flow.State, otpflow.CodeSent{
		Phone:           phone,
		At:              s.now(),
		Wait:            s.config.ResendWait,
		AttemptsAllowed: s.config.AttemptsAllowed,
	})
	if err != nil {
		return nil, err
	}
	flow.State = next
	if err := s.flows.Save(ctx, flow); err != nil {
		return nil, fmt.Errorf("failed to save otp flow: %w", err)
	}

	s.events.LogEvent(ctx, domain.NewEvent(domain.OTPRequestedEvent).WithPhone(phone).WithFlow(flow.ID))
	return s.status(flow), nil
}

// VerifyCode checks the code. Existing customers are logged in right away,
// new ones move on to signup with the short-term token.
func (s *AuthFlowServiceImpl) VerifyCode(ctx context.Context, flowID, code string) (*domain.FlowStatus, error) {
	if err := domain.ValidateOTPCode(code, s.config.CodeLength); err != nil {
		return nil, err
	}

	flow, err := s.flows.Find(ctx, flowID)
	if err != nil {
		return nil, err
	}
	otp, ok := flow.State.(otpflow.OTPState)
	if !ok {
		return nil, illegalStep(flow, "verify code")
	}

	verification, err := s.authAPI.VerifyOTP(ctx, otp.Phone, code)
	if err != nil {
		s.events.LogEvent(ctx, domain.NewEvent(domain.OTPVerifyFailedEvent).
			WithPhone(otp.Phone).WithFlow(flow.ID).WithError(err))
		return nil, fmt.Errorf("verify otp: %w", err)
	}
	if verification.ShortTermAccessToken == "" {
		return nil, domain.ErrShortTermTokenEmpty
	}
	s.events.LogEvent(ctx, domain.NewEvent(domain.OTPVerifiedEvent).
		WithPhone(otp.Phone).WithFlow(flow.ID).
		WithMetadata("is_logged_in", verification.IsLoggedIn))

	var result *domain.AuthResult
	if verification.IsLoggedIn {
		result, err = s.completeLogin(ctx, flow.ID, otp.Phone, verification.ShortTermAccessToken)
		if err != nil {
			return nil, err
		}
	}

	next, err := otpflow.Transition(otp, otpflow.CodeVerified{
		IsLoggedIn:     verification.IsLoggedIn,
		ShortTermToken: verification.ShortTermAccessToken,
	})
	if err != nil {
		return nil, err
	}
	flow.State = next
	if err := s.persist(ctx, flow); err != nil {
		return nil, err
	}

	status := s.status(flow)
	status.Result = result
	return status, nil
}

// Signup registers a new customer under the short-term token, then logs in
func (s *AuthFlowServiceImpl) Signup(ctx context.Context, flowID, firstName, lastName string) (*domain.FlowStatus, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return nil, &domain.FieldError{Field: "firstName", Err: domain.ErrFirstNameRequired}
	}

	flow, err := s.flows.Find(ctx, flowID)
	if err != nil {
		return nil, err
	}
	signup, ok := flow.State.(otpflow.SignupState)
	if !ok {
		return nil, illegalStep(flow, "signup")
	}

	if err := s.authAPI.Signup(ctx, signup.ShortTermToken, firstName, lastName); err != nil {
		s.events.LogEvent(ctx, domain.NewEvent(domain.UserSignupEvent).
			WithPhone(signup.Phone).WithFlow(flow.ID).WithError(err))
		return nil, fmt.Errorf("signup: %w", err)
	}
	s.events.LogEvent(ctx, domain.NewEvent(domain.UserSignupEvent).WithPhone(signup.Phone).WithFlow(flow.ID))

	result, err := s.completeLogin(ctx, flow.ID, signup.Phone, signup.ShortTermToken)
	if err != nil {
		return nil, err
	}

	next, err := otpflow.Transition(signup, otpflow.SignedUp{})
	if err != nil {
		return nil, err
	}
	flow.State = next
	if err := s.persist(ctx, flow); err != nil {
		return nil, err
	}

	status := s.status(flow)
	status.Result = result
	return status, nil
}

// Back returns from the code step to the phone step without contacting the backend
func (s *AuthFlowServiceImpl) Back(ctx context.Context, flowID string) (*domain.FlowStatus, error) {
	flow, err := s.flows.Find(ctx, flowID)
	if err != nil {
		return nil, err
	}

	next, err := otpflow.Transition(flow.State, otpflow.WentBack{})
	if err != nil {
		return nil, err
	}
	flow.State = next
	if err := s.flows.Save(ctx, flow); err != nil {
		return nil, fmt.Errorf("failed to save otp flow: %w", err)
	}
	return s.status(flow), nil
}

// Reset discards any progress and returns the flow to the phone step
func (s *AuthFlowServiceImpl) Reset(ctx context.Context, flowID string) (*domain.FlowStatus, error) {
	flow, err := s.flows.Find(ctx, flowID)
	if err != nil {
		return nil, err
	}

	next, err := otpflow.Transition(flow.State, otpflow.Reset{})
	if err != nil {
		return nil, err
	}
	flow.State = next
	if err := s.persist(ctx, flow); err != nil {
		return nil, err
	}
	return s.status(flow), nil
}

// persist saves the flow. A finished flow is removed instead; its session
// has already been handed to the client.
func (s *AuthFlowServiceImpl) persist(ctx context.Context, flow *otpflow.Flow) error {
	if _, done := flow.State.(otpflow.DoneState); done {
		// a failed delete is left to the store's TTL
		_ = s.flows.Delete(ctx, flow.ID)
		return nil
	}
	if err := s.flows.Save(ctx, flow); err != nil {
		return fmt.Errorf("failed to save otp flow: %w", err)
	}
	return nil
}

// Logout destroys the session together with the backend access token
func (s *AuthFlowServiceImpl) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return domain.ErrSessionNotFound
	}
	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.events.LogEvent(ctx, domain.NewEvent(domain.UserLogoutEvent).
		WithPhone(session.Phone).WithSession(session.ID))
	return nil
}

// completeLogin exchanges the short-term token and opens a storefront session
func (s *AuthFlowServiceImpl) completeLogin(ctx context.Context, flowID, phone, shortTermToken string) (*domain.AuthResult, error) {
	if s.config.LoginDelay > 0 {
		timer := time.NewTimer(s.config.LoginDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	accessToken, err := s.authAPI.Login(ctx, shortTermToken)
	if err != nil {
		s.events.LogEvent(ctx, domain.NewEvent(domain.LoginFailedEvent).
			WithPhone(phone).WithFlow(flowID).WithError(err))
		return nil, fmt.Errorf("login: %w", err)
	}

	loginEvent := domain.NewEvent(domain.UserLoginEvent).WithPhone(phone).WithFlow(flowID)

	role := domain.RoleCustomer
	profile, err := s.authAPI.Profile(ctx, accessToken)
	if err != nil {
		loginEvent.WithMetadata("profile_error", err.Error())
	} else {
		role = sessionRole(profile.Role)
		if profile.Phone != "" {
			phone = profile.Phone
		}
	}

	now := s.now()
	session := &domain.Session{
		ID:          s.newID(),
		AccessToken: accessToken,
		Phone:       phone,
		Role:        role,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.config.SessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.tokenSvc.GenerateSessionToken(session)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	s.events.LogEvent(ctx, loginEvent.WithSession(session.ID).WithMetadata("role", role))

	return &domain.AuthResult{
		SessionToken: token,
		SessionID:    session.ID,
		Role:         role,
		ExpiresIn:    int64(s.config.SessionTTL.Seconds()),
		RedirectTo:   "/",
	}, nil
}

func (s *AuthFlowServiceImpl) status(flow *otpflow.Flow) *domain.FlowStatus {
	status := &domain.FlowStatus{
		FlowID: flow.ID,
		Step:   string(flow.State.Step()),
	}
	switch st := flow.State.(type) {
	case otpflow.OTPState:
		now := s.now()
		status.Phone = st.Phone
		status.ResendIn = st.Remaining(now)
		status.CanResend = st.CanResend(now)
		status.AttemptsAllowed = st.AttemptsAllowed
	case otpflow.SignupState:
		status.Phone = st.Phone
	case otpflow.DoneState:
		status.Phone = st.Phone
	}
	return status
}

// sessionRole maps a backend profile role onto a storefront role
func sessionRole(backendRole string) string {
	switch strings.ToLower(backendRole) {
	case "wholesale", "wholesale_seller", "wholesaleseller":
		return domain.RoleWholesale
	default:
		return domain.RoleCustomer
	}
}

func illegalStep(flow *otpflow.Flow, action string) error {
	return fmt.Errorf("%w: cannot %s in step %s", domain.ErrIllegalTransition, action, flow.State.Step())
}
