package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/urmu/storefront/domain"
)

// WholesaleServiceImpl implements domain.WholesaleService
type WholesaleServiceImpl struct {
	api       domain.WholesaleAPI
	notifier  domain.NotificationService
	events    domain.EventLogger
	opsNumber string
	logger    *zap.Logger
}

// NewWholesaleService creates the wholesale application service. New
// applications are announced by SMS to opsNumber when it is set.
func NewWholesaleService(api domain.WholesaleAPI, notifier domain.NotificationService, events domain.EventLogger, opsNumber string, logger *zap.Logger) domain.WholesaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WholesaleServiceImpl{
		api:       api,
		notifier:  notifier,
		events:    events,
		opsNumber: opsNumber,
		logger:    logger,
	}
}

// Apply validates and submits the application. Invalid forms never reach the backend.
func (s *WholesaleServiceImpl) Apply(ctx context.Context, session *domain.Session, app domain.WholesaleApplication) (*domain.WholesaleApplication, error) {
	app.NationalCode = strings.TrimSpace(app.NationalCode)
	if err := domain.ValidateWholesaleApplication(app); err != nil {
		return nil, err
	}

	created, err := s.api.SubmitWholesaleApplication(ctx, session.AccessToken, app)
	if err != nil {
		s.events.LogEvent(ctx, domain.NewEvent(domain.WholesaleAppliedEvent).
			WithPhone(session.Phone).WithSession(session.ID).WithError(err))
		return nil, fmt.Errorf("submit wholesale application: %w", err)
	}

	if s.opsNumber != "" {
		msg := fmt.Sprintf("درخواست فروشنده عمده جدید: %s (%s)", app.BusinessName, session.Phone)
		if err := s.notifier.SendSMS(s.opsNumber, msg); err != nil {
			s.logger.Warn("wholesale ops sms failed", zap.Error(err))
		}
	}
	s.events.LogEvent(ctx, domain.NewEvent(domain.WholesaleAppliedEvent).
		WithPhone(session.Phone).WithSession(session.ID).
		WithMetadata("application_id", created.ID))

	return created, nil
}

func (s *WholesaleServiceImpl) Status(ctx context.Context, session *domain.Session) (*domain.WholesaleApplication, error) {
	app, err := s.api.GetWholesaleApplication(ctx, session.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("get wholesale application: %w", err)
	}
	return app, nil
}
