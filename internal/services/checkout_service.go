package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/urmu/storefront/domain"
)

// CheckoutStatusPaymentFailed marks ledger rows whose order exists without a payment
const CheckoutStatusPaymentFailed = "payment_failed"

// CheckoutServiceImpl implements domain.CheckoutService
type CheckoutServiceImpl struct {
	orders         domain.OrderAPI
	ledger         domain.CheckoutLedger
	notifier       domain.NotificationService
	events         domain.EventLogger
	phoneMinLength int
	logger         *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	orders domain.OrderAPI,
	ledger domain.CheckoutLedger,
	notifier domain.NotificationService,
	events domain.EventLogger,
	phoneMinLength int,
	logger *zap.Logger,
) domain.CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutServiceImpl{
		orders:         orders,
		ledger:         ledger,
		notifier:       notifier,
		events:         events,
		phoneMinLength: phoneMinLength,
		logger:         logger,
	}
}

// Checkout creates the order and then its payment. A payment failure leaves
// the order in place; it is recorded in the ledger for follow-up.
func (s *CheckoutServiceImpl) Checkout(ctx context.Context, session *domain.Session, input domain.CreateOrderInput) (*domain.CheckoutResult, error) {
	if input.AddressID != "" {
		input.Address = nil
	} else {
		if input.Address == nil {
			return nil, &domain.FieldError{Field: "address", Err: domain.ErrMissingField}
		}
		if err := domain.ValidateAddress(*input.Address, s.phoneMinLength); err != nil {
			return nil, err
		}
	}

	order, err := s.orders.CreateOrder(ctx, session.AccessToken, input)
	if err != nil {
		s.events.LogEvent(ctx, domain.NewEvent(domain.CheckoutFailedEvent).
			WithPhone(session.Phone).WithSession(session.ID).
			WithMetadata("stage", "order").WithError(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrOrderFailed, err)
	}

	payment, err := s.orders.CreatePayment(ctx, session.AccessToken, order.ID)
	if err != nil {
		attempt := &domain.CheckoutAttempt{
			SessionID: session.ID,
			Phone:     session.Phone,
			OrderID:   order.ID,
			Status:    CheckoutStatusPaymentFailed,
			Reason:    err.Error(),
		}
		if recErr := s.ledger.Record(ctx, attempt); recErr != nil {
			s.logger.Error("failed to record checkout attempt",
				zap.String("order_id", order.ID), zap.Error(recErr))
		}
		s.events.LogEvent(ctx, domain.NewEvent(domain.CheckoutFailedEvent).
			WithPhone(session.Phone).WithSession(session.ID).
			WithMetadata("stage", "payment").WithMetadata("order_id", order.ID).WithError(err))
		return nil, fmt.Errorf("%w: order %s", domain.ErrPaymentFailed, order.ID)
	}

	if err := s.notifier.SendSMS(session.Phone, fmt.Sprintf("سفارش %s با موفقیت ثبت شد.", order.ID)); err != nil {
		s.logger.Warn("order confirmation sms failed", zap.String("order_id", order.ID), zap.Error(err))
	}
	s.events.LogEvent(ctx, domain.NewEvent(domain.OrderPlacedEvent).
		WithPhone(session.Phone).WithSession(session.ID).
		WithMetadata("order_id", order.ID).WithMetadata("payment_id", payment.ID))

	return &domain.CheckoutResult{Order: order, Payment: payment}, nil
}
