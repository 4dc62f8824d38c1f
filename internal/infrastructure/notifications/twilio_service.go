package notifications

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"github.com/urmu/storefront/domain"
	"go.uber.org/zap"
)

// TwilioServiceImpl implements domain.NotificationService
type TwilioServiceImpl struct {
	client     *twilio.RestClient
	fromNumber string
	logger     *zap.Logger
}

// NewTwilioService creates a new Twilio notification service
func NewTwilioService(accountSID, authToken, fromNumber string, logger *zap.Logger) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	if logger == nil {
		logger = zap.NewNop()
	}

	return &TwilioServiceImpl{
		client:     client,
		fromNumber: fromNumber,
		logger:     logger,
	}
}

// SendSMS implements domain.NotificationService
func (t *TwilioServiceImpl) SendSMS(to, message string) error {
	if to == "" {
		return fmt.Errorf("failed to send SMS: empty recipient")
	}

	// Without a sender number the message is only logged
	if t.fromNumber == "" {
		t.logger.Info("sms not sent, twilio sender is not configured",
			zap.String("to", to), zap.String("body", message))
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	if resp.Sid != nil {
		t.logger.Debug("sms sent", zap.String("to", to), zap.String("sid", *resp.Sid))
	}
	return nil
}
