package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/urmu/storefront/domain"
)

// ZapEventLogger implements domain.EventLogger on a structured zap logger
type ZapEventLogger struct {
	logger *zap.Logger
}

// NewEventLogger writes events under the "events" logger name
func NewEventLogger(logger *zap.Logger) domain.EventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapEventLogger{logger: logger.Named("events")}
}

func (l *ZapEventLogger) LogEvent(ctx context.Context, event *domain.Event) {
	if event == nil {
		return
	}

	fields := []zap.Field{
		zap.String("event_type", string(event.Type)),
		zap.Time("timestamp", event.Timestamp),
		zap.Bool("success", event.Success),
	}
	if event.Phone != "" {
		fields = append(fields, zap.String("phone", maskPhone(event.Phone)))
	}
	if event.SessionID != "" {
		fields = append(fields, zap.String("session_id", event.SessionID))
	}
	if event.FlowID != "" {
		fields = append(fields, zap.String("flow_id", event.FlowID))
	}
	if len(event.Metadata) > 0 {
		fields = append(fields, zap.Any("metadata", event.Metadata))
	}

	if !event.Success {
		fields = append(fields, zap.String("error", event.ErrorMsg))
		l.logger.Warn("storefront event", fields...)
		return
	}
	l.logger.Info("storefront event", fields...)
}

// maskPhone keeps the first four and last two digits
func maskPhone(phone string) string {
	r := []rune(phone)
	if len(r) <= 6 {
		return phone
	}
	for i := 4; i < len(r)-2; i++ {
		r[i] = '*'
	}
	return string(r)
}
