package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/urmu/storefront/domain"
)

func TestZapEventLogger_LogEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     *domain.Event
		wantLevel zapcore.Level
		check     func(t *testing.T, fields map[string]interface{})
	}{
		{
			name: "success event",
			event: domain.NewEvent(domain.UserLoginEvent).
				WithPhone("09123456789").
				WithSession("s1").
				WithMetadata("role", "customer"),
			wantLevel: zapcore.InfoLevel,
			check: func(t *testing.T, fields map[string]interface{}) {
				assert.Equal(t, "USER_LOGIN", fields["event_type"])
				assert.Equal(t, "0912*****89", fields["phone"])
				assert.Equal(t, "s1", fields["session_id"])
				assert.Equal(t, true, fields["success"])
			},
		},
		{
			name: "failed event",
			event: domain.NewEvent(domain.CheckoutFailedEvent).
				WithFlow("f1").
				WithError(errors.New("payment down")),
			wantLevel: zapcore.WarnLevel,
			check: func(t *testing.T, fields map[string]interface{}) {
				assert.Equal(t, "payment down", fields["error"])
				assert.Equal(t, "f1", fields["flow_id"])
				assert.Equal(t, false, fields["success"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			logger := NewEventLogger(zap.New(core))

			logger.LogEvent(context.Background(), tt.event)

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.wantLevel, entry.Level)
			assert.Equal(t, "events", entry.LoggerName)
			tt.check(t, entry.ContextMap())
		})
	}
}

func TestZapEventLogger_NilEvent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewEventLogger(zap.New(core))

	logger.LogEvent(context.Background(), nil)

	assert.Equal(t, 0, logs.Len())
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "0912*****89", maskPhone("09123456789"))
	assert.Equal(t, "12345", maskPhone("12345"))
}
