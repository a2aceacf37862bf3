package mfa

import (
	"context"

	"go.uber.org/zap"
)

// Sender delivers one-time codes to subjects. Real transports (mail, SMS
// gateways) live outside this service.
type Sender interface {
	SendOTP(ctx context.Context, subject string, channel Channel, code string) error
}

// LogSender is the development stub. It records that a delivery would have
// happened; the code itself is never logged.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates the stub.
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// SendOTP implements Sender.
func (s *LogSender) SendOTP(_ context.Context, subject string, channel Channel, _ string) error {
	s.logger.Debug("sendOTPStub",
		zap.String("subject", subject),
		zap.String("channel", string(channel)))
	return nil
}
