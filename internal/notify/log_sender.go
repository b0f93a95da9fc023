package notify

import (
	"context"
	"log/slog"
)

// LogSender is a Sender that writes the message to the log instead of
// delivering it. Used when no email provider is configured, typically in
// local development.
type LogSender struct {
	logger *slog.Logger
}

var _ Sender = (*LogSender)(nil)

// NewLogSender creates a LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send implements Sender by logging the message.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info("email delivery skipped, no provider configured",
		"message_id", msg.ID,
		"recipient", msg.Recipient,
		"subject", msg.Subject)
	return nil
}
