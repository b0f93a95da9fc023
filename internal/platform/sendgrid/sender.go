// Package sendgrid provides an email Sender backed by the SendGrid API.
package sendgrid

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/aadi101204/Task-Manager-Api/internal/notify"
)

// Sender delivers notification emails through SendGrid.
type Sender struct {
	client *sendgrid.Client
	from   *sgmail.Email
	logger *slog.Logger
}

var _ notify.Sender = (*Sender)(nil)

// NewSender creates a Sender using the given API key and from address.
func NewSender(apiKey, fromAddress string, logger *slog.Logger) *Sender {
	return &Sender{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail("Task Manager", fromAddress),
		logger: logger,
	}
}

// Send implements notify.Sender.
func (s *Sender) Send(ctx context.Context, msg notify.Message) error {
	to := sgmail.NewEmail("", msg.Recipient)
	email := sgmail.NewSingleEmail(s.from, msg.Subject, to, msg.Body, "")

	resp, err := s.client.SendWithContext(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}

	if resp.StatusCode >= 400 {
		s.logger.Warn("sendgrid rejected email",
			"status_code", resp.StatusCode,
			"message_id", msg.ID)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	return nil
}
