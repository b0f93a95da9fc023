package notify

import (
	"context"

	"github.com/google/uuid"
)

// Message is a single email notification awaiting delivery.
type Message struct {
	// ID uniquely identifies the message for log correlation.
	ID uuid.UUID

	// Recipient is the destination email address.
	Recipient string

	// Subject is the email subject line.
	Subject string

	// Body is the plain-text email body.
	Body string
}

// NewMessage creates a Message with a fresh ID.
func NewMessage(recipient, subject, body string) Message {
	return Message{
		ID:        uuid.New(),
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	}
}

// Enqueuer accepts messages for asynchronous delivery. Callers must not
// block on delivery; Enqueue returns immediately.
type Enqueuer interface {
	// Enqueue adds a message to the delivery queue. It returns
	// ErrQueueFull when the queue has no capacity left and
	// ErrQueueClosed after the queue has been shut down.
	Enqueue(ctx context.Context, msg Message) error
}

// Sender performs the actual delivery of a single message.
type Sender interface {
	// Send delivers the message to its recipient. A non-nil error marks
	// the attempt as failed and eligible for retry.
	Send(ctx context.Context, msg Message) error
}
