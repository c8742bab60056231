package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ErrMailRejected is returned when the mail provider answers with an error status
var ErrMailRejected = errors.New("mail rejected")

// go generate: mockery --name Mailer

// Mailer delivers one email
type Mailer interface {
	Send(ctx context.Context, toEmail, toName, subject, htmlContent, plainText string) error
}

// SendgridMailer sends through the SendGrid v3 API
type SendgridMailer struct {
	client    *sendgrid.Client
	fromEmail string
}

// NewSendgridMailer returns nil when no API key is configured
func NewSendgridMailer(apiKey, fromEmail string) *SendgridMailer {
	if apiKey == "" {
		return nil
	}
	return &SendgridMailer{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail}
}

// Send implements Mailer
func (m *SendgridMailer) Send(ctx context.Context, toEmail, toName, subject, htmlContent, plainText string) error {
	from := mail.NewEmail("CityFix", m.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("%w: sendgrid status %d: %s", ErrMailRejected, response.StatusCode, response.Body)
	}
	return nil
}
