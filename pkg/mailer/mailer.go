// Package mailer delivers transactional email through SendGrid.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Mailer interface {
	Send(ctx context.Context, msg *models.EmailMessage) error
}

type Option func(*sendGridMailer)

// WithBaseURL points the client at another SendGrid-compatible host.
func WithBaseURL(baseURL string) Option {
	return func(m *sendGridMailer) {
		m.client.Request.BaseURL = baseURL + "/v3/mail/send"
	}
}

type sendGridMailer struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendGridMailer(apiKey, fromEmail, fromName string, opts ...Option) Mailer {
	m := &sendGridMailer{client: sendgrid.NewSendClient(apiKey), fromEmail: fromEmail, fromName: fromName}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *sendGridMailer) Send(ctx context.Context, msg *models.EmailMessage) error {
	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(m.fromName, m.fromEmail))

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", msg.To))

	for _, bcc := range msg.BCC {
		personalization.AddBCCs(mail.NewEmail("", bcc))
	}

	personalization.Subject = msg.Subject
	message.AddPersonalizations(personalization)

	message.AddContent(mail.NewContent("text/plain", msg.Content))
	if msg.HTMLContent != "" {
		message.AddContent(mail.NewContent("text/html", msg.HTMLContent))
	}

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}

type logMailer struct {
	logger *slog.Logger
}

// NewLogMailer only logs messages. It stands in when no SendGrid key is configured.
func NewLogMailer(logger *slog.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(_ context.Context, msg *models.EmailMessage) error {
	m.logger.Info("Email not sent, no provider configured",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)

	return nil
}
