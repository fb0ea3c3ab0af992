// Package mailer sends transactional account emails. The interface keeps the
// service layer testable; production delivers through SendGrid, development
// logs instead.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SendGridMailer delivers through the SendGrid v3 API.
type SendGridMailer struct {
	APIKey   string
	From     string
	FromName string
	Host     string // override for tests; empty uses the SendGrid endpoint
}

func (m *SendGridMailer) Send(ctx context.Context, to, subject, body string) error {
	from := mail.NewEmail(m.FromName, m.From)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmailPlainText(from, subject, recipient, body)

	request := sendgrid.GetRequest(m.APIKey, "/v3/mail/send", m.Host)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(message)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("email delivery rejected with status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

// LogMailer writes the message to the log instead of delivering it. Default
// when no SendGrid key is configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	m.Logger.Info("mail (not delivered, sendgrid unconfigured)",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
