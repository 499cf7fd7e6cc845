package mail

import (
	"context"
	"fmt"

	"shopkart/internal/config"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"
)

// Mailer sends plain-text notification emails.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// smtpMailer implements Mailer over an SMTP relay.
type smtpMailer struct {
	dialer *gomail.Dialer
	sender string
	logger zerolog.Logger
}

// NewSMTPMailer creates a mailer from the SMTP configuration.
func NewSMTPMailer(cfg config.SMTPConfig, logger zerolog.Logger) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		sender: cfg.Sender,
		logger: logger.With().Str("component", "smtp-mailer").Logger(),
	}
}

// Send delivers a single message. The ctx is consulted before dialing; the
// SMTP client itself has no cancellation support.
func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error().Err(err).Str("to", to).Str("subject", subject).Msg("failed to send email")
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	m.logger.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
