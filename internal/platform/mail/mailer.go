// Copyright (c) 2026 Critiq. All rights reserved.
// Author: dev@critiq.app

/*
Package mail provides the outbound mail transport used for confirmation-code
delivery.

Delivery is best-effort: callers fire messages asynchronously, failures are
logged and never retried. The domain layer depends only on the [Mailer]
interface so tests can capture messages in memory.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"
)

// Mailer is the outbound transport contract.
type Mailer interface {
	// Send delivers a plain-text message to the recipients.
	Send(ctx context.Context, subject, body string, recipients ...string) error
}

// # SMTP Transport

// SMTPMailer implements [Mailer] over an authenticated SMTP connection.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

// NewSMTPMailer constructs an SMTP-backed mailer.
//
// # Parameters
//   - host, port: SMTP server endpoint.
//   - username, password: SMTP credentials (PLAIN auth).
//   - from: Envelope sender address.
func NewSMTPMailer(host string, port int, username, password, from string) (*SMTPMailer, error) {
	client, err := gomail.NewClient(host,
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(username),
		gomail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("mail: failed to create SMTP client: %w", err)
	}

	return &SMTPMailer{client: client, from: from}, nil
}

// Send delivers a single plain-text message.
func (mailer *SMTPMailer) Send(ctx context.Context, subject, body string, recipients ...string) error {
	message := gomail.NewMsg()

	if err := message.From(mailer.from); err != nil {
		return fmt.Errorf("mail: invalid sender address: %w", err)
	}
	if err := message.To(recipients...); err != nil {
		return fmt.Errorf("mail: invalid recipient address: %w", err)
	}

	message.Subject(subject)
	message.SetBodyString(gomail.TypeTextPlain, body)

	if err := mailer.client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("mail: delivery failed: %w", err)
	}

	return nil
}

// # Development Transport

// LogMailer implements [Mailer] by writing messages to the structured log.
// It is the default transport when no SMTP host is configured.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer constructs a log-only mailer.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message instead of delivering it.
func (mailer *LogMailer) Send(ctx context.Context, subject, body string, recipients ...string) error {
	mailer.logger.InfoContext(ctx, "mail_logged_instead_of_sent",
		slog.String("subject", subject),
		slog.Any("recipients", recipients),
		slog.String("body", body),
	)
	return nil
}
