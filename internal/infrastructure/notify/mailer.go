// Package notify sends transactional email. Delivery is a send-and-log
// side effect: the RSVP write path never fails because of it.
package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/MatiasOrellano/invitly-backend/internal/config"
)

type SMTPMailer struct {
	addr     string
	from     string
	username string
	password string
	host     string
}

func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.Port == "" {
		return nil, fmt.Errorf("smtp host and port are required")
	}

	return &SMTPMailer{
		addr:     cfg.Host + ":" + cfg.Port,
		from:     cfg.From,
		username: cfg.User,
		password: cfg.Password,
		host:     cfg.Host,
	}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	msg := []byte(
		"From: " + m.from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			body,
	)

	if err := smtp.SendMail(m.addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// NopMailer is used when SMTP is unconfigured, e.g. local development.
type NopMailer struct{}

func (NopMailer) Send(ctx context.Context, to, subject, body string) error {
	return nil
}
