package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Email is a rendered message ready for a transport.
type Email struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// Mailer delivers a single email.
type Mailer interface {
	Send(ctx context.Context, e Email) error
}

// SMTPConfig describes one sender identity.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	Timeout  time.Duration
}

// SMTPMailer sends through an authenticated SMTP relay. Each sender identity
// gets its own instance so admin alerts and guest confirmations come from
// different mailboxes.
type SMTPMailer struct {
	cfg    SMTPConfig
	logger *zap.Logger
}

func NewSMTPMailer(cfg SMTPConfig, logger *zap.Logger) (*SMTPMailer, error) {
	if cfg.Host == "" || cfg.Username == "" {
		return nil, fmt.Errorf("smtp mailer initialization error: host and username are required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPMailer{cfg: cfg, logger: logger}, nil
}

// Sender is the address messages are sent from.
func (m *SMTPMailer) Sender() string {
	return m.cfg.Username
}

func (m *SMTPMailer) Send(ctx context.Context, e Email) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(m.cfg.FromName, m.cfg.Username); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(e.To); err != nil {
		return fmt.Errorf("set recipient %s: %w", e.To, err)
	}
	if e.ReplyTo != "" {
		if err := msg.ReplyTo(e.ReplyTo); err != nil {
			return fmt.Errorf("set reply-to %s: %w", e.ReplyTo, err)
		}
	}
	msg.Subject(e.Subject)
	msg.SetBodyString(mail.TypeTextHTML, e.HTML)

	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTLSConfig(&tls.Config{ServerName: m.cfg.Host}),
	}
	if m.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(m.cfg.Timeout))
	}
	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client (host=%s port=%d user=%s): %w", m.cfg.Host, m.cfg.Port, m.cfg.Username, err)
	}

	m.logger.Debug("sending email",
		zap.String("host", m.cfg.Host),
		zap.String("from", m.cfg.Username),
		zap.String("to", e.To))

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email (host=%s port=%d user=%s): %w", m.cfg.Host, m.cfg.Port, m.cfg.Username, err)
	}
	return nil
}
