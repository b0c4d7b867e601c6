// Package mail delivers passcode messages to customers.
package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopsecure/internal/core/domain/model/kernel"

	gomail "github.com/wneessen/go-mail"
)

// ErrNotConfigured is returned by SMTPNotifier when no server was configured.
var ErrNotConfigured = errors.New("smtp server is not configured")

type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
	Timeout  time.Duration
}

// SMTPNotifier sends plain-text mail over implicit TLS (SMTPS, usually port 465).
// The sender address doubles as the SMTP login when a password is set.
type SMTPNotifier struct {
	cfg   SMTPConfig
	login string
	now   func() time.Time
}

// NewSMTPNotifier checks the configuration and fills in defaults.
//
// Parameters:
//   - cfg: server, sender and credentials; Port defaults to 465 and Timeout to 10s
//
// Returns ErrNotConfigured when Host or Sender is empty, or an error when the
// sender is not a valid address.
func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	if cfg.Host == "" || cfg.Sender == "" {
		return nil, ErrNotConfigured
	}
	sender := gomail.NewMsg()
	if err := sender.From(cfg.Sender); err != nil {
		return nil, fmt.Errorf("parse sender: %w", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 465
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	n := &SMTPNotifier{cfg: cfg, login: sender.GetFrom()[0].Address, now: time.Now}
	if _, err := n.newClient(); err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return n, nil
}

// Send dials the server, delivers one message and closes the session.
func (n *SMTPNotifier) Send(ctx context.Context, to kernel.Email, subject, body string) error {
	msg, err := newMessage(n.cfg.Sender, to, subject, body, n.now())
	if err != nil {
		return err
	}

	client, err := n.newClient()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (n *SMTPNotifier) newClient() (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(n.cfg.Port),
		gomail.WithSSL(),
		gomail.WithTimeout(n.cfg.Timeout),
	}
	if n.cfg.Password != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(n.login),
			gomail.WithPassword(n.cfg.Password),
		)
	}
	return gomail.NewClient(n.cfg.Host, opts...)
}

// newMessage builds a UTF-8 plain-text message dated at date.
func newMessage(from string, to kernel.Email, subject, body string, date time.Time) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(to.String()); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetDateWithValue(date)
	msg.SetBodyString(gomail.TypeTextPlain, body)
	return msg, nil
}
