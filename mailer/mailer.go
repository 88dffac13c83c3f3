package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/blogem/personal-site/config"
)

// Message is a plain-text email with a single sender and its recipients
type Message struct {
	FromName    string
	FromAddress string
	To          []string
	Subject     string
	Body        string
}

// Sender delivers outbound email
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender sends mail through an SMTP relay
type SMTPSender struct {
	cfg config.MailConfig
}

// NewSMTPSender creates a sender for the configured SMTP server
func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send dials the server, sends msg and closes the connection
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := BuildMsg(msg)
	if err != nil {
		return err
	}

	client, err := s.newClient()
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *SMTPSender) newClient() (*mail.Client, error) {
	if s.cfg.Host == "" {
		return nil, errors.New("mail server is not configured")
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	if s.cfg.UseTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	return mail.NewClient(s.cfg.Host, opts...)
}

// BuildMsg converts a Message into a go-mail message
func BuildMsg(msg Message) (*mail.Msg, error) {
	if len(msg.To) == 0 {
		return nil, errors.New("email has no recipients")
	}

	m := mail.NewMsg()

	if msg.FromName != "" {
		if err := m.FromFormat(msg.FromName, msg.FromAddress); err != nil {
			return nil, fmt.Errorf("invalid sender %q: %w", msg.FromAddress, err)
		}
	} else if err := m.From(msg.FromAddress); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", msg.FromAddress, err)
	}

	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}

	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	return m, nil
}
