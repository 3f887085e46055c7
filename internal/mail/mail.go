package mail

import (
	"context"
	"errors"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"kycapi/internal/config"
)

// Message is one HTML email.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Sender delivers messages. Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender sends through an authenticated SMTP relay with STARTTLS.
// A new connection is dialed per message.
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender validates cfg and returns a sender.
func NewSMTPSender(cfg config.SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.From == "" {
		return nil, errors.New("smtp sender address is required")
	}
	return &SMTPSender{cfg: cfg}, nil
}

var _ Sender = (*SMTPSender)(nil)

// Build converts msg into a go-mail message without sending it.
func (s *SMTPSender) Build(msg Message) (*gomail.Msg, error) {
	if len(msg.To) == 0 {
		return nil, errors.New("message has no recipients")
	}
	m := gomail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("set to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTML)
	return m, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := s.Build(msg)
	if err != nil {
		return err
	}

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}
	client, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail to %v: %w", msg.To, err)
	}
	return nil
}
