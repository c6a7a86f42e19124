package email

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/ticketdesk/ticketdesk/internal/shared/config"
)

var ErrEmailServiceNotConfigured = errors.New("email service not configured")

// Message is a multipart email with a plain text body and an HTML alternative.
type Message struct {
	To        string
	Subject   string
	PlainBody string
	HTMLBody  string
}

type SMTPEmailService struct {
	config config.SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(cfg config.SMTPConfig) *SMTPEmailService {
	return &SMTPEmailService{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// IsConfigured reports whether an SMTP host and sender address are set.
func (s *SMTPEmailService) IsConfigured() bool {
	return s.config.Host != "" && s.config.FromAddress != ""
}

func (s *SMTPEmailService) Send(msg Message) error {
	if !s.IsConfigured() {
		return ErrEmailServiceNotConfigured
	}
	if msg.To == "" {
		return errors.New("email recipient is required")
	}

	if err := s.dialer.DialAndSend(s.buildMessage(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPEmailService) buildMessage(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.PlainBody)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}
	return m
}

// SendNotificationEmail sends a notification copy. An empty htmlBody sends
// plain text only.
func (s *SMTPEmailService) SendNotificationEmail(to, subject, plainBody, htmlBody string) error {
	return s.Send(Message{
		To:        to,
		Subject:   subject,
		PlainBody: plainBody,
		HTMLBody:  htmlBody,
	})
}
