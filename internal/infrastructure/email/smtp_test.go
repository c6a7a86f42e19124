package email

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ticketdesk/ticketdesk/internal/shared/config"
)

func TestSMTPEmailService_NotConfigured(t *testing.T) {
	s := NewSMTPEmailService(config.SMTPConfig{})

	assert.False(t, s.IsConfigured())
	assert.ErrorIs(t, s.Send(Message{To: "bob@example.com"}), ErrEmailServiceNotConfigured)
}

func TestSMTPEmailService_RequiresRecipient(t *testing.T) {
	s := NewSMTPEmailService(config.SMTPConfig{Host: "smtp.example.com", Port: 587, FromAddress: "desk@example.com"})

	assert.True(t, s.IsConfigured())
	assert.Error(t, s.Send(Message{Subject: "x"}))
}

func TestSMTPEmailService_BuildMessageHeaders(t *testing.T) {
	s := NewSMTPEmailService(config.SMTPConfig{
		Host:        "smtp.example.com",
		FromAddress: "desk@example.com",
		FromName:    "Help Desk",
	})

	m := s.buildMessage(Message{
		To:        "bob@example.com",
		Subject:   "New message",
		PlainBody: "hello",
		HTMLBody:  "<p>hello</p>",
	})

	assert.Equal(t, []string{`"Help Desk" <desk@example.com>`}, m.GetHeader("From"))
	assert.Equal(t, []string{"bob@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"New message"}, m.GetHeader("Subject"))
}
