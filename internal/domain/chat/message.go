package chat

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxMessageLength = 4000

// Participant is the read-side view of a message sender.
type Participant struct {
	ID          uint
	Email       string
	DisplayName string
}

type Message struct {
	id              uint
	ticketID        uint
	senderID        uint
	body            string
	sentAt          time.Time
	isSystemMessage bool
	attachments     []*Attachment
	sender          *Participant
}

// NewMessage builds a user-authored message. body is kept as given.
func NewMessage(ticketID, senderID uint, body string, sentAt time.Time) (*Message, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if senderID == 0 {
		return nil, fmt.Errorf("sender ID is required")
	}
	if err := ValidateBody(body); err != nil {
		return nil, err
	}
	return &Message{
		ticketID: ticketID,
		senderID: senderID,
		body:     body,
		sentAt:   sentAt.UTC(),
	}, nil
}

// NewSystemMessage builds an automated message attributed to senderID.
func NewSystemMessage(ticketID, senderID uint, body string, sentAt time.Time) (*Message, error) {
	m, err := NewMessage(ticketID, senderID, body, sentAt)
	if err != nil {
		return nil, err
	}
	m.isSystemMessage = true
	return m, nil
}

func ReconstructMessage(
	id, ticketID, senderID uint,
	body string,
	sentAt time.Time,
	isSystemMessage bool,
	attachments []*Attachment,
	sender *Participant,
) *Message {
	return &Message{
		id:              id,
		ticketID:        ticketID,
		senderID:        senderID,
		body:            body,
		sentAt:          sentAt,
		isSystemMessage: isSystemMessage,
		attachments:     attachments,
		sender:          sender,
	}
}

func ValidateBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("message is required")
	}
	if utf8.RuneCountInString(body) > MaxMessageLength {
		return fmt.Errorf("message exceeds maximum length of %d characters", MaxMessageLength)
	}
	return nil
}

func (m *Message) ID() uint { return m.id }
func (m *Message) TicketID() uint { return m.ticketID }
func (m *Message) SenderID() uint { return m.senderID }
func (m *Message) Body() string { return m.body }
func (m *Message) SentAt() time.Time { return m.sentAt }
func (m *Message) IsSystemMessage() bool { return m.isSystemMessage }
func (m *Message) Attachments() []*Attachment { return m.attachments }

// Sender is populated only on reads that eager-load the sender.
func (m *Message) Sender() *Participant { return m.sender }

func (m *Message) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.id = id
	return nil
}

func (m *Message) Attach(a *Attachment) {
	m.attachments = append(m.attachments, a)
}
