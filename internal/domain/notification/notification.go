package notification

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	vo "github.com/ticketdesk/ticketdesk/internal/domain/notification/valueobjects"
)

const (
	maxTitleLength   = 255
	maxMessageLength = 4000
)

// UserRef and TicketRef are the eager-loaded references returned by list
// queries. They are nil on freshly created notifications.
type UserRef struct {
	ID          uint
	Email       string
	DisplayName string
}

type TicketRef struct {
	ID    uint
	Title string
}

type Notification struct {
	id              uint
	userID          uint
	title           string
	message         string
	kind            vo.NotificationType
	isRead          bool
	readAt          *time.Time
	createdAt       time.Time
	relatedTicketID *uint
	sentByUserID    *uint

	sentBy        *UserRef
	relatedTicket *TicketRef
}

func NewNotification(
	userID uint,
	title string,
	message string,
	notificationType vo.NotificationType,
	relatedTicketID *uint,
	sentByUserID *uint,
	createdAt time.Time,
) (*Notification, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !notificationType.IsValid() {
		return nil, fmt.Errorf("invalid notification type")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("message is required")
	}
	if utf8.RuneCountInString(message) > maxMessageLength {
		return nil, fmt.Errorf("message exceeds maximum length of %d characters", maxMessageLength)
	}

	return &Notification{
		userID:          userID,
		title:           title,
		message:         message,
		kind:            notificationType,
		createdAt:       createdAt.UTC(),
		relatedTicketID: relatedTicketID,
		sentByUserID:    sentByUserID,
	}, nil
}

func ReconstructNotification(
	id, userID uint,
	title, message string,
	notificationType vo.NotificationType,
	isRead bool,
	readAt *time.Time,
	createdAt time.Time,
	relatedTicketID, sentByUserID *uint,
	sentBy *UserRef,
	relatedTicket *TicketRef,
) (*Notification, error) {
	if id == 0 {
		return nil, fmt.Errorf("notification ID cannot be zero")
	}
	if !notificationType.IsValid() {
		return nil, fmt.Errorf("invalid notification type")
	}
	return &Notification{
		id:              id,
		userID:          userID,
		title:           title,
		message:         message,
		kind:            notificationType,
		isRead:          isRead,
		readAt:          readAt,
		createdAt:       createdAt,
		relatedTicketID: relatedTicketID,
		sentByUserID:    sentByUserID,
		sentBy:          sentBy,
		relatedTicket:   relatedTicket,
	}, nil
}

func (n *Notification) ID() uint { return n.id }
func (n *Notification) UserID() uint { return n.userID }
func (n *Notification) Title() string { return n.title }
func (n *Notification) Message() string { return n.message }
func (n *Notification) Type() vo.NotificationType { return n.kind }
func (n *Notification) IsRead() bool { return n.isRead }
func (n *Notification) ReadAt() *time.Time { return n.readAt }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }
func (n *Notification) RelatedTicketID() *uint { return n.relatedTicketID }
func (n *Notification) SentByUserID() *uint { return n.sentByUserID }
func (n *Notification) SentBy() *UserRef { return n.sentBy }
func (n *Notification) RelatedTicket() *TicketRef { return n.relatedTicket }

func (n *Notification) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("notification ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("notification ID cannot be zero")
	}
	n.id = id
	return nil
}

// MarkAsRead sets the read flag once. It reports whether the state changed.
func (n *Notification) MarkAsRead(at time.Time) bool {
	if n.isRead {
		return false
	}
	at = at.UTC()
	n.isRead = true
	n.readAt = &at
	return true
}
