package usecases

import (
	"context"

	notificationvo "github.com/ticketdesk/ticketdesk/internal/domain/notification/valueobjects"
)

// Notifier persists and pushes a notification. Implementations log their own
// failures.
type Notifier interface {
	Notify(
		ctx context.Context,
		userID uint,
		title, message string,
		notificationType notificationvo.NotificationType,
		relatedTicketID, sentByUserID *uint,
	)
}
