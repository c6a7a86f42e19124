package notification

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	// ListByUser returns userID's notifications newest first, with sender
	// and related ticket loaded.
	ListByUser(ctx context.Context, userID uint, unreadOnly bool) ([]*Notification, error)
	// MarkRead flags id as read only when it belongs to userID and is unread.
	// It returns the number of rows changed (0 or 1).
	MarkRead(ctx context.Context, id, userID uint, at time.Time) (int64, error)
	// MarkAllRead flags every unread notification of userID in one statement.
	MarkAllRead(ctx context.Context, userID uint, at time.Time) (int64, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
}
