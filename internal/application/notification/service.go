// Package notification persists notifications and pushes them to the
// personal groups of their recipients.
package notification

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/application/notification/dto"
	"github.com/ticketdesk/ticketdesk/internal/application/notification/usecases"
	"github.com/ticketdesk/ticketdesk/internal/domain/notification"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/notification/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/hub"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

// Dispatcher is the boundary of the notification context. Notify and the
// group methods swallow and log failures; the REST-facing methods return them.
type Dispatcher struct {
	logger logger.Interface

	notify            *usecases.NotifyUseCase
	notifyMany        *usecases.NotifyManyUseCase
	listNotifications *usecases.ListNotificationsUseCase
	markRead          *usecases.MarkReadUseCase
	markAllRead       *usecases.MarkAllReadUseCase
	userGroup         *usecases.UserGroupUseCase
}

// NewDispatcher wires the use cases. email may be nil.
func NewDispatcher(
	repo notification.Repository,
	userRepo user.Repository,
	broadcaster hub.Broadcaster,
	membership hub.Membership,
	email *usecases.EmailFallback,
	logger logger.Interface,
) *Dispatcher {
	notify := usecases.NewNotifyUseCase(repo, broadcaster, email, logger)
	return &Dispatcher{
		logger: logger,

		notify:            notify,
		notifyMany:        usecases.NewNotifyManyUseCase(userRepo, notify, logger),
		listNotifications: usecases.NewListNotificationsUseCase(repo, logger),
		markRead:          usecases.NewMarkReadUseCase(repo, logger),
		markAllRead:       usecases.NewMarkAllReadUseCase(repo, logger),
		userGroup:         usecases.NewUserGroupUseCase(userRepo, membership, logger),
	}
}

func (d *Dispatcher) Notify(
	ctx context.Context,
	userID uint,
	title, message string,
	notificationType vo.NotificationType,
	relatedTicketID, sentByUserID *uint,
) {
	_, err := d.notify.Execute(ctx, usecases.NotifyCommand{
		UserID:          userID,
		Title:           title,
		Message:         message,
		Type:            notificationType,
		RelatedTicketID: relatedTicketID,
		SentByUserID:    sentByUserID,
	})
	if err != nil {
		d.logFailure("notify", err, "user_id", userID, "type", notificationType)
	}
}

// NotifyAll notifies every active user and returns how many were reached.
func (d *Dispatcher) NotifyAll(ctx context.Context, title, message string, notificationType vo.NotificationType, sentByUserID *uint) int {
	n, err := d.notifyMany.Execute(ctx, usecases.NotifyManyCommand{
		Title:        title,
		Message:      message,
		Type:         notificationType,
		SentByUserID: sentByUserID,
	})
	if err != nil {
		d.logFailure("notify all", err)
	}
	return n
}

// NotifyRole notifies every active user with role.
func (d *Dispatcher) NotifyRole(ctx context.Context, role uservo.Role, title, message string, notificationType vo.NotificationType, sentByUserID *uint) int {
	n, err := d.notifyMany.Execute(ctx, usecases.NotifyManyCommand{
		Role:         &role,
		Title:        title,
		Message:      message,
		Type:         notificationType,
		SentByUserID: sentByUserID,
	})
	if err != nil {
		d.logFailure("notify role", err, "role", role)
	}
	return n
}

func (d *Dispatcher) ListNotifications(ctx context.Context, userID uint, unreadOnly bool) (*dto.ListNotificationsResponse, error) {
	return d.listNotifications.Execute(ctx, userID, unreadOnly)
}

func (d *Dispatcher) MarkRead(ctx context.Context, id, userID uint) error {
	_, err := d.markRead.Execute(ctx, id, userID)
	return err
}

func (d *Dispatcher) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return d.markAllRead.Execute(ctx, userID)
}

func (d *Dispatcher) JoinUserGroup(ctx context.Context, conn *hub.Conn, email string) {
	if _, err := d.userGroup.Join(ctx, conn, email); err != nil {
		d.logFailure("join user group", err, "email", email, "conn_id", conn.ID())
	}
}

func (d *Dispatcher) LeaveUserGroup(ctx context.Context, conn *hub.Conn, email string) {
	if _, err := d.userGroup.Leave(ctx, conn, email); err != nil {
		d.logFailure("leave user group", err, "email", email, "conn_id", conn.ID())
	}
}

func (d *Dispatcher) logFailure(op string, err error, keysAndValues ...interface{}) {
	kv := append([]interface{}{"operation", op, "error_type", errors.TypeOf(err), "error", err}, keysAndValues...)
	if errors.IsNotFoundError(err) || errors.IsValidationError(err) {
		d.logger.Warnw("notification command dropped", kv...)
		return
	}
	d.logger.Errorw("notification command failed", kv...)
}
