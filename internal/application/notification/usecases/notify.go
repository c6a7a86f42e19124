package usecases

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/application/notification/dto"
	"github.com/ticketdesk/ticketdesk/internal/domain/notification"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/notification/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/hub"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

type NotifyCommand struct {
	UserID          uint
	Title           string
	Message         string
	Type            vo.NotificationType
	RelatedTicketID *uint
	SentByUserID    *uint
}

type NotifyResult struct {
	NotificationID uint
	Delivered      int
}

type NotifyUseCase struct {
	repo        notification.Repository
	broadcaster hub.Broadcaster
	email       *EmailFallback
	logger      logger.Interface
}

// NewNotifyUseCase creates the use case. email may be nil to disable the
// email fallback.
func NewNotifyUseCase(
	repo notification.Repository,
	broadcaster hub.Broadcaster,
	email *EmailFallback,
	logger logger.Interface,
) *NotifyUseCase {
	return &NotifyUseCase{
		repo:        repo,
		broadcaster: broadcaster,
		email:       email,
		logger:      logger,
	}
}

// Execute persists the notification and pushes it to the user's group.
func (uc *NotifyUseCase) Execute(ctx context.Context, cmd NotifyCommand) (*NotifyResult, error) {
	n, err := notification.NewNotification(
		cmd.UserID,
		cmd.Title,
		cmd.Message,
		cmd.Type,
		cmd.RelatedTicketID,
		cmd.SentByUserID,
		biztime.NowUTC(),
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.repo.Create(ctx, n); err != nil {
		uc.logger.Errorw("failed to persist notification",
			"user_id", cmd.UserID,
			"type", cmd.Type,
			"error", err,
		)
		return nil, errors.NewPersistenceError("failed to save notification", err)
	}

	delivered := uc.broadcaster.Broadcast(ctx, hub.UserGroup(n.UserID()), dto.EventReceiveNotification, dto.ToReceiveNotificationPayload(n))

	if uc.email.Applies(n.Type()) {
		uc.email.Enqueue(ctx, n)
	}

	uc.logger.Infow("notification dispatched",
		"notification_id", n.ID(),
		"user_id", n.UserID(),
		"type", n.Type(),
		"delivered", delivered,
	)

	return &NotifyResult{NotificationID: n.ID(), Delivered: delivered}, nil
}
