package usecases

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/application/notification/dto"
	"github.com/ticketdesk/ticketdesk/internal/domain/notification"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

type ListNotificationsUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewListNotificationsUseCase(repo notification.Repository, logger logger.Interface) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, userID uint, unreadOnly bool) (*dto.ListNotificationsResponse, error) {
	if userID == 0 {
		return nil, errors.NewValidationError("user id is required")
	}

	items, err := uc.repo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		uc.logger.Errorw("failed to list notifications", "user_id", userID, "error", err)
		return nil, errors.NewPersistenceError("failed to list notifications", err)
	}

	unread, err := uc.repo.CountUnread(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to count unread notifications", "user_id", userID, "error", err)
		return nil, errors.NewPersistenceError("failed to count unread notifications", err)
	}

	resp := &dto.ListNotificationsResponse{
		Items:       make([]dto.NotificationResponse, 0, len(items)),
		UnreadCount: unread,
	}
	for _, n := range items {
		resp.Items = append(resp.Items, dto.ToNotificationResponse(n))
	}
	return resp, nil
}
