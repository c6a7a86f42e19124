package usecases

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/domain/notification"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

type MarkReadUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewMarkReadUseCase(repo notification.Repository, logger logger.Interface) *MarkReadUseCase {
	return &MarkReadUseCase{
		repo:   repo,
		logger: logger,
	}
}

// Execute marks one notification as read. A notification owned by another
// user, already read or missing is left untouched and reported as unchanged.
func (uc *MarkReadUseCase) Execute(ctx context.Context, id, userID uint) (bool, error) {
	if id == 0 || userID == 0 {
		return false, errors.NewValidationError("notification id and user id are required")
	}

	rows, err := uc.repo.MarkRead(ctx, id, userID, biztime.NowUTC())
	if err != nil {
		uc.logger.Errorw("failed to mark notification as read", "id", id, "user_id", userID, "error", err)
		return false, errors.NewPersistenceError("failed to mark notification as read", err)
	}
	if rows == 0 {
		uc.logger.Debugw("mark read matched no unread notification", "id", id, "user_id", userID)
		return false, nil
	}

	uc.logger.Infow("notification marked as read", "id", id, "user_id", userID)
	return true, nil
}

type MarkAllReadUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewMarkAllReadUseCase(repo notification.Repository, logger logger.Interface) *MarkAllReadUseCase {
	return &MarkAllReadUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *MarkAllReadUseCase) Execute(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, errors.NewValidationError("user id is required")
	}

	rows, err := uc.repo.MarkAllRead(ctx, userID, biztime.NowUTC())
	if err != nil {
		uc.logger.Errorw("failed to mark all notifications as read", "user_id", userID, "error", err)
		return 0, errors.NewPersistenceError("failed to mark notifications as read", err)
	}

	uc.logger.Infow("notifications marked as read", "user_id", userID, "count", rows)
	return rows, nil
}
