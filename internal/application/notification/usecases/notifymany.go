package usecases

import (
	"context"

	vo "github.com/ticketdesk/ticketdesk/internal/domain/notification/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

// NotifyManyCommand targets every active user, or only those with Role when set.
type NotifyManyCommand struct {
	Role         *uservo.Role
	Title        string
	Message      string
	Type         vo.NotificationType
	SentByUserID *uint
}

type NotifyManyUseCase struct {
	userRepo user.Repository
	notify   *NotifyUseCase
	logger   logger.Interface
}

func NewNotifyManyUseCase(userRepo user.Repository, notify *NotifyUseCase, logger logger.Interface) *NotifyManyUseCase {
	return &NotifyManyUseCase{
		userRepo: userRepo,
		notify:   notify,
		logger:   logger,
	}
}

// Execute notifies each target in turn. A failure for one user is logged and
// does not stop the others. It returns how many users were notified.
func (uc *NotifyManyUseCase) Execute(ctx context.Context, cmd NotifyManyCommand) (int, error) {
	if cmd.Role != nil && !cmd.Role.IsValid() {
		return 0, errors.NewValidationError("invalid role", cmd.Role.String())
	}

	var (
		targets []*user.User
		err     error
	)
	if cmd.Role != nil {
		targets, err = uc.userRepo.ListActiveByRole(ctx, *cmd.Role)
	} else {
		targets, err = uc.userRepo.ListActive(ctx)
	}
	if err != nil {
		uc.logger.Errorw("failed to load notification targets", "error", err)
		return 0, errors.NewPersistenceError("failed to load users", err)
	}

	notified := 0
	for _, u := range targets {
		_, err := uc.notify.Execute(ctx, NotifyCommand{
			UserID:       u.ID(),
			Title:        cmd.Title,
			Message:      cmd.Message,
			Type:         cmd.Type,
			SentByUserID: cmd.SentByUserID,
		})
		if err != nil {
			uc.logger.Warnw("failed to notify user, continuing",
				"user_id", u.ID(),
				"error", err,
			)
			continue
		}
		notified++
	}

	uc.logger.Infow("bulk notification finished",
		"targets", len(targets),
		"notified", notified,
	)
	return notified, nil
}
