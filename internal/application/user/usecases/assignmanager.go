package usecases

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/application/user/dto"
	domainUser "github.com/ticketdesk/ticketdesk/internal/domain/user"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

type AssignManagerCommand struct {
	UserID    uint
	ManagerID *uint
}

// AssignManagerUseCase sets or clears a user's manager. The new link must not
// close a loop in the reporting hierarchy.
type AssignManagerUseCase struct {
	userRepo domainUser.Repository
	logger   logger.Interface
}

func NewAssignManagerUseCase(userRepo domainUser.Repository, logger logger.Interface) *AssignManagerUseCase {
	return &AssignManagerUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *AssignManagerUseCase) Execute(ctx context.Context, cmd AssignManagerCommand) (*dto.UserResponse, error) {
	uc.logger.Infow("executing assign manager use case",
		"user_id", cmd.UserID,
		"manager_id", cmd.ManagerID,
	)

	u, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to load user", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	if cmd.ManagerID != nil {
		manager, err := uc.userRepo.GetByID(ctx, *cmd.ManagerID)
		if err != nil {
			return nil, errors.NewPersistenceError("failed to load manager", err)
		}
		if manager == nil {
			return nil, errors.NewNotFoundError("manager not found")
		}
		if !manager.IsActive() {
			return nil, errors.NewValidationError("manager is not active")
		}

		cycle, err := domainUser.WouldCreateCycle(ctx, uc.managerOf, u.ID(), manager.ID())
		if err != nil {
			return nil, errors.NewPersistenceError("failed to walk manager hierarchy", err)
		}
		if cycle {
			uc.logger.Warnw("rejected manager assignment that would create a cycle",
				"user_id", u.ID(),
				"manager_id", manager.ID(),
			)
			return nil, errors.NewValidationError(domainUser.ErrManagerCycle.Error())
		}
	}

	if err := u.AssignManager(cmd.ManagerID); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.userRepo.UpdateManager(ctx, u.ID(), cmd.ManagerID); err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to update manager", "user_id", u.ID(), "error", err)
		return nil, errors.NewPersistenceError("failed to update manager", err)
	}

	uc.logger.Infow("manager assigned", "user_id", u.ID(), "manager_id", cmd.ManagerID)
	return dto.ToUserResponse(u), nil
}

func (uc *AssignManagerUseCase) managerOf(ctx context.Context, userID uint) (*uint, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	return u.ManagerID(), nil
}
