package usecases

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/application/user/dto"
	domainUser "github.com/ticketdesk/ticketdesk/internal/domain/user"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

// ListClientsUseCase returns the users reporting to a manager.
type ListClientsUseCase struct {
	userRepo domainUser.Repository
	logger   logger.Interface
}

func NewListClientsUseCase(userRepo domainUser.Repository, logger logger.Interface) *ListClientsUseCase {
	return &ListClientsUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *ListClientsUseCase) Execute(ctx context.Context, managerID uint) ([]*dto.UserResponse, error) {
	manager, err := uc.userRepo.GetByID(ctx, managerID)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to load manager", err)
	}
	if manager == nil {
		return nil, errors.NewNotFoundError("manager not found")
	}

	clients, err := uc.userRepo.ListClients(ctx, managerID)
	if err != nil {
		uc.logger.Errorw("failed to list clients", "manager_id", managerID, "error", err)
		return nil, errors.NewPersistenceError("failed to list clients", err)
	}
	return dto.ToUserResponses(clients), nil
}
