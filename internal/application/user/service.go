package user

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/application/user/dto"
	"github.com/ticketdesk/ticketdesk/internal/application/user/usecases"
	domainUser "github.com/ticketdesk/ticketdesk/internal/domain/user"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

type Service struct {
	createUser    *usecases.CreateUserUseCase
	getUser       *usecases.GetUserUseCase
	assignManager *usecases.AssignManagerUseCase
	listClients   *usecases.ListClientsUseCase
}

func NewService(userRepo domainUser.Repository, logger logger.Interface) *Service {
	return &Service{
		createUser:    usecases.NewCreateUserUseCase(userRepo, logger),
		getUser:       usecases.NewGetUserUseCase(userRepo),
		assignManager: usecases.NewAssignManagerUseCase(userRepo, logger),
		listClients:   usecases.NewListClientsUseCase(userRepo, logger),
	}
}

func (s *Service) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	return s.createUser.Execute(ctx, req)
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) (*dto.UserResponse, error) {
	return s.getUser.ByEmail(ctx, email)
}

func (s *Service) AssignManager(ctx context.Context, userID uint, managerID *uint) (*dto.UserResponse, error) {
	return s.assignManager.Execute(ctx, usecases.AssignManagerCommand{UserID: userID, ManagerID: managerID})
}

func (s *Service) ListClients(ctx context.Context, managerID uint) ([]*dto.UserResponse, error) {
	return s.listClients.Execute(ctx, managerID)
}
