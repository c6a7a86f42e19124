package usecases

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/application/user/dto"
	domainUser "github.com/ticketdesk/ticketdesk/internal/domain/user"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

// CreateUserUseCase mirrors a directory account into the local users table.
type CreateUserUseCase struct {
	userRepo domainUser.Repository
	logger   logger.Interface
}

func NewCreateUserUseCase(userRepo domainUser.Repository, logger logger.Interface) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, request dto.CreateUserRequest) (*dto.UserResponse, error) {
	uc.logger.Infow("executing create user use case", "email", request.Email)

	role, err := vo.NewRole(request.Role)
	if err != nil {
		return nil, errors.NewValidationError("invalid role", request.Role)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, request.Email)
	if err != nil {
		uc.logger.Errorw("database error while checking for existing user", "email", request.Email, "error", err)
		return nil, errors.NewPersistenceError("failed to check existing user", err)
	}
	if existing != nil {
		uc.logger.Warnw("user with email already exists", "email", request.Email)
		return nil, errors.NewConflictError("user with this email already exists", request.Email)
	}

	u, err := domainUser.NewUser(request.Email, request.FirstName, request.LastName, request.Department, role)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create user", "email", request.Email, "error", err)
		return nil, errors.NewPersistenceError("failed to create user", err)
	}

	uc.logger.Infow("user created", "user_id", u.ID(), "role", role)
	return dto.ToUserResponse(u), nil
}
