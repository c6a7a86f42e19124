package usecases

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/application/user/dto"
	domainUser "github.com/ticketdesk/ticketdesk/internal/domain/user"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

type GetUserUseCase struct {
	userRepo domainUser.Repository
}

func NewGetUserUseCase(userRepo domainUser.Repository) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo}
}

func (uc *GetUserUseCase) ByEmail(ctx context.Context, email string) (*dto.UserResponse, error) {
	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to load user", err)
	}
	if u == nil {
		return nil, errors.NewNotFoundError("user not found", email)
	}
	return dto.ToUserResponse(u), nil
}
