package usecases

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/hub"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

// UserGroupUseCase joins or leaves a connection on the personal group of the
// user identified by email. Unknown emails are a no-op, and inactive users
// cannot join.
type UserGroupUseCase struct {
	userRepo   user.Repository
	membership hub.Membership
	logger     logger.Interface
}

func NewUserGroupUseCase(userRepo user.Repository, membership hub.Membership, logger logger.Interface) *UserGroupUseCase {
	return &UserGroupUseCase{
		userRepo:   userRepo,
		membership: membership,
		logger:     logger,
	}
}

func (uc *UserGroupUseCase) Join(ctx context.Context, conn *hub.Conn, email string) (bool, error) {
	u, err := uc.resolve(ctx, email)
	if err != nil || u == nil {
		return false, err
	}
	if !u.IsActive() {
		uc.logger.Warnw("user group join refused for inactive user",
			"user_id", u.ID(),
			"conn_id", conn.ID(),
		)
		return false, nil
	}
	uc.membership.Join(hub.UserGroup(u.ID()), conn)
	uc.logger.Infow("connection joined user group",
		"user_id", u.ID(),
		"conn_id", conn.ID(),
	)
	return true, nil
}

func (uc *UserGroupUseCase) Leave(ctx context.Context, conn *hub.Conn, email string) (bool, error) {
	u, err := uc.resolve(ctx, email)
	if err != nil || u == nil {
		return false, err
	}
	uc.membership.Leave(hub.UserGroup(u.ID()), conn)
	uc.logger.Infow("connection left user group",
		"user_id", u.ID(),
		"conn_id", conn.ID(),
	)
	return true, nil
}

func (uc *UserGroupUseCase) resolve(ctx context.Context, email string) (*user.User, error) {
	if email == "" {
		return nil, errors.NewValidationError("user email is required")
	}
	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to load user", err)
	}
	if u == nil {
		uc.logger.Warnw("user group request for unknown email", "email", email)
	}
	return u, nil
}
