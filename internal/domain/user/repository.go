package user

import (
	"context"

	vo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
)

// Repository lookups return (nil, nil) when the record does not exist.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListActive(ctx context.Context) ([]*User, error)
	ListActiveByRole(ctx context.Context, role vo.Role) ([]*User, error)
	// ListClients returns the users whose manager is managerID.
	ListClients(ctx context.Context, managerID uint) ([]*User, error)
	UpdateManager(ctx context.Context, userID uint, managerID *uint) error
}
