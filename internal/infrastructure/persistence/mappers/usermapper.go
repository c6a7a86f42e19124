package mappers

import (
	"fmt"

	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
)

func UserToEntity(m *models.UserModel) (*user.User, error) {
	if m == nil {
		return nil, nil
	}
	u, err := user.ReconstructUser(
		m.ID,
		m.Email,
		m.FirstName,
		m.LastName,
		m.Department,
		vo.Role(m.Role),
		m.IsActive,
		m.ManagerID,
		m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user %d: %w", m.ID, err)
	}
	return u, nil
}

func UserToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:         u.ID(),
		Email:      u.Email(),
		FirstName:  u.FirstName(),
		LastName:   u.LastName(),
		Department: u.Department(),
		Role:       u.Role().String(),
		IsActive:   u.IsActive(),
		ManagerID:  u.ManagerID(),
		CreatedAt:  u.CreatedAt(),
	}
}

func UsersToEntities(ms []*models.UserModel) ([]*user.User, error) {
	out := make([]*user.User, 0, len(ms))
	for _, m := range ms {
		u, err := UserToEntity(m)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// displayName renders a user loaded as a reference the same way
// user.User.DisplayName does.
func displayName(m *models.UserModel) string {
	u, err := UserToEntity(m)
	if err != nil {
		return m.Email
	}
	return u.DisplayName()
}
