package dto

import (
	"time"

	"github.com/ticketdesk/ticketdesk/internal/domain/user"
)

type CreateUserRequest struct {
	Email      string `json:"email" binding:"required,email,max=255"`
	FirstName  string `json:"first_name" binding:"required,max=100"`
	LastName   string `json:"last_name" binding:"required,max=100"`
	Department string `json:"department" binding:"omitempty,max=100"`
	Role       string `json:"role" binding:"required"`
}

type AssignManagerRequest struct {
	ManagerID *uint `json:"manager_id"`
}

type UserResponse struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DisplayName string    `json:"display_name"`
	Department  string    `json:"department,omitempty"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	ManagerID   *uint     `json:"manager_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToUserResponse(u *user.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID(),
		Email:       u.Email(),
		FirstName:   u.FirstName(),
		LastName:    u.LastName(),
		DisplayName: u.DisplayName(),
		Department:  u.Department(),
		Role:        u.Role().String(),
		IsActive:    u.IsActive(),
		ManagerID:   u.ManagerID(),
		CreatedAt:   u.CreatedAt(),
	}
}

func ToUserResponses(users []*user.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
