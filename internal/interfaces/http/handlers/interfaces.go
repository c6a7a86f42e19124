package handlers

import (
	"context"

	chatdto "github.com/ticketdesk/ticketdesk/internal/application/chat/dto"
	notificationdto "github.com/ticketdesk/ticketdesk/internal/application/notification/dto"
	userdto "github.com/ticketdesk/ticketdesk/internal/application/user/dto"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/notification/valueobjects"
	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
)

type notificationService interface {
	ListNotifications(ctx context.Context, userID uint, unreadOnly bool) (*notificationdto.ListNotificationsResponse, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	NotifyAll(ctx context.Context, title, message string, notificationType vo.NotificationType, sentByUserID *uint) int
	NotifyRole(ctx context.Context, role uservo.Role, title, message string, notificationType vo.NotificationType, sentByUserID *uint) int
}

type messageLister interface {
	ListMessages(ctx context.Context, ticketID uint) ([]chatdto.MessageResponse, error)
	ListTicketAttachments(ctx context.Context, ticketID uint) ([]chatdto.AttachmentResponse, error)
}

type userService interface {
	CreateUser(ctx context.Context, req userdto.CreateUserRequest) (*userdto.UserResponse, error)
	GetUserByEmail(ctx context.Context, email string) (*userdto.UserResponse, error)
	AssignManager(ctx context.Context, userID uint, managerID *uint) (*userdto.UserResponse, error)
	ListClients(ctx context.Context, managerID uint) ([]*userdto.UserResponse, error)
}
