package http

import (
	"gorm.io/gorm"

	"github.com/ticketdesk/ticketdesk/internal/domain/chat"
	"github.com/ticketdesk/ticketdesk/internal/domain/notification"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	userRepo         user.Repository
	ticketRepo       ticket.Repository
	messageRepo      chat.Repository
	attachmentRepo   chat.TicketAttachmentRepository
	notificationRepo notification.Repository
}

func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		userRepo:         repository.NewUserRepository(db),
		ticketRepo:       repository.NewTicketRepository(db),
		messageRepo:      repository.NewChatMessageRepository(db),
		attachmentRepo:   repository.NewTicketAttachmentRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
	}
}
