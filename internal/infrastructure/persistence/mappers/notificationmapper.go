package mappers

import (
	"fmt"

	"github.com/ticketdesk/ticketdesk/internal/domain/notification"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/notification/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
)

func NotificationToModel(n *notification.Notification) *models.NotificationModel {
	return &models.NotificationModel{
		ID:              n.ID(),
		UserID:          n.UserID(),
		Title:           n.Title(),
		Message:         n.Message(),
		Type:            n.Type().String(),
		IsRead:          n.IsRead(),
		ReadAt:          n.ReadAt(),
		CreatedAt:       n.CreatedAt(),
		RelatedTicketID: n.RelatedTicketID(),
		SentByUserID:    n.SentByUserID(),
	}
}

func NotificationToEntity(m *models.NotificationModel) (*notification.Notification, error) {
	typ, err := vo.ParseNotificationType(m.Type)
	if err != nil {
		return nil, fmt.Errorf("notification %d: %w", m.ID, err)
	}

	var sentBy *notification.UserRef
	if m.SentBy != nil {
		sentBy = &notification.UserRef{
			ID:          m.SentBy.ID,
			Email:       m.SentBy.Email,
			DisplayName: displayName(m.SentBy),
		}
	}

	var related *notification.TicketRef
	if m.RelatedTicket != nil {
		related = &notification.TicketRef{
			ID:    m.RelatedTicket.ID,
			Title: m.RelatedTicket.Title,
		}
	}

	return notification.ReconstructNotification(
		m.ID,
		m.UserID,
		m.Title,
		m.Message,
		typ,
		m.IsRead,
		m.ReadAt,
		m.CreatedAt,
		m.RelatedTicketID,
		m.SentByUserID,
		sentBy,
		related,
	)
}
