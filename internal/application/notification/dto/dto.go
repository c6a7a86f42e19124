package dto

import (
	"time"

	"github.com/ticketdesk/ticketdesk/internal/domain/notification"
)

const EventReceiveNotification = "ReceiveNotification"

type ReceiveNotificationPayload struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Message         string    `json:"message"`
	Type            string    `json:"type"`
	CreatedAt       time.Time `json:"createdAt"`
	RelatedTicketID *uint     `json:"relatedTicketId"`
	IsRead          bool      `json:"isRead"`
}

func ToReceiveNotificationPayload(n *notification.Notification) ReceiveNotificationPayload {
	return ReceiveNotificationPayload{
		ID:              n.ID(),
		Title:           n.Title(),
		Message:         n.Message(),
		Type:            n.Type().String(),
		CreatedAt:       n.CreatedAt(),
		RelatedTicketID: n.RelatedTicketID(),
		IsRead:          n.IsRead(),
	}
}

type UserRefResponse struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

type TicketRefResponse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type NotificationResponse struct {
	ID            uint               `json:"id"`
	Title         string             `json:"title"`
	Message       string             `json:"message"`
	Type          string             `json:"type"`
	IsRead        bool               `json:"is_read"`
	ReadAt        *time.Time         `json:"read_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	SentBy        *UserRefResponse   `json:"sent_by,omitempty"`
	RelatedTicket *TicketRefResponse `json:"related_ticket,omitempty"`
}

func ToNotificationResponse(n *notification.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID(),
		Title:     n.Title(),
		Message:   n.Message(),
		Type:      n.Type().String(),
		IsRead:    n.IsRead(),
		ReadAt:    n.ReadAt(),
		CreatedAt: n.CreatedAt(),
	}
	if s := n.SentBy(); s != nil {
		resp.SentBy = &UserRefResponse{ID: s.ID, Email: s.Email, DisplayName: s.DisplayName}
	}
	if t := n.RelatedTicket(); t != nil {
		resp.RelatedTicket = &TicketRefResponse{ID: t.ID, Title: t.Title}
	}
	return resp
}

type ListNotificationsResponse struct {
	Items       []NotificationResponse `json:"items"`
	UnreadCount int64                  `json:"unread_count"`
}

type BroadcastRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Message string `json:"message" binding:"required,max=4000"`
	Type    string `json:"type" binding:"omitempty"`
	Role    string `json:"role" binding:"omitempty"`
}

type BroadcastResponse struct {
	Notified int `json:"notified"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
