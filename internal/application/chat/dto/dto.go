package dto

import (
	"time"

	"github.com/ticketdesk/ticketdesk/internal/domain/chat"
)

// Realtime event names pushed to ticket groups.
const (
	EventReceiveMessage          = "ReceiveMessage"
	EventReceiveFileNotification = "ReceiveFileNotification"
)

type ReceiveMessagePayload struct {
	ID              uint      `json:"id"`
	Message         string    `json:"message"`
	SentAt          time.Time `json:"sentAt"`
	SenderName      string    `json:"senderName"`
	SenderEmail     string    `json:"senderEmail"`
	IsSystemMessage bool      `json:"isSystemMessage"`
}

type ReceiveFileNotificationPayload struct {
	FileName    string    `json:"fileName"`
	FileSize    int64     `json:"fileSize"`
	SenderName  string    `json:"senderName"`
	SenderEmail string    `json:"senderEmail"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

type AttachmentResponse struct {
	ID          uint      `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	FileSize    int64     `json:"file_size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type MessageResponse struct {
	ID              uint                 `json:"id"`
	TicketID        uint                 `json:"ticket_id"`
	SenderID        uint                 `json:"sender_id"`
	SenderName      string               `json:"sender_name"`
	SenderEmail     string               `json:"sender_email"`
	Message         string               `json:"message"`
	SentAt          time.Time            `json:"sent_at"`
	IsSystemMessage bool                 `json:"is_system_message"`
	Attachments     []AttachmentResponse `json:"attachments"`
}

func ToMessageResponse(m *chat.Message) MessageResponse {
	resp := MessageResponse{
		ID:              m.ID(),
		TicketID:        m.TicketID(),
		SenderID:        m.SenderID(),
		Message:         m.Body(),
		SentAt:          m.SentAt(),
		IsSystemMessage: m.IsSystemMessage(),
		Attachments:     make([]AttachmentResponse, 0, len(m.Attachments())),
	}
	if s := m.Sender(); s != nil {
		resp.SenderName = s.DisplayName
		resp.SenderEmail = s.Email
	}
	for _, a := range m.Attachments() {
		resp.Attachments = append(resp.Attachments, ToAttachmentResponse(a))
	}
	return resp
}

func ToAttachmentResponse(a *chat.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          a.ID,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		FileSize:    a.FileSize,
		UploadedAt:  a.UploadedAt,
	}
}

func ToMessageResponses(messages []*chat.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, ToMessageResponse(m))
	}
	return out
}
