package mappers

import (
	"github.com/ticketdesk/ticketdesk/internal/domain/chat"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
)

func ChatMessageToModel(m *chat.Message) *models.ChatMessageModel {
	model := &models.ChatMessageModel{
		ID:              m.ID(),
		TicketID:        m.TicketID(),
		SenderID:        m.SenderID(),
		Message:         m.Body(),
		SentAt:          m.SentAt(),
		IsSystemMessage: m.IsSystemMessage(),
	}
	for _, a := range m.Attachments() {
		model.Attachments = append(model.Attachments, models.ChatAttachmentModel{
			ID:          a.ID,
			FileName:    a.FileName,
			FilePath:    a.FilePath,
			ContentType: a.ContentType,
			FileSize:    a.FileSize,
			UploadedAt:  a.UploadedAt,
		})
	}
	return model
}

func ChatMessageToEntity(m *models.ChatMessageModel) *chat.Message {
	attachments := make([]*chat.Attachment, 0, len(m.Attachments))
	for i := range m.Attachments {
		a := &m.Attachments[i]
		attachments = append(attachments, &chat.Attachment{
			ID:          a.ID,
			OwnerID:     a.ChatMessageID,
			FileName:    a.FileName,
			FilePath:    a.FilePath,
			ContentType: a.ContentType,
			FileSize:    a.FileSize,
			UploadedAt:  a.UploadedAt,
		})
	}

	var sender *chat.Participant
	if m.Sender != nil {
		sender = &chat.Participant{
			ID:          m.Sender.ID,
			Email:       m.Sender.Email,
			DisplayName: displayName(m.Sender),
		}
	}

	return chat.ReconstructMessage(
		m.ID,
		m.TicketID,
		m.SenderID,
		m.Message,
		m.SentAt,
		m.IsSystemMessage,
		attachments,
		sender,
	)
}

func TicketAttachmentToModel(ticketID uint, a *chat.Attachment) *models.TicketAttachmentModel {
	return &models.TicketAttachmentModel{
		ID:          a.ID,
		TicketID:    ticketID,
		FileName:    a.FileName,
		FilePath:    a.FilePath,
		ContentType: a.ContentType,
		FileSize:    a.FileSize,
		UploadedAt:  a.UploadedAt,
	}
}

func TicketAttachmentToEntity(m *models.TicketAttachmentModel) *chat.Attachment {
	return &chat.Attachment{
		ID:          m.ID,
		OwnerID:     m.TicketID,
		FileName:    m.FileName,
		FilePath:    m.FilePath,
		ContentType: m.ContentType,
		FileSize:    m.FileSize,
		UploadedAt:  m.UploadedAt,
	}
}
