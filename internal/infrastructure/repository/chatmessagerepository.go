package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ticketdesk/ticketdesk/internal/domain/chat"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/mappers"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
	"github.com/ticketdesk/ticketdesk/internal/shared/db"
)

type ChatMessageRepositoryImpl struct {
	db *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) chat.Repository {
	return &ChatMessageRepositoryImpl{db: db}
}

func (r *ChatMessageRepositoryImpl) Create(ctx context.Context, m *chat.Message) error {
	model := mappers.ChatMessageToModel(m)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}

	if err := m.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set chat message ID: %w", err)
	}
	for i, a := range m.Attachments() {
		a.ID = model.Attachments[i].ID
		a.OwnerID = model.ID
	}
	return nil
}

func (r *ChatMessageRepositoryImpl) ListByTicket(ctx context.Context, ticketID uint) ([]*chat.Message, error) {
	var list []*models.ChatMessageModel
	err := db.GetTxFromContext(ctx, r.db).
		Preload("Sender").
		Preload("Attachments", func(q *gorm.DB) *gorm.DB {
			return q.Order("uploaded_at ASC, id ASC")
		}).
		Where("ticket_id = ?", ticketID).
		Order("sent_at ASC, id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}

	out := make([]*chat.Message, 0, len(list))
	for _, m := range list {
		out = append(out, mappers.ChatMessageToEntity(m))
	}
	return out, nil
}

type TicketAttachmentRepositoryImpl struct {
	db *gorm.DB
}

func NewTicketAttachmentRepository(db *gorm.DB) chat.TicketAttachmentRepository {
	return &TicketAttachmentRepositoryImpl{db: db}
}

func (r *TicketAttachmentRepositoryImpl) Create(ctx context.Context, ticketID uint, a *chat.Attachment) error {
	model := mappers.TicketAttachmentToModel(ticketID, a)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket attachment: %w", err)
	}
	a.ID = model.ID
	a.OwnerID = ticketID
	return nil
}

func (r *TicketAttachmentRepositoryImpl) ListByTicket(ctx context.Context, ticketID uint) ([]*chat.Attachment, error) {
	var list []*models.TicketAttachmentModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("uploaded_at ASC, id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket attachments: %w", err)
	}

	out := make([]*chat.Attachment, 0, len(list))
	for _, m := range list {
		out = append(out, mappers.TicketAttachmentToEntity(m))
	}
	return out, nil
}
