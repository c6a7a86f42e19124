package models

import (
	"time"

	"github.com/ticketdesk/ticketdesk/internal/shared/constants"
)

type ChatMessageModel struct {
	ID              uint                  `gorm:"primaryKey"`
	TicketID        uint                  `gorm:"not null;index:idx_chat_messages_ticket_sent,priority:1"`
	Ticket          *TicketModel          `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
	SenderID        uint                  `gorm:"not null;index"`
	Sender          *UserModel            `gorm:"foreignKey:SenderID;constraint:OnDelete:RESTRICT"`
	Message         string                `gorm:"size:4000;not null"`
	SentAt          time.Time             `gorm:"not null;index:idx_chat_messages_ticket_sent,priority:2"`
	IsSystemMessage bool                  `gorm:"not null"`
	Attachments     []ChatAttachmentModel `gorm:"foreignKey:ChatMessageID"`
}

func (ChatMessageModel) TableName() string {
	return constants.TableChatMessages
}

type ChatAttachmentModel struct {
	ID            uint              `gorm:"primaryKey"`
	ChatMessageID uint              `gorm:"not null;index"`
	ChatMessage   *ChatMessageModel `gorm:"foreignKey:ChatMessageID;constraint:OnDelete:CASCADE"`
	FileName      string            `gorm:"size:255;not null"`
	FilePath      string            `gorm:"size:500;not null"`
	ContentType   string            `gorm:"size:100"`
	FileSize      int64             `gorm:"not null"`
	UploadedAt    time.Time         `gorm:"not null"`
}

func (ChatAttachmentModel) TableName() string {
	return constants.TableChatAttachments
}

type TicketAttachmentModel struct {
	ID          uint         `gorm:"primaryKey"`
	TicketID    uint         `gorm:"not null;index"`
	Ticket      *TicketModel `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
	FileName    string       `gorm:"size:255;not null"`
	FilePath    string       `gorm:"size:500;not null"`
	ContentType string       `gorm:"size:100"`
	FileSize    int64        `gorm:"not null"`
	UploadedAt  time.Time    `gorm:"not null"`
}

func (TicketAttachmentModel) TableName() string {
	return constants.TableTicketAttachments
}
