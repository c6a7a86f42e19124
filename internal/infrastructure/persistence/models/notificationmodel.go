package models

import (
	"time"

	"github.com/ticketdesk/ticketdesk/internal/shared/constants"
)

type NotificationModel struct {
	ID              uint         `gorm:"primaryKey"`
	UserID          uint         `gorm:"not null;index:idx_notifications_user_read,priority:1"`
	User            *UserModel   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Title           string       `gorm:"size:255;not null"`
	Message         string       `gorm:"size:4000;not null"`
	Type            string       `gorm:"size:32;not null"`
	IsRead          bool         `gorm:"not null;index:idx_notifications_user_read,priority:2"`
	ReadAt          *time.Time
	CreatedAt       time.Time    `gorm:"index"`
	RelatedTicketID *uint        `gorm:"index"`
	RelatedTicket   *TicketModel `gorm:"foreignKey:RelatedTicketID;constraint:OnDelete:SET NULL"`
	SentByUserID    *uint        `gorm:"index"`
	SentBy          *UserModel   `gorm:"foreignKey:SentByUserID;constraint:OnDelete:SET NULL"`
}

func (NotificationModel) TableName() string {
	return constants.TableNotifications
}
