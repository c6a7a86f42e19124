package models

import (
	"time"

	"github.com/ticketdesk/ticketdesk/internal/shared/constants"
)

type TicketModel struct {
	ID           uint       `gorm:"primaryKey"`
	Title        string     `gorm:"size:255;not null"`
	Description  string     `gorm:"size:4000"`
	Status       string     `gorm:"size:20;not null;index"`
	Priority     string     `gorm:"size:20;not null"`
	Category     string     `gorm:"size:20;not null"`
	CreatedByID  uint       `gorm:"not null;index"`
	CreatedBy    *UserModel `gorm:"foreignKey:CreatedByID;constraint:OnDelete:RESTRICT"`
	AssignedToID *uint      `gorm:"index"`
	AssignedTo   *UserModel `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ResolvedAt   *time.Time
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}
