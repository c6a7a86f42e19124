package models

import (
	"time"

	"github.com/ticketdesk/ticketdesk/internal/shared/constants"
)

// UserModel mirrors the directory. IsActive has no column default so that an
// explicit false survives gorm's zero-value handling on insert.
type UserModel struct {
	ID         uint       `gorm:"primaryKey"`
	Email      string     `gorm:"size:255;not null;uniqueIndex:uk_users_email"`
	FirstName  string     `gorm:"size:100;not null"`
	LastName   string     `gorm:"size:100;not null"`
	Department string     `gorm:"size:100"`
	Role       string     `gorm:"size:20;not null;index:idx_users_active_role,priority:2"`
	IsActive   bool       `gorm:"not null;index:idx_users_active_role,priority:1"`
	ManagerID  *uint      `gorm:"index"`
	Manager    *UserModel `gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL"`
	CreatedAt  time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
