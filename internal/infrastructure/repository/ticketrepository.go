package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/mappers"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
	"github.com/ticketdesk/ticketdesk/internal/shared/db"
	apperrors "github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

type TicketRepositoryImpl struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) ticket.Repository {
	return &TicketRepositoryImpl{db: db}
}

func (r *TicketRepositoryImpl) Create(ctx context.Context, t *ticket.Ticket) error {
	model := mappers.TicketToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return t.SetID(model.ID)
}

func (r *TicketRepositoryImpl) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ticket by ID: %w", err)
	}
	return mappers.TicketToEntity(&model)
}

// TouchUpdatedAt is a single conditional UPDATE, so concurrent posts can
// only move updated_at forward.
func (r *TicketRepositoryImpl) TouchUpdatedAt(ctx context.Context, id uint, at time.Time) error {
	tx := db.GetTxFromContext(ctx, r.db)
	at = at.UTC()

	result := tx.Model(&models.TicketModel{}).
		Where("id = ? AND updated_at < ?", id, at).
		UpdateColumn("updated_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket timestamp: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// nothing changed: either already newer or missing
	var count int64
	if err := tx.Model(&models.TicketModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check ticket: %w", err)
	}
	if count == 0 {
		return apperrors.NewNotFoundError("ticket not found")
	}
	return nil
}
