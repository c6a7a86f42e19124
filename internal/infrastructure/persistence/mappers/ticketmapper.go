package mappers

import (
	"fmt"

	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
)

func TicketToEntity(m *models.TicketModel) (*ticket.Ticket, error) {
	if m == nil {
		return nil, nil
	}
	t, err := ticket.ReconstructTicket(
		m.ID,
		m.Title,
		m.Description,
		vo.TicketStatus(m.Status),
		vo.Priority(m.Priority),
		vo.Category(m.Category),
		m.CreatedByID,
		m.AssignedToID,
		m.CreatedAt,
		m.UpdatedAt,
		m.ResolvedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket %d: %w", m.ID, err)
	}
	return t, nil
}

func TicketToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:           t.ID(),
		Title:        t.Title(),
		Description:  t.Description(),
		Status:       t.Status().String(),
		Priority:     t.Priority().String(),
		Category:     t.Category().String(),
		CreatedByID:  t.CreatedByID(),
		AssignedToID: t.AssignedToID(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
		ResolvedAt:   t.ResolvedAt(),
	}
}
