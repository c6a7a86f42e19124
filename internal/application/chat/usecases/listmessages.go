package usecases

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/application/chat/dto"
	"github.com/ticketdesk/ticketdesk/internal/domain/chat"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

type ListMessagesUseCase struct {
	ticketRepo  ticket.Repository
	messageRepo chat.Repository
	logger      logger.Interface
}

func NewListMessagesUseCase(ticketRepo ticket.Repository, messageRepo chat.Repository, logger logger.Interface) *ListMessagesUseCase {
	return &ListMessagesUseCase{
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

func (uc *ListMessagesUseCase) Execute(ctx context.Context, ticketID uint) ([]dto.MessageResponse, error) {
	tk, err := uc.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to load ticket", err)
	}
	if tk == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	messages, err := uc.messageRepo.ListByTicket(ctx, ticketID)
	if err != nil {
		uc.logger.Errorw("failed to list chat messages", "ticket_id", ticketID, "error", err)
		return nil, errors.NewPersistenceError("failed to list messages", err)
	}
	return dto.ToMessageResponses(messages), nil
}

type ListTicketAttachmentsUseCase struct {
	ticketRepo     ticket.Repository
	attachmentRepo chat.TicketAttachmentRepository
	logger         logger.Interface
}

func NewListTicketAttachmentsUseCase(ticketRepo ticket.Repository, attachmentRepo chat.TicketAttachmentRepository, logger logger.Interface) *ListTicketAttachmentsUseCase {
	return &ListTicketAttachmentsUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		logger:         logger,
	}
}

func (uc *ListTicketAttachmentsUseCase) Execute(ctx context.Context, ticketID uint) ([]dto.AttachmentResponse, error) {
	tk, err := uc.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to load ticket", err)
	}
	if tk == nil {
		return nil, errors.NewNotFoundError("ticket not found")
	}

	attachments, err := uc.attachmentRepo.ListByTicket(ctx, ticketID)
	if err != nil {
		uc.logger.Errorw("failed to list ticket attachments", "ticket_id", ticketID, "error", err)
		return nil, errors.NewPersistenceError("failed to list attachments", err)
	}
	resp := make([]dto.AttachmentResponse, 0, len(attachments))
	for _, a := range attachments {
		resp = append(resp, dto.ToAttachmentResponse(a))
	}
	return resp, nil
}
