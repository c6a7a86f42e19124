// Package chat coordinates ticket conversations: persisting messages,
// broadcasting them to the ticket group and notifying the participants.
package chat

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/application/chat/dto"
	"github.com/ticketdesk/ticketdesk/internal/application/chat/usecases"
	"github.com/ticketdesk/ticketdesk/internal/domain/chat"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/hub"
	"github.com/ticketdesk/ticketdesk/internal/shared/db"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

// Coordinator is the realtime boundary of the chat context. Its command
// methods never return errors; failures are logged and the command is dropped.
type Coordinator struct {
	logger logger.Interface

	postMessage    *usecases.PostMessageUseCase
	postFileNotice *usecases.PostFileNoticeUseCase
	joinTicket     *usecases.JoinTicketGroupUseCase
	leaveTicket    *usecases.LeaveTicketGroupUseCase
	listMessages   *usecases.ListMessagesUseCase
	listAttachment *usecases.ListTicketAttachmentsUseCase
}

func NewCoordinator(
	userRepo user.Repository,
	ticketRepo ticket.Repository,
	messageRepo chat.Repository,
	attachmentRepo chat.TicketAttachmentRepository,
	txManager db.Transactor,
	broadcaster hub.Broadcaster,
	membership hub.Membership,
	notifier usecases.Notifier,
	logger logger.Interface,
) *Coordinator {
	return &Coordinator{
		logger: logger,

		postMessage:    usecases.NewPostMessageUseCase(userRepo, ticketRepo, messageRepo, txManager, broadcaster, notifier, logger),
		postFileNotice: usecases.NewPostFileNoticeUseCase(userRepo, broadcaster, logger),
		joinTicket:     usecases.NewJoinTicketGroupUseCase(ticketRepo, membership, logger),
		leaveTicket:    usecases.NewLeaveTicketGroupUseCase(membership, logger),
		listMessages:   usecases.NewListMessagesUseCase(ticketRepo, messageRepo, logger),
		listAttachment: usecases.NewListTicketAttachmentsUseCase(ticketRepo, attachmentRepo, logger),
	}
}

// PostMessage returns the new message id, or 0 when the post was dropped.
func (c *Coordinator) PostMessage(ctx context.Context, ticketID uint, senderEmail, body string) uint {
	result, err := c.postMessage.Execute(ctx, usecases.PostMessageCommand{
		TicketID:    ticketID,
		SenderEmail: senderEmail,
		Body:        body,
	})
	if err != nil {
		c.logFailure("post message", err, "ticket_id", ticketID, "sender_email", senderEmail)
		return 0
	}
	return result.MessageID
}

func (c *Coordinator) PostFileNotice(ctx context.Context, ticketID uint, senderEmail, fileName string, fileSize int64) {
	_, err := c.postFileNotice.Execute(ctx, usecases.PostFileNoticeCommand{
		TicketID:    ticketID,
		SenderEmail: senderEmail,
		FileName:    fileName,
		FileSize:    fileSize,
	})
	if err != nil {
		c.logFailure("post file notice", err, "ticket_id", ticketID, "sender_email", senderEmail)
	}
}

func (c *Coordinator) JoinTicket(ctx context.Context, conn *hub.Conn, ticketID uint) {
	if _, err := c.joinTicket.Execute(ctx, conn, ticketID); err != nil {
		c.logFailure("join ticket group", err, "ticket_id", ticketID, "conn_id", conn.ID())
	}
}

func (c *Coordinator) LeaveTicket(ctx context.Context, conn *hub.Conn, ticketID uint) {
	if err := c.leaveTicket.Execute(ctx, conn, ticketID); err != nil {
		c.logFailure("leave ticket group", err, "ticket_id", ticketID, "conn_id", conn.ID())
	}
}

// ListMessages returns the ticket history. Errors are returned to the caller.
func (c *Coordinator) ListMessages(ctx context.Context, ticketID uint) ([]dto.MessageResponse, error) {
	return c.listMessages.Execute(ctx, ticketID)
}

func (c *Coordinator) ListTicketAttachments(ctx context.Context, ticketID uint) ([]dto.AttachmentResponse, error) {
	return c.listAttachment.Execute(ctx, ticketID)
}

func (c *Coordinator) logFailure(op string, err error, keysAndValues ...interface{}) {
	kv := append([]interface{}{"operation", op, "error_type", errors.TypeOf(err), "error", err}, keysAndValues...)
	if errors.IsNotFoundError(err) || errors.IsValidationError(err) {
		c.logger.Warnw("chat command dropped", kv...)
		return
	}
	c.logger.Errorw("chat command failed", kv...)
}
