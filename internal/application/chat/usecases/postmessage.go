package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/ticketdesk/ticketdesk/internal/application/chat/dto"
	"github.com/ticketdesk/ticketdesk/internal/domain/chat"
	notificationvo "github.com/ticketdesk/ticketdesk/internal/domain/notification/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/hub"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/db"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

const newMessageTitle = "New message"

type PostMessageCommand struct {
	TicketID    uint
	SenderEmail string
	Body        string
}

type PostMessageResult struct {
	MessageID  uint
	Delivered  int
	Recipients []uint
}

type PostMessageUseCase struct {
	userRepo    user.Repository
	ticketRepo  ticket.Repository
	messageRepo chat.Repository
	txManager   db.Transactor
	broadcaster hub.Broadcaster
	notifier    Notifier
	logger      logger.Interface
}

func NewPostMessageUseCase(
	userRepo user.Repository,
	ticketRepo ticket.Repository,
	messageRepo chat.Repository,
	txManager db.Transactor,
	broadcaster hub.Broadcaster,
	notifier Notifier,
	logger logger.Interface,
) *PostMessageUseCase {
	return &PostMessageUseCase{
		userRepo:    userRepo,
		ticketRepo:  ticketRepo,
		messageRepo: messageRepo,
		txManager:   txManager,
		broadcaster: broadcaster,
		notifier:    notifier,
		logger:      logger,
	}
}

func (uc *PostMessageUseCase) Execute(ctx context.Context, cmd PostMessageCommand) (*PostMessageResult, error) {
	uc.logger.Infow("executing post message use case",
		"ticket_id", cmd.TicketID,
		"sender_email", cmd.SenderEmail,
	)

	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket id is required")
	}
	if strings.TrimSpace(cmd.SenderEmail) == "" {
		return nil, errors.NewValidationError("sender email is required")
	}

	sender, err := uc.userRepo.GetByEmail(ctx, cmd.SenderEmail)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to load sender", err)
	}
	if sender == nil {
		return nil, errors.NewNotFoundError("sender not found", cmd.SenderEmail)
	}

	tk, err := uc.ticketRepo.GetByID(ctx, cmd.TicketID)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to load ticket", err)
	}
	if tk == nil {
		return nil, errors.NewNotFoundError("ticket not found", fmt.Sprintf("ticket_id=%d", cmd.TicketID))
	}

	// Stored verbatim apart from surrounding whitespace; clients render it as text.
	body := strings.TrimSpace(cmd.Body)
	sentAt := biztime.NowUTC()
	message, err := chat.NewMessage(tk.ID(), sender.ID(), body, sentAt)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.messageRepo.Create(txCtx, message); err != nil {
			return err
		}
		if err := uc.ticketRepo.TouchUpdatedAt(txCtx, tk.ID(), sentAt); err != nil {
			uc.logger.Warnw("failed to advance ticket updated_at, continuing degraded",
				"ticket_id", tk.ID(),
				"message_id", message.ID(),
				"error", err,
			)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to persist chat message",
			"ticket_id", tk.ID(),
			"sender_id", sender.ID(),
			"error", err,
		)
		return nil, errors.NewPersistenceError("failed to save message", err)
	}

	delivered := uc.broadcaster.Broadcast(ctx, hub.TicketGroup(tk.ID()), dto.EventReceiveMessage, dto.ReceiveMessagePayload{
		ID:              message.ID(),
		Message:         message.Body(),
		SentAt:          message.SentAt(),
		SenderName:      sender.DisplayName(),
		SenderEmail:     sender.Email(),
		IsSystemMessage: message.IsSystemMessage(),
	})

	recipients := chat.NotificationRecipients(tk.CreatedByID(), tk.AssignedToID(), sender.ID())
	ticketID := tk.ID()
	senderID := sender.ID()
	text := fmt.Sprintf("New message on ticket #%d: %s", tk.ID(), tk.Title())
	for _, recipientID := range recipients {
		uc.notifier.Notify(ctx, recipientID, newMessageTitle, text, notificationvo.TypeNewMessage, &ticketID, &senderID)
	}

	uc.logger.Infow("chat message posted",
		"message_id", message.ID(),
		"ticket_id", tk.ID(),
		"delivered", delivered,
		"recipients", len(recipients),
	)

	return &PostMessageResult{
		MessageID:  message.ID(),
		Delivered:  delivered,
		Recipients: recipients,
	}, nil
}
