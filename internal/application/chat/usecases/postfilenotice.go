package usecases

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ticketdesk/ticketdesk/internal/application/chat/dto"
	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/hub"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/constants"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

type PostFileNoticeCommand struct {
	TicketID    uint
	SenderEmail string
	FileName    string
	FileSize    int64
}

// PostFileNoticeUseCase announces an upload to the ticket group. The file
// itself is stored elsewhere; nothing is persisted here.
type PostFileNoticeUseCase struct {
	userRepo    user.Repository
	broadcaster hub.Broadcaster
	logger      logger.Interface
}

func NewPostFileNoticeUseCase(
	userRepo user.Repository,
	broadcaster hub.Broadcaster,
	logger logger.Interface,
) *PostFileNoticeUseCase {
	return &PostFileNoticeUseCase{
		userRepo:    userRepo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (uc *PostFileNoticeUseCase) Execute(ctx context.Context, cmd PostFileNoticeCommand) (int, error) {
	fileName := strings.TrimSpace(cmd.FileName)
	switch {
	case cmd.TicketID == 0:
		return 0, errors.NewValidationError("ticket id is required")
	case fileName == "":
		return 0, errors.NewValidationError("file name is required")
	case utf8.RuneCountInString(fileName) > constants.MaxFileNameLength:
		return 0, errors.NewValidationError("file name is too long")
	case cmd.FileSize < 0:
		return 0, errors.NewValidationError("file size cannot be negative")
	}

	sender, err := uc.userRepo.GetByEmail(ctx, cmd.SenderEmail)
	if err != nil {
		return 0, errors.NewPersistenceError("failed to load sender", err)
	}
	if sender == nil {
		return 0, errors.NewNotFoundError("sender not found", cmd.SenderEmail)
	}

	delivered := uc.broadcaster.Broadcast(ctx, hub.TicketGroup(cmd.TicketID), dto.EventReceiveFileNotification, dto.ReceiveFileNotificationPayload{
		FileName:    fileName,
		FileSize:    cmd.FileSize,
		SenderName:  sender.DisplayName(),
		SenderEmail: sender.Email(),
		UploadedAt:  biztime.NowUTC(),
	})

	uc.logger.Infow("file notification broadcast",
		"ticket_id", cmd.TicketID,
		"file_name", fileName,
		"delivered", delivered,
	)
	return delivered, nil
}
