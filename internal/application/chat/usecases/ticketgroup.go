package usecases

import (
	"context"

	"github.com/ticketdesk/ticketdesk/internal/domain/ticket"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/hub"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

type JoinTicketGroupUseCase struct {
	ticketRepo ticket.Repository
	membership hub.Membership
	logger     logger.Interface
}

func NewJoinTicketGroupUseCase(ticketRepo ticket.Repository, membership hub.Membership, logger logger.Interface) *JoinTicketGroupUseCase {
	return &JoinTicketGroupUseCase{
		ticketRepo: ticketRepo,
		membership: membership,
		logger:     logger,
	}
}

// Execute joins conn to the ticket group. It returns false without error when
// the ticket does not exist.
func (uc *JoinTicketGroupUseCase) Execute(ctx context.Context, conn *hub.Conn, ticketID uint) (bool, error) {
	if ticketID == 0 {
		return false, errors.NewValidationError("ticket id is required")
	}

	tk, err := uc.ticketRepo.GetByID(ctx, ticketID)
	if err != nil {
		return false, errors.NewPersistenceError("failed to load ticket", err)
	}
	if tk == nil {
		uc.logger.Warnw("join requested for unknown ticket",
			"ticket_id", ticketID,
			"conn_id", conn.ID(),
		)
		return false, nil
	}

	uc.membership.Join(hub.TicketGroup(ticketID), conn)
	uc.logger.Infow("connection joined ticket group",
		"ticket_id", ticketID,
		"conn_id", conn.ID(),
		"user_id", conn.UserID(),
	)
	return true, nil
}

type LeaveTicketGroupUseCase struct {
	membership hub.Membership
	logger     logger.Interface
}

func NewLeaveTicketGroupUseCase(membership hub.Membership, logger logger.Interface) *LeaveTicketGroupUseCase {
	return &LeaveTicketGroupUseCase{
		membership: membership,
		logger:     logger,
	}
}

func (uc *LeaveTicketGroupUseCase) Execute(_ context.Context, conn *hub.Conn, ticketID uint) error {
	if ticketID == 0 {
		return errors.NewValidationError("ticket id is required")
	}
	uc.membership.Leave(hub.TicketGroup(ticketID), conn)
	uc.logger.Infow("connection left ticket group",
		"ticket_id", ticketID,
		"conn_id", conn.ID(),
	)
	return nil
}
