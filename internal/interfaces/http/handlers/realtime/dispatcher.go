package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ticketdesk/ticketdesk/internal/infrastructure/hub"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
	"github.com/ticketdesk/ticketdesk/internal/shared/utils"
)

// ChatCommands is the part of the chat coordinator reachable from a socket.
type ChatCommands interface {
	JoinTicket(ctx context.Context, conn *hub.Conn, ticketID uint)
	LeaveTicket(ctx context.Context, conn *hub.Conn, ticketID uint)
	PostMessage(ctx context.Context, ticketID uint, senderEmail, body string) uint
	PostFileNotice(ctx context.Context, ticketID uint, senderEmail, fileName string, fileSize int64)
}

// UserGroupCommands is the part of the notification dispatcher reachable
// from a socket.
type UserGroupCommands interface {
	JoinUserGroup(ctx context.Context, conn *hub.Conn, email string)
	LeaveUserGroup(ctx context.Context, conn *hub.Conn, email string)
}

// CommandDispatcher decodes client frames and runs them one at a time per
// connection. Each command gets a context detached from the socket so that
// persistence completes even when the client goes away mid-command.
type CommandDispatcher struct {
	chat          ChatCommands
	notifications UserGroupCommands
	timeout       time.Duration
	logger        logger.Interface
}

func NewCommandDispatcher(chat ChatCommands, notifications UserGroupCommands, timeout time.Duration, logger logger.Interface) *CommandDispatcher {
	return &CommandDispatcher{
		chat:          chat,
		notifications: notifications,
		timeout:       timeout,
		logger:        logger,
	}
}

// Dispatch handles one raw frame. Malformed frames, unknown commands and
// identity mismatches are logged and dropped.
func (d *CommandDispatcher) Dispatch(conn *hub.Conn, raw []byte) {
	var frame ClientFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		d.logger.Warnw("failed to parse client frame",
			"conn_id", conn.ID(),
			"error", err,
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.run(ctx, conn, frame); err != nil {
		d.logger.Warnw("client command dropped",
			"conn_id", conn.ID(),
			"user_id", conn.UserID(),
			"command", frame.Type,
			"error", err,
		)
	}
}

func (d *CommandDispatcher) run(ctx context.Context, conn *hub.Conn, frame ClientFrame) error {
	switch frame.Type {
	case CmdJoinTicketGroup, CmdLeaveTicketGroup:
		var data TicketGroupData
		if _, err := decode(conn, frame.Data, &data, func() string { return data.UserEmail }); err != nil {
			return err
		}
		if frame.Type == CmdJoinTicketGroup {
			d.chat.JoinTicket(ctx, conn, data.TicketID)
		} else {
			d.chat.LeaveTicket(ctx, conn, data.TicketID)
		}

	case CmdSendMessageToTicket:
		var data SendMessageData
		email, err := decode(conn, frame.Data, &data, func() string { return data.SenderEmail })
		if err != nil {
			return err
		}
		d.chat.PostMessage(ctx, data.TicketID, email, data.Message)

	case CmdSendFileNotification:
		var data FileNotificationData
		email, err := decode(conn, frame.Data, &data, func() string { return data.SenderEmail })
		if err != nil {
			return err
		}
		d.chat.PostFileNotice(ctx, data.TicketID, email, data.FileName, data.FileSize)

	case CmdJoinUserGroup, CmdLeaveUserGroup:
		var data UserGroupData
		email, err := decode(conn, frame.Data, &data, func() string { return data.UserEmail })
		if err != nil {
			return err
		}
		if frame.Type == CmdJoinUserGroup {
			d.notifications.JoinUserGroup(ctx, conn, email)
		} else {
			d.notifications.LeaveUserGroup(ctx, conn, email)
		}

	default:
		return fmt.Errorf("unknown command %q", frame.Type)
	}
	return nil
}

// decode unmarshals and validates data, then resolves the acting email:
// empty means the connection's own identity, anything else must match it.
func decode(conn *hub.Conn, raw json.RawMessage, data any, suppliedEmail func() string) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("missing command data")
	}
	if err := json.Unmarshal(raw, data); err != nil {
		return "", fmt.Errorf("invalid command data: %w", err)
	}
	if err := utils.ValidateStruct(data); err != nil {
		return "", err
	}

	own := conn.Identity().Email
	supplied := strings.TrimSpace(suppliedEmail())
	if supplied == "" {
		return own, nil
	}
	if !strings.EqualFold(supplied, own) {
		return "", fmt.Errorf("email %q does not match the authenticated user", supplied)
	}
	return own, nil
}
