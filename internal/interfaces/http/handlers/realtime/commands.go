package realtime

import "encoding/json"

// Client command names.
const (
	CmdJoinTicketGroup      = "JoinTicketGroup"
	CmdLeaveTicketGroup     = "LeaveTicketGroup"
	CmdSendMessageToTicket  = "SendMessageToTicket"
	CmdSendFileNotification = "SendFileNotification"
	CmdJoinUserGroup        = "JoinUserGroup"
	CmdLeaveUserGroup       = "LeaveUserGroup"
)

// ClientFrame is one command sent by a client over the websocket.
type ClientFrame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type TicketGroupData struct {
	TicketID  uint   `json:"ticketId" validate:"required"`
	UserEmail string `json:"userEmail" validate:"omitempty,email,max=255"`
}

type SendMessageData struct {
	TicketID    uint   `json:"ticketId" validate:"required"`
	Message     string `json:"message" validate:"required,max=4000"`
	SenderEmail string `json:"senderEmail" validate:"omitempty,email,max=255"`
}

type FileNotificationData struct {
	TicketID    uint   `json:"ticketId" validate:"required"`
	FileName    string `json:"fileName" validate:"required,max=255"`
	SenderEmail string `json:"senderEmail" validate:"omitempty,email,max=255"`
	FileSize    int64  `json:"fileSize" validate:"min=0"`
}

type UserGroupData struct {
	UserEmail string `json:"userEmail" validate:"omitempty,email,max=255"`
}
