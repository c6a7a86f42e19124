package constants

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// gin context keys set by the auth middleware
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"

	// TokenQueryParam carries the bearer token for websocket upgrades, where
	// browsers cannot set headers.
	TokenQueryParam = "token"

	TableUsers             = "users"
	TableTickets           = "tickets"
	TableChatMessages      = "chat_messages"
	TableChatAttachments   = "chat_attachments"
	TableTicketAttachments = "ticket_attachments"
	TableNotifications     = "notifications"

	MaxTitleLength       = 255
	MaxMessageLength     = 4000
	MaxFileNameLength    = 255
	MaxFilePathLength    = 500
	MaxContentTypeLength = 100
)
