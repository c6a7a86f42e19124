package http

import (
	"github.com/ticketdesk/ticketdesk/internal/interfaces/http/handlers"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/http/handlers/realtime"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	notificationHandler  *handlers.NotificationHandler
	ticketMessageHandler *handlers.TicketMessageHandler
	userHandler          *handlers.UserHandler
	healthHandler        *handlers.HealthHandler

	// Realtime
	hubHandler *realtime.HubHandler
}
