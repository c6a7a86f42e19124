package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ticketdesk/ticketdesk/internal/interfaces/http/handlers"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketMessageHandler *handlers.TicketMessageHandler
	AuthMiddleware       *middleware.AuthMiddleware
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		tickets.GET("/:id/messages", config.TicketMessageHandler.ListMessages)
		tickets.GET("/:id/attachments", config.TicketMessageHandler.ListAttachments)
	}
}
