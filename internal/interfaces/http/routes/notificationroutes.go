package routes

import (
	"github.com/gin-gonic/gin"

	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/http/handlers"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/http/middleware"
)

type NotificationRouteConfig struct {
	NotificationHandler *handlers.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

func SetupNotificationRoutes(engine *gin.Engine, config *NotificationRouteConfig) {
	notifications := engine.Group("/notifications")
	notifications.Use(config.AuthMiddleware.RequireAuth())
	{
		notifications.GET("", config.NotificationHandler.ListNotifications)
		notifications.PATCH("/read-all", config.NotificationHandler.MarkAllRead)
		notifications.PATCH("/:id/read", config.NotificationHandler.MarkRead)
	}

	admin := engine.Group("/admin/notifications")
	admin.Use(
		config.AuthMiddleware.RequireAuth(),
		config.AuthMiddleware.RequireRole(uservo.RoleAdmin, uservo.RoleManager),
	)
	{
		admin.POST("/broadcast", config.NotificationHandler.Broadcast)
	}
}
