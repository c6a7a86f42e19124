package routes

import (
	"github.com/gin-gonic/gin"

	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/http/handlers"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/http/middleware"
)

type UserRouteConfig struct {
	UserHandler    *handlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupUserRoutes(engine *gin.Engine, config *UserRouteConfig) {
	users := engine.Group("/users")
	users.Use(config.AuthMiddleware.RequireAuth())
	{
		users.GET("/me", config.UserHandler.GetMe)
	}

	admin := engine.Group("/admin/users")
	admin.Use(config.AuthMiddleware.RequireAuth())
	{
		admin.POST("", config.AuthMiddleware.RequireRole(uservo.RoleAdmin), config.UserHandler.CreateUser)
		admin.PATCH("/:id/manager", config.AuthMiddleware.RequireRole(uservo.RoleAdmin), config.UserHandler.AssignManager)
		admin.GET("/:id/clients",
			config.AuthMiddleware.RequireRole(uservo.RoleAdmin, uservo.RoleManager),
			config.UserHandler.ListClients)
	}
}
